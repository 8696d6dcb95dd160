package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/funvibe/bprog/internal/transcript"
)

// session numbers the inputs of one CLI run and records them in the
// transcript. A session without a store still numbers inputs.
type session struct {
	id     string
	seq    int
	store  *transcript.Store
	logger *slog.Logger
}

func newSession(ctx context.Context, dsn string, logger *slog.Logger) *session {
	s := &session{id: uuid.NewString(), logger: logger}
	store, err := transcript.Open(ctx, dsn)
	if err != nil {
		logger.Warn("transcript disabled", slog.String("dsn", dsn), slog.Any("error", err))
		return s
	}
	s.store = store
	return s
}

func (s *session) record(ctx context.Context, input string, outcome transcript.Outcome, stack string) {
	s.seq++
	if s.store == nil {
		return
	}
	err := s.store.Append(ctx, transcript.Entry{
		Session: s.id,
		Seq:     s.seq,
		Input:   input,
		Outcome: outcome,
		Stack:   stack,
	})
	if err != nil {
		s.logger.Warn("transcript append failed", slog.Any("error", err))
	}
}

// history writes the last limit entries of this session to w.
func (s *session) history(ctx context.Context, w io.Writer, limit int) error {
	if s.store == nil {
		_, err := fmt.Fprintln(w, "no transcript")
		return err
	}
	entries, err := s.store.Session(ctx, s.id, limit)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%4d  %-5s %s  =>  %s\n", e.Seq, e.Outcome, e.Input, e.Stack); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) Close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing transcript", slog.Any("error", err))
	}
}
