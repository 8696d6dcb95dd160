package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is looked up in the working directory; the dotted variant
// is looked up in the user's home directory.
const SettingsFileName = "bprog.yaml"

// Mode selects how the CLI consumes its input.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeRepl  Mode = "repl"
	ModeBatch Mode = "batch"
)

// Settings represents the bprog.yaml configuration.
type Settings struct {
	// Prompt is shown before every REPL line.
	Prompt string `yaml:"prompt,omitempty"`

	// HistoryFile stores REPL line history between sessions.
	HistoryFile string `yaml:"history_file,omitempty"`

	// Transcript is the sqlite DSN for the session transcript.
	// Defaults to an in-memory database.
	Transcript string `yaml:"transcript,omitempty"`

	// Trace enables debug logging of every dispatched instruction.
	Trace bool `yaml:"trace,omitempty"`

	// Mode is one of auto, repl or batch.
	Mode Mode `yaml:"mode,omitempty"`
}

// DefaultSettings returns the settings used when no file is found.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.setDefaults()
	return s
}

// LoadSettings reads and parses a bprog.yaml file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	return ParseSettings(data, path)
}

// ParseSettings parses bprog.yaml content from bytes.
// The path argument is used only for error messages.
func ParseSettings(data []byte, path string) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := s.validate(path); err != nil {
		return nil, err
	}
	s.setDefaults()
	return &s, nil
}

// FindSettings returns the first settings file found in dir or the home
// directory, or an empty string when there is none.
func FindSettings(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	candidate := filepath.Join(dir, SettingsFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	candidate = filepath.Join(home, "."+SettingsFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// validate checks the settings for semantic errors.
func (s *Settings) validate(path string) error {
	switch s.Mode {
	case "", ModeAuto, ModeRepl, ModeBatch:
	default:
		return fmt.Errorf("%s: mode: unknown mode %q (want auto, repl or batch)", path, s.Mode)
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (s *Settings) setDefaults() {
	if s.Prompt == "" {
		s.Prompt = "bprog> "
	}
	if s.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			s.HistoryFile = filepath.Join(home, ".bprog_history")
		}
	}
	if s.Transcript == "" {
		s.Transcript = ":memory:"
	}
	if s.Mode == "" {
		s.Mode = ModeAuto
	}
}
