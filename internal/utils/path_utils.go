package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/bprog/internal/config"
)

// HasSourceExt checks if a path has a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension, if any.
func TrimSourceExt(path string) string {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}

// ExpandHome replaces a leading "~/" with the user's home directory. Other
// paths, including ":memory:", are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
