package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// LogToFile points logger at the file at path for as long as a local program
// owns the terminal. The returned func closes the file. An empty path, or a
// file that cannot be opened, silences the logger instead.
func LogToFile(logger *log.Logger, path string) (func() error, error) {
	noop := func() error { return nil }
	if path == "" {
		logger.SetOutput(io.Discard)
		return noop, nil
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.SetOutput(io.Discard)
			return noop, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return noop, fmt.Errorf("cannot create log directory: %w", err)
	}

	f, err := tea.LogToFile(path, "snake")
	if err != nil {
		logger.SetOutput(io.Discard)
		return noop, fmt.Errorf("cannot open log file %s: %w", path, err)
	}
	logger.SetOutput(f)
	return f.Close, nil
}
