// Package input selects and opens the byte stream to be counted.
package input

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Open returns a reader for the named source. An empty name or "-" selects
// standard input; when standard input is an interactive terminal, a short
// prompt explaining how to end the input is printed to stderr first.
func Open(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		slog.Debug("Reading from standard input")
		if isTerminal(os.Stdin) {
			fmt.Fprintln(os.Stderr,
				"Enter input followed by EOF ([Enter, Ctrl+D] on Unix, [Enter, Ctrl+Z, Enter] on Windows)")
		}
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	slog.Debug("Reading from file", "path", name)
	return f, nil
}

// isTerminal helper function checks if f is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
