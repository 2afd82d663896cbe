package cli

import (
	"fmt"
	"io"
	"os"
)

// openInput returns the reader for the optional file argument; "-" or no
// argument means stdin
func openInput(stdin io.Reader, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(stdin), "stdin", nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to open input: %w", err)
	}
	return f, args[0], nil
}
