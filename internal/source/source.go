// Package source reads candidate lines.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Load returns one candidate per line of r, in order. Lines have no length
// limit. A trailing carriage return is dropped so CRLF input behaves like LF
// input.
func Load(r io.Reader) ([]string, error) {
	reader := bufio.NewReaderSize(r, 64*1024)

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return lines, fmt.Errorf("read candidates: %w", err)
		}
	}
}
