// Package strings reads line oriented identifier input.
package strings

import (
	"bufio"
	"io"
	"strings"
)

// ReadLines returns the trimmed, non-blank lines of r. With unique set, a
// value seen before is dropped and the first occurrence keeps its position.
func ReadLines(r io.Reader, unique bool) ([]string, error) {
	var lines []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if unique {
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
