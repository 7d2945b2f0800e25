package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadList reads one dataset identifier per line. Lines are trimmed and
// blank lines are dropped; order and duplicates are preserved.
func ReadList(r io.Reader) ([]string, error) {
	var datasets []string
	scanner := bufio.NewScanner(r)
	// Lines up to 1 MiB.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		datasets = append(datasets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset list: %w", err)
	}
	return datasets, nil
}

// ReadListFile opens path and reads it with ReadList.
func ReadListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset list '%s': %w", path, err)
	}
	defer f.Close()
	return ReadList(f)
}
