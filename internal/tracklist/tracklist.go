// Package tracklist reads the list of conference acronyms to track.
package tracklist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a tracked list from a file
func Load(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open tracked list: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Parse(file)
}

// Parse reads newline-delimited acronyms. Blank lines and lines starting with
// '#' are skipped, inline '#' comments are stripped, acronyms are upper-cased
// and duplicates collapse keeping the first position.
func Parse(r io.Reader) ([]string, error) {
	var acronyms []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Only the first field is the acronym
		acronym := strings.ToUpper(strings.Fields(line)[0])
		if !seen[acronym] {
			seen[acronym] = true
			acronyms = append(acronyms, acronym)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan tracked list: %w", err)
	}

	return acronyms, nil
}
