// Package envfile updates KEY=VALUE settings files in place.
//
// The settings file doubles as the process environment source (loaded with
// godotenv at startup), so edits must not disturb unrelated lines, comments,
// or ordering.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// Upsert sets key to value in the settings file at path. The first line whose
// prefix matches "KEY=" is rewritten; if no line matches, a new line is
// appended. A missing file is created.
func Upsert(path, key, value string) error {
	if key == "" {
		return fmt.Errorf("envfile: key is required")
	}

	var lines []string
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read settings file: %w", err)
		}
	} else {
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		// TrimRight above turns an empty file into one empty line
		if len(lines) == 1 && lines[0] == "" {
			lines = nil
		}
	}

	entry := key + "=" + value
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, key+"=") {
			lines[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}

	out := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(out), 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
