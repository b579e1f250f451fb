// Package history persists field input as plain newline-delimited text, one
// file per scope, append-only. Free-text and path fields keep separate
// scopes so their histories never mix.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds the entries of one scope, oldest first. The file is read once
// when the store is opened; commits append to both the file and the
// in-memory list. Entries are never reordered or deduplicated.
//
// Two processes appending to the same scope interleave their writes; that
// is a known limitation, not something the store guards against.
type Store struct {
	path    string
	entries []string
}

// Open loads the history of the given scope from dir. A missing file is an
// empty history; any other read failure is returned so a session never
// starts on a half-loaded store.
func Open(dir, scope string) (*Store, error) {
	return OpenPath(filepath.Join(dir, scope+"_history"))
}

// OpenPath is Open with an explicit file path.
func OpenPath(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("load history %s: %w", path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			s.entries = append(s.entries, line)
		}
	}
	return s, nil
}

// Entries returns the loaded history, oldest first. The caller must not
// mutate the returned slice.
func (s *Store) Entries() []string {
	return s.entries
}

// Append writes one committed line. The file is opened for append per call
// and closed right after the write.
func (s *Store) Append(line string) error {
	if strings.ContainsRune(line, '\n') {
		return fmt.Errorf("append history: entry contains newline")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	_, werr := file.WriteString(line + "\n")
	cerr := file.Close()
	if werr != nil {
		return fmt.Errorf("append history: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("append history: %w", cerr)
	}
	if line != "" {
		s.entries = append(s.entries, line)
	}
	return nil
}

// Len reports the number of loaded entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Trim keeps only the most recent max entries in memory. The file is left
// untouched.
func (s *Store) Trim(max int) {
	if max > 0 && len(s.entries) > max {
		s.entries = s.entries[len(s.entries)-max:]
	}
}
