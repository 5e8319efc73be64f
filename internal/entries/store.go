package entries

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTooManyEntries is returned when the input holds more lines than allowed
	ErrTooManyEntries = errors.New("too many entries")
	// ErrEntryTooLong is returned when a single line exceeds the entry length bound
	ErrEntryTooLong = errors.New("entry too long")
)

// Store is the immutable, ordered list of candidate lines
type Store struct {
	entries []string
}

// NewStore creates a store from already loaded entries
func NewStore(entries []string) *Store {
	copied := make([]string, len(entries))
	copy(copied, entries)
	return &Store{entries: copied}
}

// Load reads newline-delimited entries until EOF. Empty lines are skipped and a
// final line without a newline is kept. Both bounds are enforced while reading.
func Load(r io.Reader, maxEntries, maxEntryLength int) (*Store, error) {
	reader := bufio.NewReader(r)
	store := &Store{}
	lineNo := 0

	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read entries: %w", err)
		}
		if line != "" {
			lineNo++
			line = trimEOL(line)
			if len(line) > maxEntryLength {
				return nil, fmt.Errorf("%w: line %d has %d bytes, limit is %d", ErrEntryTooLong, lineNo, len(line), maxEntryLength)
			}
			if line != "" {
				if len(store.entries) >= maxEntries {
					return nil, fmt.Errorf("%w: limit is %d", ErrTooManyEntries, maxEntries)
				}
				store.entries = append(store.entries, line)
			}
		}
		if err == io.EOF {
			return store, nil
		}
	}
}

// trimEOL strips the line terminator, accepting CRLF input
func trimEOL(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.entries)
}

// At returns the entry at index i
func (s *Store) At(i int) string {
	return s.entries[i]
}

// All returns a copy of every entry in insertion order
func (s *Store) All() []string {
	result := make([]string, len(s.entries))
	copy(result, s.entries)
	return result
}
