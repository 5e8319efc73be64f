package logic

import (
	"errors"
	"fmt"
)

// ErrPatternTooLong is returned when a character is typed into a full filter
var ErrPatternTooLong = errors.New("pattern too long")

// Matches reports whether pattern is a case-insensitive prefix of candidate.
// An empty pattern matches everything. Folding is ASCII only, byte by byte.
func Matches(pattern, candidate string) bool {
	if len(pattern) > len(candidate) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if lower(pattern[i]) != lower(candidate[i]) {
			return false
		}
	}
	return true
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// FilterEntries returns the entries matching pattern, in their original order
func FilterEntries(entries []string, pattern string) []string {
	matches := make([]string, 0, len(entries))
	for _, entry := range entries {
		if Matches(pattern, entry) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// Filter is the bounded query text typed by the user
type Filter struct {
	text      []byte
	maxLength int
}

// NewFilter creates an empty filter holding at most maxLength bytes
func NewFilter(maxLength int) *Filter {
	return &Filter{maxLength: maxLength}
}

// Append adds one character. A full filter is a hard error, not a truncation.
func (f *Filter) Append(c byte) error {
	if len(f.text) >= f.maxLength {
		return fmt.Errorf("%w: limit is %d", ErrPatternTooLong, f.maxLength)
	}
	f.text = append(f.text, c)
	return nil
}

// Erase removes the last character and reports whether anything was removed
func (f *Filter) Erase() bool {
	if len(f.text) == 0 {
		return false
	}
	f.text = f.text[:len(f.text)-1]
	return true
}

// Text returns the current query
func (f *Filter) Text() string {
	return string(f.text)
}

// Len returns the query length in bytes
func (f *Filter) Len() int {
	return len(f.text)
}
