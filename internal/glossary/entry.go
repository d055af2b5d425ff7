// Package glossary holds the public wire shape of a glossary entry and the
// client-side rules every front end applies before calling the API.
package glossary

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Entry is the wire shape of a glossary entry.
type Entry struct {
	ID         int64  `json:"id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

var (
	// ErrValidation is wrapped by every input validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrEmpty reports a term or definition that is empty after trimming.
	ErrEmpty = fmt.Errorf("%w: term and definition cannot be empty", ErrValidation)

	// ErrNotAlphabetic reports a term or definition with characters outside
	// letters and whitespace.
	ErrNotAlphabetic = fmt.Errorf("%w: term and definition must contain only alphabetic characters", ErrValidation)
)

var alphabetic = regexp.MustCompile(`^[A-Za-z\s]+$`)

// Normalize trims surrounding whitespace from term and definition.
func Normalize(term, definition string) (string, string) {
	return strings.TrimSpace(term), strings.TrimSpace(definition)
}

// Validate checks a term/definition pair after trimming.
func Validate(term, definition string) error {
	term, definition = Normalize(term, definition)

	if term == "" || definition == "" {
		return ErrEmpty
	}
	if !alphabetic.MatchString(term) || !alphabetic.MatchString(definition) {
		return ErrNotAlphabetic
	}
	return nil
}

// FindByTerm returns the first entry whose term matches term case-insensitively.
// An entry with ID equal to excludeID is skipped; pass 0 to consider every entry.
func FindByTerm(entries []Entry, term string, excludeID int64) (Entry, bool) {
	term = strings.TrimSpace(term)
	for _, e := range entries {
		if excludeID != 0 && e.ID == excludeID {
			continue
		}
		if strings.EqualFold(e.Term, term) {
			return e, true
		}
	}
	return Entry{}, false
}

// CountLabel renders the entry counter shown above the list.
func CountLabel(n int) string {
	noun := "items"
	if n == 1 {
		noun = "item"
	}
	return fmt.Sprintf("Glossary: %d %s", n, noun)
}
