package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glossaryweb/glossary/internal/glossary"
)

var (
	// ErrDuplicateTerm is returned when another entry already uses the term.
	// The check is best-effort: two clients can both pass it concurrently.
	ErrDuplicateTerm = errors.New("this term already exists in the glossary")

	// ErrTermNotFound is returned by Search when no entry matches.
	ErrTermNotFound = errors.New("term not found")

	// ErrEmptySearch is returned by Search for a blank query.
	ErrEmptySearch = fmt.Errorf("%w: term cannot be empty", glossary.ErrValidation)
)

// Add validates the pair, checks for a case-insensitive duplicate against a
// fresh list and creates the entry. Invalid input never reaches the network.
func (c *Client) Add(ctx context.Context, term, definition string) (glossary.Entry, error) {
	term, definition = glossary.Normalize(term, definition)
	if err := glossary.Validate(term, definition); err != nil {
		return glossary.Entry{}, err
	}

	entries, err := c.List(ctx)
	if err != nil {
		return glossary.Entry{}, fmt.Errorf("unable to check for existing terms: %w", err)
	}
	if _, dup := glossary.FindByTerm(entries, term, 0); dup {
		return glossary.Entry{}, fmt.Errorf("%w: %s", ErrDuplicateTerm, term)
	}

	entry, _, err := c.Create(ctx, term, definition)
	return entry, err
}

// Update validates the pair, checks for a duplicate term on any other entry
// and replaces the entry at id.
func (c *Client) Update(ctx context.Context, id int64, term, definition string) error {
	term, definition = glossary.Normalize(term, definition)
	if err := glossary.Validate(term, definition); err != nil {
		return err
	}

	entries, err := c.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to check for existing terms: %w", err)
	}
	if _, dup := glossary.FindByTerm(entries, term, id); dup {
		return fmt.Errorf("%w: %s", ErrDuplicateTerm, term)
	}

	return c.Replace(ctx, glossary.Entry{ID: id, Term: term, Definition: definition})
}

// Search finds the entry whose term matches query case-insensitively.
func (c *Client) Search(ctx context.Context, query string) (glossary.Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return glossary.Entry{}, ErrEmptySearch
	}

	entries, err := c.List(ctx)
	if err != nil {
		return glossary.Entry{}, fmt.Errorf("unable to search for term: %w", err)
	}

	entry, ok := glossary.FindByTerm(entries, query, 0)
	if !ok {
		return glossary.Entry{}, fmt.Errorf("%w: %s", ErrTermNotFound, query)
	}
	return entry, nil
}
