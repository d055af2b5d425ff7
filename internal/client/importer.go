package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossaryweb/glossary/internal/glossary"
	"github.com/glossaryweb/glossary/internal/parser"
)

// ImportResult summarizes one document import.
type ImportResult struct {
	Path       string
	Found      int
	Added      int
	Duplicates int
	Invalid    int
	Failed     int
	Errors     []string
}

// Import reads a PDF, DOCX or text document, extracts "Term: Definition"
// lines and adds each valid, non-duplicate pair. Duplicates are checked
// against the glossary and against pairs added earlier in the same file.
func (c *Client) Import(ctx context.Context, path string) (*ImportResult, error) {
	text, err := parser.ParseDocument(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	existing, err := c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to check for existing terms: %w", err)
	}

	pairs := parser.ExtractEntries(text)
	result := &ImportResult{Path: path, Found: len(pairs)}

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := glossary.Validate(pair.Term, pair.Definition); err != nil {
			result.Invalid++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", pair.Term, err))
			continue
		}
		if _, dup := glossary.FindByTerm(existing, pair.Term, 0); dup {
			result.Duplicates++
			continue
		}

		entry, _, err := c.Create(ctx, pair.Term, pair.Definition)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", pair.Term, err))
			continue
		}
		existing = append(existing, entry)
		result.Added++
	}

	return result, nil
}

// Summary is a one-line description of the import outcome.
func (r *ImportResult) Summary() string {
	return fmt.Sprintf("Imported %d of %d terms (%d duplicates, %d invalid, %d failed)",
		r.Added, r.Found, r.Duplicates, r.Invalid, r.Failed)
}

// IsDuplicate reports whether err is a duplicate term rejection.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateTerm)
}
