package parser

import (
	"strings"

	"github.com/glossaryweb/glossary/internal/glossary"
)

// separators split a line into term and definition, tried in order.
var separators = []string{":", " - ", " – ", "="}

// ExtractEntries finds "Term: Definition" style pairs, one per line.
// "Term - Definition" and "Term = Definition" are accepted too. Lines
// without a separator or with an empty side are skipped. Pairs are returned
// as found; validation is left to the caller.
func ExtractEntries(text string) []glossary.Entry {
	var entries []glossary.Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•"))
		if line == "" {
			continue
		}

		term, definition, ok := splitPair(line)
		if !ok {
			continue
		}
		entries = append(entries, glossary.Entry{Term: term, Definition: definition})
	}
	return entries
}

func splitPair(line string) (string, string, bool) {
	for _, sep := range separators {
		term, definition, found := strings.Cut(line, sep)
		if !found {
			continue
		}
		term, definition = glossary.Normalize(term, definition)
		if term == "" || definition == "" {
			return "", "", false
		}
		return term, definition, true
	}
	return "", "", false
}
