package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

// ParseDOCX extracts text from a DOCX file, one line per paragraph.
func ParseDOCX(filePath string) (string, error) {
	if err := ValidateFileSize(filePath); err != nil {
		return "", err
	}

	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	text := docxText(doc.Editable().GetContent())
	if text == "" {
		return "", fmt.Errorf("no text content found in DOCX")
	}
	return text, nil
}

// docxText turns WordprocessingML into plain text with paragraph breaks.
func docxText(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")

	replacer := strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
	return strings.TrimSpace(replacer.Replace(content))
}
