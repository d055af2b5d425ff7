// Package parser extracts text from documents and glossary pairs from text.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileType represents the type of document file
type FileType int

const (
	TypeUnknown FileType = iota
	TypePDF
	TypeDOCX
	TypeText
)

// MaxFileSize is the maximum allowed file size (10MB)
const MaxFileSize = 10 * 1024 * 1024

// DetectFileType determines the file type based on extension
func DetectFileType(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return TypePDF
	case ".docx":
		return TypeDOCX
	case ".txt", ".text":
		return TypeText
	default:
		return TypeUnknown
	}
}

// ValidateFileSize checks if a file is within the size limit
func ValidateFileSize(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file")
	}
	if info.Size() > MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), MaxFileSize)
	}
	return nil
}

// ValidatePath rejects paths a user could not have meant to type.
// Absolute and relative paths are both fine for local imports.
func ValidatePath(filePath string) error {
	if strings.TrimSpace(filePath) == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	// Check for null bytes
	if strings.ContainsRune(filePath, '\x00') {
		return fmt.Errorf("file path contains null byte")
	}

	// Check for newlines
	if strings.ContainsAny(filePath, "\r\n") {
		return fmt.Errorf("file path contains newline character")
	}

	return nil
}

// ParseDocument detects the file type and returns the document's text.
func ParseDocument(filePath string) (string, error) {
	if err := ValidatePath(filePath); err != nil {
		return "", err
	}
	if err := ValidateFileSize(filePath); err != nil {
		return "", err
	}

	switch DetectFileType(filePath) {
	case TypePDF:
		return ParsePDF(filePath)
	case TypeDOCX:
		return ParseDOCX(filePath)
	case TypeText:
		return ParseText(filePath)
	default:
		return "", fmt.Errorf("unsupported file type: %s (only .pdf, .docx and .txt are supported)", filepath.Ext(filePath))
	}
}

// ParseText reads a plain text file.
func ParseText(filePath string) (string, error) {
	if err := ValidateFileSize(filePath); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return "", fmt.Errorf("no text content found in file")
	}
	return text, nil
}
