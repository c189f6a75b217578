// Package extract provides résumé text extraction from common CV file formats.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lu4p/cat"
)

// Extractor extracts plain text from résumé attachment files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supported reports whether the file extension is a readable résumé format.
func (e *Extractor) Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx", ".odt", ".rtf", ".txt", ".md":
		return true
	}
	return false
}

// Extract reads the résumé file at path and returns its text content.
// PDF and DOCX are parsed directly; ODT and RTF go through lu4p/cat; anything
// else is treated as plain text (UTF-8 validated).
func (e *Extractor) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".odt", ".rtf":
		text, err := cat.File(path)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", ext, err)
		}
		return strings.TrimSpace(text), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	default:
		return extractPlain(content)
	}
}
