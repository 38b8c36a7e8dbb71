package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Parser extracts plain text from a raw prospectus document. Output is
// paragraph-oriented: blocks separated by blank lines, ready for whitespace
// canonicalization by the analysis package.
type Parser interface {
	Parse(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle. EDGAR
// serves .htm/.html (and occasionally bare text); PDF and DOCX cover
// prospectus drafts obtained outside EDGAR.
var SupportedExtensions = map[string]bool{
	".htm":  true,
	".html": true,
	".txt":  true,
	".pdf":  true,
	".docx": true,
}

// Options carries per-format tuning applied when constructing a parser.
type Options struct {
	// PDFFallbackPdftotext enables shelling out to pdftotext when the Go
	// PDF library fails on a document.
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".htm", ".html":
		return &HTMLParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
