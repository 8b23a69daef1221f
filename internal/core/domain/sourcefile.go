package domain

import (
	"path/filepath"
	"strings"
)

// FileFormat identifies the detected format of a source file.
// Detection is extension-based; converter selection happens per format.
type FileFormat string

const (
	// FormatPlainText covers .txt and other raw text files.
	FormatPlainText FileFormat = "plaintext"

	// FormatMarkdown covers .md and .markdown files.
	FormatMarkdown FileFormat = "markdown"

	// FormatHTML covers .html and .htm files.
	FormatHTML FileFormat = "html"

	// FormatDocx covers .docx files (OOXML word processing).
	FormatDocx FileFormat = "docx"

	// FormatUnknown is any format with no native converter.
	// Unknown files are handed to the external converter, if configured.
	FormatUnknown FileFormat = "unknown"
)

// DetectFormat returns the format for a file path based on its extension.
func DetectFormat(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".log", "":
		return FormatPlainText
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	case ".docx":
		return FormatDocx
	default:
		return FormatUnknown
	}
}

// SourceFile represents one file discovered during the corpus scan.
// It is immutable once created.
type SourceFile struct {
	// Path is the absolute path of the file.
	Path string

	// Format is the detected file format.
	Format FileFormat

	// Size is the file size in bytes at scan time.
	Size int64
}
