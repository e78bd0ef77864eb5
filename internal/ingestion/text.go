// Package ingestion reads résumé text files and prepares them for parsing.
package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// MaxFileSize is the largest résumé file accepted.
const MaxFileSize = 1024 * 1024 // 1MB

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CleanText strips a leading byte order mark, normalizes line endings to LF
// and removes trailing whitespace from every line. Line count and content
// otherwise stay as written.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.TrimPrefix(content, string(utf8BOM))
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// IngestFromFile reads a résumé text file, cleans it, and returns the
// cleaned text with metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &FileError{Path: path, Message: "file not found", Cause: err}
		}
		return "", nil, &FileError{Path: path, Message: "failed to read file", Cause: err}
	}
	if info.IsDir() {
		return "", nil, &FileError{Path: path, Message: "is a directory"}
	}
	if info.Size() > MaxFileSize {
		return "", nil, &FileError{
			Path:    path,
			Message: fmt.Sprintf("file too large: %d bytes (max %d)", info.Size(), MaxFileSize),
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &FileError{Path: path, Message: "failed to read file", Cause: err}
	}
	return ingest(path, content)
}

// IngestBytes cleans content that did not come from a file, such as a
// request body. source names it in the metadata.
func IngestBytes(source string, content []byte) (string, *Metadata, error) {
	if len(content) > MaxFileSize {
		return "", nil, &FileError{
			Path:    source,
			Message: fmt.Sprintf("content too large: %d bytes (max %d)", len(content), MaxFileSize),
		}
	}
	return ingest(source, content)
}

func ingest(source string, content []byte) (string, *Metadata, error) {
	if !utf8.Valid(bytes.TrimPrefix(content, utf8BOM)) {
		return "", nil, &FileError{Path: source, Message: "content is not valid UTF-8"}
	}
	cleaned := CleanText(string(content))
	return cleaned, NewMetadata(source, cleaned), nil
}
