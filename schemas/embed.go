// Package schemas holds the JSON Schemas for the artifacts cvtext writes.
package schemas

import (
	_ "embed"
)

// DocumentFile is the file name of the parsed document schema.
const DocumentFile = "document.schema.json"

// Document is the JSON Schema for a parsed résumé document.
//
//go:embed document.schema.json
var Document string
