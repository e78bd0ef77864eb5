package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cvtext/internal/types"
)

// Listing limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// StoredDocument is a parsed document with its storage metadata
type StoredDocument struct {
	ID        uuid.UUID       `json:"id"`
	Source    string          `json:"source"`
	Document  *types.Document `json:"document"`
	CreatedAt time.Time       `json:"created_at"`
}

// DocumentSummary is a lightweight view of a stored document for listing
type DocumentSummary struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// normalizeLimit maps a non-positive limit to the default and caps large ones.
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
