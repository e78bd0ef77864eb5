package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/cvtext/internal/types"
)

// SaveDocument stores doc under a new ID and returns it
func (db *DB) SaveDocument(ctx context.Context, doc *types.Document, source string) (uuid.UUID, error) {
	if doc == nil {
		return uuid.Nil, fmt.Errorf("failed to save document: document is nil")
	}

	content, err := json.Marshal(doc)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO documents (id, source, name, content)
		 VALUES ($1, $2, $3, $4)`,
		id, source, doc.Name, content,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save document: %w", err)
	}
	return id, nil
}

// GetDocument retrieves a stored document by ID, or nil if there is none
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*StoredDocument, error) {
	var stored StoredDocument
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, source, content, created_at FROM documents WHERE id = $1`,
		id,
	).Scan(&stored.ID, &stored.Source, &content, &stored.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	stored.Document = types.NewDocument()
	if err := json.Unmarshal(content, stored.Document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s: %w", id, err)
	}
	return &stored, nil
}

// ListDocuments returns the most recently stored documents, newest first
func (db *DB) ListDocuments(ctx context.Context, limit int) ([]DocumentSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, source, name, created_at
		 FROM documents ORDER BY created_at DESC LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	summaries := []DocumentSummary{}
	for rows.Next() {
		var s DocumentSummary
		if err := rows.Scan(&s.ID, &s.Source, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return summaries, nil
}

// DeleteDocument removes a stored document. It returns ErrNotFound if id is unknown.
func (db *DB) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
