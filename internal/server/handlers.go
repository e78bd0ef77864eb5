package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cvtext/internal/dates"
	"github.com/jonathan/cvtext/internal/db"
	"github.com/jonathan/cvtext/internal/types"
)

// ErrorResponse is the body of every error reply. Line is set for fatal parse errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Line  string `json:"line,omitempty"`
}

// ParseRequest represents the request body for POST /parse
type ParseRequest struct {
	Text string `json:"text" validate:"required"`
}

// ParseResponse represents the response for POST /parse
type ParseResponse struct {
	Document *types.Document `json:"document"`
	Unparsed []string        `json:"unparsed"`
}

// FormatDateRequest represents the request body for POST /dates/format.
// End is optional; when present the pair is formatted as a range.
type FormatDateRequest struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
	Style string  `json:"style" validate:"required,datestyle"`
}

// FormatDateResponse represents the response for POST /dates/format
type FormatDateResponse struct {
	Text string `json:"text"`
}

// CreateDocumentRequest represents the request body for POST /documents
type CreateDocumentRequest struct {
	Text   string `json:"text" validate:"required"`
	Source string `json:"source,omitempty" validate:"max=255"`
}

// CreateDocumentResponse represents the response for POST /documents
type CreateDocumentResponse struct {
	ID       uuid.UUID `json:"id"`
	Unparsed []string  `json:"unparsed"`
}

// ListDocumentsResponse represents the response for GET /documents
type ListDocumentsResponse struct {
	Documents []db.DocumentSummary `json:"documents"`
	Count     int                  `json:"count"`
}

// handleParse parses résumé text without storing it
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	doc, unparsed, err := s.parser.Parse(req.Text)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if len(unparsed) > 0 {
		loggerFrom(r.Context(), s.logger).Debug("unparsed lines", zap.Int("count", len(unparsed)))
	}

	s.jsonResponse(w, http.StatusOK, ParseResponse{Document: doc, Unparsed: unparsed})
}

// handleFormatDate formats a single date or a range in the requested style
func (s *Server) handleFormatDate(w http.ResponseWriter, r *http.Request) {
	var req FormatDateRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	style, err := dates.ParseStyle(req.Style)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	start, err := dates.Parse(req.Start)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var text string
	if req.End == nil {
		text, err = dates.FormatSingle(start, style)
	} else {
		var end dates.PartialDate
		if end, err = dates.Parse(*req.End); err != nil {
			s.handleError(w, r, err)
			return
		}
		text, err = dates.FormatRange(start, end, style)
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, FormatDateResponse{Text: text})
}

// handleCreateDocument parses résumé text and stores the document
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, r, ErrStoreUnavailable)
		return
	}

	var req CreateDocumentRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	doc, unparsed, err := s.parser.Parse(req.Text)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	id, err := s.store.SaveDocument(r.Context(), doc, req.Source)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	loggerFrom(r.Context(), s.logger).Info("document stored", zap.String("id", id.String()))

	s.jsonResponse(w, http.StatusCreated, CreateDocumentResponse{ID: id, Unparsed: unparsed})
}

// handleListDocuments lists stored documents, newest first
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, r, ErrStoreUnavailable)
		return
	}

	limit := db.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.handleError(w, r, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	docs, err := s.store.ListDocuments(r.Context(), limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListDocumentsResponse{Documents: docs, Count: len(docs)})
}

// handleGetDocument returns one stored document
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, r, ErrStoreUnavailable)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	stored, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if stored == nil {
		s.errorResponse(w, http.StatusNotFound, "document not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// handleDeleteDocument removes a stored document
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, r, ErrStoreUnavailable)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	if err := s.store.DeleteDocument(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
