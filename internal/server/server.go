// Package server provides the HTTP API for parsing and storing résumés.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cvtext/internal/config"
	"github.com/jonathan/cvtext/internal/db"
	"github.com/jonathan/cvtext/internal/parsing"
	"github.com/jonathan/cvtext/internal/server/ratelimit"
	"github.com/jonathan/cvtext/internal/types"
)

// maxBodyBytes bounds request bodies; résumés are small text files.
const maxBodyBytes = 1 << 20

// DocumentStore persists parsed documents. *db.DB implements it.
type DocumentStore interface {
	SaveDocument(ctx context.Context, doc *types.Document, source string) (uuid.UUID, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*db.StoredDocument, error)
	ListDocuments(ctx context.Context, limit int) ([]db.DocumentSummary, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       DocumentStore
	db          *db.DB
	parser      *parsing.Parser
	validate    *validator.Validate
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string // optional; document endpoints answer 503 without it
}

// New creates a server. When cfg.DatabaseURL is set it connects and
// creates the documents table.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Server, error) {
	var database *db.DB
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
	}

	var store DocumentStore
	if database != nil {
		store = database
	}
	s := newServer(store, logger, ratelimit.NewLimiter(ratelimit.LoadConfig()))
	s.db = database
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// newServer wires a server around store, which may be nil.
func newServer(store DocumentStore, logger *zap.Logger, limiter *ratelimit.Limiter) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := config.NewValidator()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return &Server{
		store:       store,
		parser:      parsing.NewParser(parsing.NewRegistry()),
		validate:    validate,
		logger:      logger,
		rateLimiter: limiter,
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("POST /dates/format", s.handleFormatDate)

	mux.HandleFunc("POST /documents", s.handleCreateDocument)
	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)
	mux.HandleFunc("DELETE /documents/{id}", s.handleDeleteDocument)

	var h http.Handler = s.withCORS(mux)
	if s.rateLimiter != nil {
		h = s.withRateLimit(h)
	}
	return s.withRequestID(s.withLogging(h))
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.close()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "disabled"}
	if s.db != nil {
		status["database"] = "ok"
		if err := s.db.Ping(r.Context()); err != nil {
			loggerFrom(r.Context(), s.logger).Warn("database ping failed", zap.Error(err))
			status["database"] = "unreachable"
		}
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, ErrorResponse{Error: message})
}

// handleError maps err to a status and writes it. Server errors are logged
// and their details withheld from the client.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		loggerFrom(r.Context(), s.logger).Error("request failed", zap.Error(err))
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.jsonResponse(w, status, ErrorResponse{Error: err.Error(), Line: errorLine(err)})
}

// decodeRequest reads a JSON body into dst and validates its struct tags.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		return toValidationError(err)
	}
	return nil
}

// extractClientID returns the client IP from RemoteAddr.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
