package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cvtext/internal/db"
	"github.com/jonathan/cvtext/internal/server/ratelimit"
	"github.com/jonathan/cvtext/internal/types"
)

const sampleResume = `Name: Ada Lovelace
Email: ada@example.com

School: University of London
Start Date: 1832-09
End Date: 1835

# Research
Role: Analyst
Org: Analytical Engine Project
- Wrote the first published algorithm
this line matches nothing
`

// memoryStore is an in-memory DocumentStore
type memoryStore struct {
	mu      sync.Mutex
	docs    map[uuid.UUID]*db.StoredDocument
	order   []uuid.UUID
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[uuid.UUID]*db.StoredDocument)}
}

func (m *memoryStore) SaveDocument(_ context.Context, doc *types.Document, source string) (uuid.UUID, error) {
	if m.saveErr != nil {
		return uuid.Nil, m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.docs[id] = &db.StoredDocument{ID: id, Source: source, Document: doc, CreatedAt: time.Now()}
	m.order = append(m.order, id)
	return id, nil
}

func (m *memoryStore) GetDocument(_ context.Context, id uuid.UUID) (*db.StoredDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[id], nil
}

func (m *memoryStore) ListDocuments(_ context.Context, limit int) ([]db.DocumentSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	summaries := []db.DocumentSummary{}
	for i := len(m.order) - 1; i >= 0 && len(summaries) < limit; i-- {
		if d, ok := m.docs[m.order[i]]; ok {
			summaries = append(summaries, db.DocumentSummary{ID: d.ID, Source: d.Source, Name: d.Document.Name, CreatedAt: d.CreatedAt})
		}
	}
	return summaries, nil
}

func (m *memoryStore) DeleteDocument(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("%w: %s", db.ErrNotFound, id)
	}
	delete(m.docs, id)
	return nil
}

func newTestHandler(store DocumentStore) http.Handler {
	return newServer(store, nil, nil).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestHandleHealth(t *testing.T) {
	w := doJSON(t, newTestHandler(nil), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "disabled", body["database"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()

	newTestHandler(nil).ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

func TestHandleParse(t *testing.T) {
	w := doJSON(t, newTestHandler(nil), http.MethodPost, "/parse", ParseRequest{Text: sampleResume})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[ParseResponse](t, w)
	require.NotNil(t, resp.Document)
	assert.Equal(t, "Ada Lovelace", resp.Document.Name)
	require.Len(t, resp.Document.Education, 1)
	assert.Equal(t, "University of London", resp.Document.Education[0].School)
	require.Len(t, resp.Document.Activities, 1)
	assert.Equal(t, "Research", resp.Document.Activities[0].Section)
	assert.Equal(t, []string{"Wrote the first published algorithm"}, resp.Document.Activities[0].Descriptions)
	assert.Equal(t, []string{"this line matches nothing"}, resp.Unparsed)
}

func TestHandleParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantLine string
	}{
		{
			name:     "bad date",
			body:     `{"text": "School: MIT\nStart Date: 2020-13"}`,
			wantCode: http.StatusUnprocessableEntity,
			wantLine: "Start Date: 2020-13",
		},
		{
			name:     "attribute before any record",
			body:     `{"text": "Degree: BSc"}`,
			wantCode: http.StatusUnprocessableEntity,
			wantLine: "Degree: BSc",
		},
		{
			name:     "missing text",
			body:     `{}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown field",
			body:     `{"text": "Name: A", "extra": true}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed body",
			body:     `{"text":`,
			wantCode: http.StatusBadRequest,
		},
	}

	h := newTestHandler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/parse", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			resp := decode[ErrorResponse](t, w)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.wantLine, resp.Line)
		})
	}
}

func TestHandleParse_MissingTextNamesJSONField(t *testing.T) {
	w := doJSON(t, newTestHandler(nil), http.MethodPost, "/parse", map[string]string{})

	resp := decode[ErrorResponse](t, w)
	assert.Equal(t, "validation error: text - is required", resp.Error)
}

func TestHandleFormatDate(t *testing.T) {
	end := "2023-05-24"
	tests := []struct {
		name     string
		req      FormatDateRequest
		wantCode int
		wantText string
	}{
		{
			name:     "single",
			req:      FormatDateRequest{Start: "2023-05-22", Style: "american long"},
			wantCode: http.StatusOK,
			wantText: "May 22, 2023",
		},
		{
			name:     "range",
			req:      FormatDateRequest{Start: "2023-05-22", End: &end, Style: "american"},
			wantCode: http.StatusOK,
			wantText: "May 22--24, 2023",
		},
		{
			name:     "style is case-insensitive",
			req:      FormatDateRequest{Start: "2023-05", Style: "ISO"},
			wantCode: http.StatusOK,
			wantText: "2023-05",
		},
		{
			name:     "fallback text",
			req:      FormatDateRequest{Start: "present", Style: "iso"},
			wantCode: http.StatusOK,
			wantText: "present",
		},
		{
			name:     "bad style",
			req:      FormatDateRequest{Start: "2023", Style: "klingon"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad month",
			req:      FormatDateRequest{Start: "2023-13", Style: "iso"},
			wantCode: http.StatusBadRequest,
		},
	}

	h := newTestHandler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, h, http.MethodPost, "/dates/format", tt.req)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantText, decode[FormatDateResponse](t, w).Text)
			}
		})
	}
}

func TestDocuments_WithoutStore(t *testing.T) {
	h := newTestHandler(nil)
	id := uuid.NewString()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/documents"},
		{http.MethodGet, "/documents"},
		{http.MethodGet, "/documents/" + id},
		{http.MethodDelete, "/documents/" + id},
	} {
		w := doJSON(t, h, tc.method, tc.path, CreateDocumentRequest{Text: sampleResume})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestDocuments_Lifecycle(t *testing.T) {
	store := newMemoryStore()
	h := newTestHandler(store)

	w := doJSON(t, h, http.MethodPost, "/documents", CreateDocumentRequest{Text: sampleResume, Source: "ada.txt"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[CreateDocumentResponse](t, w)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, []string{"this line matches nothing"}, created.Unparsed)

	w = doJSON(t, h, http.MethodGet, "/documents/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	stored := decode[db.StoredDocument](t, w)
	assert.Equal(t, "ada.txt", stored.Source)
	assert.Equal(t, "Ada Lovelace", stored.Document.Name)

	w = doJSON(t, h, http.MethodGet, "/documents?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[ListDocumentsResponse](t, w)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, created.ID, list.Documents[0].ID)

	w = doJSON(t, h, http.MethodDelete, "/documents/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, h, http.MethodGet, "/documents/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, h, http.MethodDelete, "/documents/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocuments_BadRequests(t *testing.T) {
	h := newTestHandler(newMemoryStore())

	w := doJSON(t, h, http.MethodGet, "/documents/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodGet, "/documents?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/documents", CreateDocumentRequest{Text: "Degree: BSc"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDocuments_StoreFailureIsHidden(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = errors.New("connection reset by peer")
	h := newTestHandler(store)

	w := doJSON(t, h, http.MethodPost, "/documents", CreateDocumentRequest{Text: sampleResume})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode[ErrorResponse](t, w).Error)
}

func TestCORS_Preflight(t *testing.T) {
	w := doJSON(t, newTestHandler(nil), http.MethodOptions, "/parse", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/parse", Method: http.MethodPost, Limit: 2, Window: time.Hour, Burst: 2},
		},
	})
	defer limiter.Stop()
	h := newServer(nil, nil, limiter).Handler()

	for i := 0; i < 2; i++ {
		w := doJSON(t, h, http.MethodPost, "/parse", ParseRequest{Text: "Name: A"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doJSON(t, h, http.MethodPost, "/parse", ParseRequest{Text: "Name: A"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// other endpoints keep their own budget
	w = doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_DocumentIDsShareBudget(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/documents/", Method: http.MethodDelete, Limit: 2, Window: time.Hour, Burst: 2},
		},
	})
	defer limiter.Stop()
	h := newServer(newMemoryStore(), nil, limiter).Handler()

	for i := 0; i < 2; i++ {
		w := doJSON(t, h, http.MethodDelete, "/documents/"+uuid.NewString(), nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	w := doJSON(t, h, http.MethodDelete, "/documents/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
