package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal stand-in for the file-sharing server. Content is
// served by contentFn so tests control how bytes arrive.
type fakeAPI struct {
	mu        sync.Mutex
	files     map[string]*domain.FileRecord
	created   []CreateFileRequest
	contentFn func(w http.ResponseWriter, r *http.Request, rec *domain.FileRecord)

	notifications atomic.Int64
	server        *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{files: make(map[string]*domain.FileRecord)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/files", f.handleCreate)
	mux.HandleFunc("GET /api/files/{fileId}", f.handleGet)
	mux.HandleFunc("GET /api/files/{fileId}/content", f.handleContent)
	mux.HandleFunc("POST /api/files/{fileId}/downloaded", f.handleDownloaded)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) client(t *testing.T) *Client {
	t.Helper()
	c, err := New(f.server.URL)
	require.NoError(t, err)
	return c
}

func (f *fakeAPI) put(rec *domain.FileRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[rec.FileID] = rec
}

func (f *fakeAPI) lookup(fileID string) (*domain.FileRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.files[fileID]
	return rec, ok
}

func (f *fakeAPI) createdRequests() []CreateFileRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]CreateFileRequest(nil), f.created...)
}

func (f *fakeAPI) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid file data"})
		return
	}
	f.mu.Lock()
	f.created = append(f.created, req)
	rec := &domain.FileRecord{
		ID:         int64(len(f.created)),
		FileID:     "abc123",
		FileName:   req.FileName,
		FileSize:   req.FileSize,
		MimeType:   req.MimeType,
		Content:    req.Content,
		UploaderID: req.UploaderID,
		UploadTime: req.UploadTime,
	}
	f.files[rec.FileID] = rec
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, rec)
}

func (f *fakeAPI) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := f.lookup(r.PathValue("fileId"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "File not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (f *fakeAPI) handleContent(w http.ResponseWriter, r *http.Request) {
	rec, ok := f.lookup(r.PathValue("fileId"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "File not found"})
		return
	}
	f.contentFn(w, r, rec)
}

func (f *fakeAPI) handleDownloaded(w http.ResponseWriter, r *http.Request) {
	f.notifications.Add(1)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
