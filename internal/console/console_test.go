package console

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/songminho/ragconsole/internal/backend"
)

// recordingBackend is an httptest stand-in for the RAG backend. It
// records every call it receives (method and path, in order) and serves
// canned handlers keyed by "METHOD /path".
type recordingBackend struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]http.HandlerFunc
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{responses: map[string]http.HandlerFunc{}}
}

func (b *recordingBackend) on(route string, handler http.HandlerFunc) {
	b.responses[route] = handler
}

func (b *recordingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	b.mu.Lock()
	b.calls = append(b.calls, route)
	b.mu.Unlock()

	if handler, ok := b.responses[route]; ok {
		handler(w, r)
		return
	}
	http.NotFound(w, r)
}

func (b *recordingBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *recordingBackend) callLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.calls))
	copy(out, b.calls)
	return out
}

func newBackendClient(t *testing.T, stub *recordingBackend) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL, 5*time.Second, zap.NewNop())
}

func collectionsJSON() string {
	return `{
		"default_collection_key": "law",
		"auto_approve": true,
		"collections": [
			{"key": "law", "label": "법률", "name": "rag_law", "vectors": 120,
			 "soft_usage_ratio": 0.5, "hard_usage_ratio": 0.25,
			 "soft_exceeded": false, "hard_exceeded": false},
			{"key": "tax", "label": "세금", "name": "rag_tax", "vectors": 300,
			 "soft_usage_ratio": 1.2, "hard_usage_ratio": 0.6,
			 "soft_exceeded": true, "hard_exceeded": false}
		]
	}`
}

func serveJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func serveJSONStatus(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}
