package testutil

import (
	"net/http"
	"sync"
)

// RecordingRenderer stands in for the template engine in handler tests.
// It records the last page rendered and writes the page name as the body.
type RecordingRenderer struct {
	mu    sync.Mutex
	Name  string
	Data  any
	Calls int
}

// Render satisfies viewdata.Renderer.
func (rr *RecordingRenderer) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	rr.mu.Lock()
	rr.Name, rr.Data = name, data
	rr.Calls++
	rr.mu.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(name))
}

// RenderSnippet satisfies viewdata.SnippetRenderer. Snippets are recorded
// the same way as pages.
func (rr *RecordingRenderer) RenderSnippet(w http.ResponseWriter, name string, data any) {
	rr.Render(w, nil, name, data)
}
