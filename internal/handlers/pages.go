package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// PagesHandler serves the single-page frontend. Static assets come straight
// off disk; every other GET falls through to index.html so client-side
// routes survive a hard refresh.
type PagesHandler struct {
	staticDir string
}

func NewPagesHandler(staticDir string) *PagesHandler {
	return &PagesHandler{staticDir: staticDir}
}

// ServeHTTP serves a real file when one exists under the static directory
// and index.html otherwise.
func (h *PagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if name != "." && !strings.HasPrefix(name, "..") {
		candidate := filepath.Join(h.staticDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			http.ServeFile(w, r, candidate)
			return
		}
	}
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}
