package delivery

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

var allowedStaticExts = map[string]bool{
	".css": true, ".js": true, ".ico": true, ".png": true, ".jpg": true, ".svg": true,
}

type StaticHandler struct {
	root string
}

func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{root: root}
}

// GET /
func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.root, "index.html"))
}

// GET /{file} — extension allow-list, everything else is denied.
func (h *StaticHandler) Asset(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "file"))

	ext := strings.ToLower(filepath.Ext(name))
	if !allowedStaticExts[ext] {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}
	http.ServeFile(w, r, filepath.Join(h.root, name))
}
