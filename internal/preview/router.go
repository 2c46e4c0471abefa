// Package preview serves the converted output directory for local
// inspection, plus a small JSON API over the conversion state.
package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/starford/ansuz/internal/state"
)

// Store is the slice of the conversion state the preview server reads.
type Store interface {
	ListPages() ([]state.PageRow, error)
}

// NewRouter mounts the preview endpoints: health, converted-page listing,
// and a static file server over the output directory.
func NewRouter(store Store, outputDir string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/pages", func(w http.ResponseWriter, _ *http.Request) {
		pages, err := store.ListPages()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
			return
		}
		if pages == nil {
			pages = []state.PageRow{}
		}
		writeJSON(w, http.StatusOK, pages)
	})

	r.Handle("/*", http.FileServer(http.Dir(outputDir)))

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}
