package api

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed web
var webFS embed.FS

// RouterConfig holds what the router needs.
type RouterConfig struct {
	Handler    *Handler
	CORSOrigin string
}

// New builds the HTTP handler.
func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(cfg.CORSOrigin))

	web, _ := fs.Sub(webFS, "web")

	r.Get("/", serveIndex(web))
	r.Handle("/static/*", http.FileServer(http.FS(web)))
	r.Get("/health", cfg.Handler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/explain", cfg.Handler.Explain)
		r.Post("/generate-quiz", cfg.Handler.GenerateQuiz)
		r.Post("/teaching-notes", cfg.Handler.TeachingNotes)
	})

	return r
}

func serveIndex(web fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(web, "index.html")
		if err != nil {
			http.Error(w, "index not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}
