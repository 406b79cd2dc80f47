package router

import (
	"net/http"

	"wallpapermod/internal/http-server/handler/submission"
	"wallpapermod/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	SubmissionHandler *submission.SubmissionHandler
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/health" {
				middleware.LoggingMiddleware(next).ServeHTTP(w, r)
			} else {
				next.ServeHTTP(w, r)
			}
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				next.ServeHTTP(w, r)
			})
		})

		r.Route("/submissions", func(r chi.Router) {
			r.Get("/", h.SubmissionHandler.ListSubmissions)
			r.Get("/{postID}", h.SubmissionHandler.GetSubmission)
		})

		r.Post("/check", h.SubmissionHandler.CheckSubmissions)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	return r
}
