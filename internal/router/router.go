package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/realestate-assistant/internal/handlers"
	"github.com/GregMSThompson/realestate-assistant/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]bool{"ok": true})
	})
	r.Handle("/metrics", promhttp.Handler())

	ph := handlers.NewPageHandlers(deps)
	ah := handlers.NewAPIHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session)
		r.Get("/", ph.Show)
		r.Post("/", ph.Submit)
		r.Mount("/api", ah.APIRoutes())
	})
	return r
}
