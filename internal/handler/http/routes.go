package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(h.withCORS)

	router.Get("/metrics", metricsHandler(newMetricsRegistry()).ServeHTTP)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)

		r.Group(func(r chi.Router) {
			r.Use(h.withLoginRateLimit)
			r.Post("/api/face/register", h.register)
			r.Post("/api/face/login", h.faceLogin)
			r.Post("/api/face/login/verify", h.verifyLogin)
		})
	})

	// routes behind a valid session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/session", h.session)
		r.Post("/api/user/password", h.updatePassword)
		r.Post("/api/user/face", h.updateFace)
		r.Delete("/api/user", h.deleteAccount)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
