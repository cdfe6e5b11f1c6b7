package http

import (
	"github.com/avelichko/immun-registry/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/login", h.login)
		r.Post("/api/register", h.register)
	})

	// routes requiring an authenticated session
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/logout", h.logout)
		r.Get("/api/records", h.listRecords)
		r.Post("/api/records", h.addRecord)

		r.With(h.requireRole(models.RoleAdmin, models.RoleSysadmin)).
			Get("/api/users", h.listUsers)
		r.With(h.requireRole(models.RoleSysadmin)).
			Get("/api/audit-logs", h.listAuditLogs)
	})

	return router
}
