package routes

import (
	"clementus360/edu-copilot/handlers"

	"github.com/go-chi/chi/v5"
)

// RegisterSessionRoutes registers all session-related routes
func RegisterSessionRoutes(r chi.Router, h *handlers.Handler) {
	r.Route("/api/surfaces/{surface}/sessions", func(r chi.Router) {
		r.Get("/", h.GetSessionsHandler)
		r.Post("/", h.CreateSessionHandler)
		r.Post("/{id}/activate", h.ActivateSessionHandler)
		r.Delete("/{id}", h.DeleteSessionHandler)
		r.Post("/{id}/messages", h.SendMessageHandler)
	})
}
