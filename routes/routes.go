package routes

import (
	"clementus360/edu-copilot/handlers"
	"clementus360/edu-copilot/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the application router with its global middleware.
func NewRouter(h *handlers.Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Heartbeat("/health"))
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	r.Use(middleware.IdentityMiddleware)

	RegisterAllRoutes(r, h)
	return r
}

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(r chi.Router, h *handlers.Handler) {
	RegisterChatRoutes(r, h)
	RegisterSessionRoutes(r, h)
}
