package routes

import (
	"clementus360/edu-copilot/handlers"

	"github.com/go-chi/chi/v5"
)

// RegisterChatRoutes registers the stateless model-backed routes
func RegisterChatRoutes(r chi.Router, h *handlers.Handler) {
	r.Post("/api/ai-chat", h.ChatHandler)
	r.Post("/api/correct-test", h.CorrectTestHandler)
	r.Post("/api/lesson-plan", h.LessonPlanHandler)
	r.Post("/api/attachments", h.UploadAttachmentsHandler)
}
