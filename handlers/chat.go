package handlers

import (
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/llm"
	"clementus360/edu-copilot/types"
	"encoding/json"
	"net/http"
	"strings"
)

// ChatHandler is the stateless chat route: the page sends its whole
// transcript and gets the next assistant reply back.
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.UserInput) == "" {
		writeError(w, "Missing userInput", http.StatusBadRequest)
		return
	}

	prior := make([]types.Turn, 0, len(req.Messages))
	for _, msg := range req.Messages {
		prior = append(prior, msg.Turn())
	}

	completion := llm.GenerationRequest{
		Contents:         llm.BuildTranscript(prior, req.UserInput, h.catalog.Instruction(req.Context)),
		GenerationConfig: llm.ChatGeneration,
	}

	reply, err := h.completer.Complete(r.Context(), completion)
	if err != nil {
		config.Logger.WithField("kind", llm.ErrorKindOf(err).String()).Error("Failed to get AI response: ", err)
		writeJSON(w, llmStatus(err), types.ChatResponse{ErrorMessage: llmMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, types.ChatResponse{Response: reply.Text})
}

// LessonPlanHandler generates a lesson plan from a short form.
func (h *Handler) LessonPlanHandler(w http.ResponseWriter, r *http.Request) {
	var req types.LessonPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Topic) == "" {
		writeError(w, "Missing subject or topic", http.StatusBadRequest)
		return
	}

	reply, err := h.completer.Complete(r.Context(), llm.BuildLessonPlanRequest(req))
	if err != nil {
		config.Logger.WithField("kind", llm.ErrorKindOf(err).String()).Error("Failed to generate lesson plan: ", err)
		writeJSON(w, llmStatus(err), types.ChatResponse{ErrorMessage: llmMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, types.ChatResponse{Response: reply.Text})
}
