package handlers

import (
	"clementus360/edu-copilot/attachments"
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/llm"
	"clementus360/edu-copilot/middleware"
	"clementus360/edu-copilot/store"
	"clementus360/edu-copilot/types"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetSessionsHandler(w http.ResponseWriter, r *http.Request) {
	surface, ok := surfaceFromRequest(w, r)
	if !ok {
		return
	}
	owner := middleware.OwnerFromContext(r.Context())

	var resp types.SessionsResponse
	err := h.sessions.With(r.Context(), surface, owner, func(st *store.SessionStore) error {
		resp = types.SessionsResponse{Success: true, ActiveID: st.ActiveID(), Sessions: st.Sessions()}
		return nil
	})
	if err != nil {
		config.Logger.Error("Failed to fetch sessions: ", err)
		writeError(w, "Failed to fetch sessions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	surface, ok := surfaceFromRequest(w, r)
	if !ok {
		return
	}
	owner := middleware.OwnerFromContext(r.Context())

	var created types.Session
	err := h.sessions.With(r.Context(), surface, owner, func(st *store.SessionStore) error {
		var err error
		created, err = st.CreateSession(r.Context())
		return err
	})
	if err != nil {
		config.Logger.Error("Failed to create session: ", err)
		writeError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, types.SessionResponse{Success: true, Session: created})
}

// ActivateSessionHandler switches the visible session. Unknown ids leave the
// collection untouched.
func (h *Handler) ActivateSessionHandler(w http.ResponseWriter, r *http.Request) {
	surface, ok := surfaceFromRequest(w, r)
	if !ok {
		return
	}
	owner := middleware.OwnerFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	var resp types.SessionsResponse
	err := h.sessions.With(r.Context(), surface, owner, func(st *store.SessionStore) error {
		if err := st.SwitchActive(r.Context(), sessionID); err != nil {
			return err
		}
		resp = types.SessionsResponse{Success: true, ActiveID: st.ActiveID(), Sessions: st.Sessions()}
		return nil
	})
	if err != nil {
		config.Logger.Error("Failed to switch session: ", err)
		writeError(w, "Failed to switch session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	surface, ok := surfaceFromRequest(w, r)
	if !ok {
		return
	}
	owner := middleware.OwnerFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	var resp types.SessionsResponse
	err := h.sessions.With(r.Context(), surface, owner, func(st *store.SessionStore) error {
		if err := st.DeleteSession(r.Context(), sessionID); err != nil {
			return err
		}
		resp = types.SessionsResponse{Success: true, ActiveID: st.ActiveID(), Sessions: st.Sessions()}
		return nil
	})
	if err != nil {
		config.Logger.Error("Failed to delete session: ", err)
		writeError(w, "Failed to delete session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SendMessageHandler appends the user's turn, asks the model with the prior
// turns as history and appends the reply. When the model call fails the user
// turn stays and no assistant turn is added, so the user can simply retry.
func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	surface, ok := surfaceFromRequest(w, r)
	if !ok {
		return
	}
	owner := middleware.OwnerFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	var req types.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, "Missing text", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	status := http.StatusOK
	var resp types.SendMessageResponse

	err := h.sessions.With(ctx, surface, owner, func(st *store.SessionStore) error {
		sess, found := st.Session(sessionID)
		if !found {
			return store.ErrSessionNotFound
		}

		userTurn := st.NewTurn(types.AuthorUser, req.Text, req.Attachments)
		if err := st.AppendTurn(ctx, sessionID, userTurn); err != nil {
			return err
		}

		prompt := req.Text + attachments.Context(req.Attachments)
		reply, err := h.completer.Complete(ctx, llm.GenerationRequest{
			Contents:         llm.BuildTranscript(sess.Turns, prompt, h.catalog.Instruction(surface.PromptContext)),
			GenerationConfig: llm.ChatGeneration,
		})
		if err != nil {
			config.Logger.WithField("kind", llm.ErrorKindOf(err).String()).Error("Failed to get AI response: ", err)
			status = llmStatus(err)
			resp.ErrorMessage = llmMessage(err)
			resp.Session, _ = st.Session(sessionID)
			return nil
		}

		aiTurn := st.NewTurn(types.AuthorAssistant, reply.Text, nil)
		if err := st.AppendTurn(ctx, sessionID, aiTurn); err != nil {
			return err
		}

		resp.Success = true
		resp.Reply = &aiTurn
		resp.Truncated = reply.Truncated
		resp.Session, _ = st.Session(sessionID)
		return nil
	})
	if errors.Is(err, store.ErrSessionNotFound) {
		writeError(w, "Session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		config.Logger.Error("Failed to update session: ", err)
		writeError(w, "Could not save message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, status, resp)
}
