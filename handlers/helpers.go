package handlers

import (
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/llm"
	"clementus360/edu-copilot/store"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	completer llm.Completer
	catalog   *llm.Catalog
	sessions  *store.Manager
}

func NewHandler(completer llm.Completer, catalog *llm.Catalog, sessions *store.Manager) *Handler {
	if catalog == nil {
		catalog = llm.DefaultCatalog()
	}
	return &Handler{completer: completer, catalog: catalog, sessions: sessions}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		config.Logger.Warn("Failed to encode response: ", err)
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// llmStatus maps a Completer error to the status the browser pages expect:
// 503 when the upstream could not be reached, 500 otherwise.
func llmStatus(err error) int {
	if llm.ErrorKindOf(err) == llm.ConnectivityError {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func llmMessage(err error) string {
	switch llm.ErrorKindOf(err) {
	case llm.ConfigurationError:
		return "API key não configurada"
	case llm.ConnectivityError:
		return "Erro de conexão com a API de IA"
	default:
		return "Erro interno: " + err.Error()
	}
}

// surfaceFromRequest resolves the {surface} URL parameter, answering 404 when
// it is unknown.
func surfaceFromRequest(w http.ResponseWriter, r *http.Request) (config.Surface, bool) {
	name := chi.URLParam(r, "surface")
	surface, ok := config.LookupSurface(name)
	if !ok {
		writeError(w, "Unknown surface: "+name, http.StatusNotFound)
		return config.Surface{}, false
	}
	return surface, true
}
