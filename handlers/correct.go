package handlers

import (
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/llm"
	"clementus360/edu-copilot/types"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// CorrectTestHandler grades a student's test against an answer key. Both
// files arrive base64 encoded, optionally as data URLs.
func (h *Handler) CorrectTestHandler(w http.ResponseWriter, r *http.Request) {
	var req types.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	answerKey, keyMIME, err := decodeBase64File(req.AnswerKeyFile)
	if err != nil {
		writeError(w, "Invalid answerKeyFile: "+err.Error(), http.StatusBadRequest)
		return
	}
	submission, _, err := decodeBase64File(req.StudentTestFile)
	if err != nil {
		writeError(w, "Invalid studentTestFile: "+err.Error(), http.StatusBadRequest)
		return
	}

	mime := req.MIMEType
	if mime == "" {
		mime = keyMIME
	}

	result, err := llm.GradeSubmission(r.Context(), h.completer, llm.GradingInput{
		AnswerKey:   answerKey,
		Submission:  submission,
		MIMEType:    mime,
		StudentName: req.StudentName,
		Subject:     req.Subject,
		Grade:       req.Grade,
	})
	if err != nil {
		config.Logger.WithField("kind", llm.ErrorKindOf(err).String()).Error("Failed to grade submission: ", err)
		writeJSON(w, llmStatus(err), types.CorrectionErrorResponse{
			ErrorMessage:     "Erro na correção: " + llmMessage(err),
			CorrectionResult: types.EmptyCorrection("Erro ao processar correção automática."),
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// decodeBase64File accepts plain base64 or a "data:<mime>;base64,<data>" URL.
func decodeBase64File(value string) ([]byte, string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, "", fmt.Errorf("empty file")
	}

	mime := ""
	if strings.HasPrefix(value, "data:") {
		header, data, found := strings.Cut(value, ",")
		if !found {
			return nil, "", fmt.Errorf("malformed data URL")
		}
		mime = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		value = data
	}

	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(value, "="))
		if err != nil {
			return nil, "", fmt.Errorf("not base64: %w", err)
		}
	}
	return decoded, mime, nil
}
