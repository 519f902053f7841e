package llm

import (
	"context"
	"errors"
	"fmt"
)

// Upstream wire shapes of generateContent.

type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData carries a binary payload; Data is base64 encoded on the wire.
type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

type GenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

// Fixed generation settings per call site.
var (
	ChatGeneration       = GenerationConfig{MaxOutputTokens: 8192, Temperature: 0.7, TopP: 0.8, TopK: 40}
	GradingGeneration    = GenerationConfig{MaxOutputTokens: 8192, Temperature: 0.3, TopP: 0.8, TopK: 40}
	LessonPlanGeneration = GenerationConfig{MaxOutputTokens: 4096, Temperature: 0.8, TopP: 0.9, TopK: 40}
)

type GenerationRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content *struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

const FinishReasonMaxTokens = "MAX_TOKENS"

// TruncatedMessage replaces the reply when the output cap was hit before any
// text was produced.
const TruncatedMessage = "A resposta foi truncada devido ao limite de tokens. Por favor, tente uma pergunta mais específica ou divida sua solicitação em partes menores."

// Reply is a successful completion. Truncated replies carry TruncatedMessage
// as Text.
type Reply struct {
	Text         string
	Truncated    bool
	FinishReason string
}

// Completer performs one generateContent call.
type Completer interface {
	Complete(ctx context.Context, req GenerationRequest) (Reply, error)
}

type ErrorKind int

const (
	ConfigurationError ErrorKind = iota + 1
	ConnectivityError
	UpstreamError
	EmptyResponse
	MalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationError:
		return "configuration"
	case ConnectivityError:
		return "connectivity"
	case UpstreamError:
		return "upstream"
	case EmptyResponse:
		return "empty_response"
	case MalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Error is returned by every Completer. StatusCode and Body are only set for
// UpstreamError.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ConfigurationError:
		return "API key não configurada"
	case ConnectivityError:
		return fmt.Sprintf("Erro de conexão com a API de IA: %v", e.Err)
	case UpstreamError:
		return fmt.Sprintf("Erro na API Gemini: %d - %s", e.StatusCode, e.Body)
	case EmptyResponse:
		return "Nenhuma resposta gerada pela IA"
	case MalformedResponse:
		if e.Err != nil {
			return fmt.Sprintf("Estrutura de resposta inválida da IA: %v", e.Err)
		}
		return "Estrutura de resposta inválida da IA"
	default:
		return fmt.Sprintf("llm error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorKindOf returns the kind of a Completer error, or 0 if err did not come
// from a Completer.
func ErrorKindOf(err error) ErrorKind {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Kind
	}
	return 0
}
