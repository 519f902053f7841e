package llm

import (
	"clementus360/edu-copilot/config"
	"fmt"
)

// NewCompleter builds the Completer for the configured backend.
func NewCompleter(settings *config.Settings) (Completer, error) {
	switch settings.LLMBackend {
	case config.BackendREST, "":
		return NewGeminiClient(WithModel(settings.Model), WithTimeout(settings.UpstreamTimeout)), nil
	case config.BackendSDK:
		return NewGenAIClient(settings.Model, settings.UpstreamTimeout), nil
	default:
		return nil, fmt.Errorf("unsupported llm backend: %s (supported: %s, %s)", settings.LLMBackend, config.BackendREST, config.BackendSDK)
	}
}
