package llm

import (
	"clementus360/edu-copilot/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleter(t *testing.T) {
	c, err := NewCompleter(&config.Settings{LLMBackend: config.BackendREST, Model: "gemini-x", UpstreamTimeout: 5 * time.Second})
	require.NoError(t, err)
	rest, ok := c.(*GeminiClient)
	require.True(t, ok)
	assert.Equal(t, "gemini-x", rest.model)
	assert.Equal(t, 5*time.Second, rest.httpClient.Timeout)

	c, err = NewCompleter(&config.Settings{LLMBackend: config.BackendSDK, Model: "gemini-y"})
	require.NoError(t, err)
	assert.IsType(t, &GenAIClient{}, c)

	_, err = NewCompleter(&config.Settings{LLMBackend: "openai"})
	require.Error(t, err)
}
