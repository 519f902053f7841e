package llm

import (
	"bytes"
	"clementus360/edu-copilot/config"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultModel = "gemini-2.0-flash-exp"

// GeminiClient calls generateContent over plain HTTP.
type GeminiClient struct {
	httpClient *http.Client
	model      string
	apiKey     func() string
	baseURL    func() string
}

type GeminiOption func(*GeminiClient)

// WithModel overrides DefaultModel.
func WithModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		if model != "" {
			g.model = model
		}
	}
}

// WithAPIKey pins the key instead of reading it from the environment per call.
func WithAPIKey(key string) GeminiOption {
	return func(g *GeminiClient) {
		g.apiKey = func() string { return key }
	}
}

// WithBaseURL pins the endpoint instead of reading it from the environment.
func WithBaseURL(base string) GeminiOption {
	return func(g *GeminiClient) {
		g.baseURL = func() string { return base }
	}
}

// WithTimeout sets a client-wide timeout. Zero leaves it to the transport.
func WithTimeout(d time.Duration) GeminiOption {
	return func(g *GeminiClient) {
		g.httpClient = &http.Client{Timeout: d}
	}
}

func WithHTTPClient(c *http.Client) GeminiOption {
	return func(g *GeminiClient) {
		g.httpClient = c
	}
}

func NewGeminiClient(opts ...GeminiOption) *GeminiClient {
	g := &GeminiClient{
		httpClient: &http.Client{},
		model:      DefaultModel,
		apiKey:     config.APIKey,
		baseURL:    config.APIBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Complete sends req and classifies the reply. It never retries.
func (g *GeminiClient) Complete(ctx context.Context, req GenerationRequest) (Reply, error) {
	apiKey := g.apiKey()
	if apiKey == "" {
		return Reply{}, &Error{Kind: ConfigurationError}
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return Reply{}, &Error{Kind: MalformedResponse, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL(), g.model, url.QueryEscape(apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return Reply{}, &Error{Kind: ConfigurationError, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		// Do only fails on transport problems; status codes are handled below
		return Reply{}, &Error{Kind: ConnectivityError, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, &Error{Kind: ConnectivityError, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		config.Logger.WithField("status", resp.StatusCode).Warn("Gemini returned an error status")
		return Reply{}, &Error{Kind: UpstreamError, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var res generateResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return Reply{}, &Error{Kind: MalformedResponse, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return replyFromResponse(res)
}

// replyFromResponse extracts the first candidate's first text part.
func replyFromResponse(res generateResponse) (Reply, error) {
	if len(res.Candidates) == 0 {
		return Reply{}, &Error{Kind: EmptyResponse}
	}

	candidate := res.Candidates[0]
	var texts []string
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			texts = append(texts, part.Text)
		}
	}
	return classifyCandidate(texts, candidate.FinishReason)
}

// classifyCandidate turns the parts of the first candidate into a Reply. An
// empty candidate is only acceptable when the output cap was hit.
func classifyCandidate(texts []string, finishReason string) (Reply, error) {
	if len(texts) == 0 {
		if finishReason == FinishReasonMaxTokens {
			config.Logger.Info("Gemini reply truncated at the output cap")
			return Reply{Text: TruncatedMessage, Truncated: true, FinishReason: finishReason}, nil
		}
		return Reply{}, &Error{Kind: MalformedResponse, Err: fmt.Errorf("no parts in content (finish reason %q)", finishReason)}
	}

	return Reply{Text: texts[0], FinishReason: finishReason}, nil
}
