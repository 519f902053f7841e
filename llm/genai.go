package llm

import (
	"clementus360/edu-copilot/config"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GenAIClient satisfies Completer through the official Go SDK. The SDK client
// is built per call because the API key is read at call time.
type GenAIClient struct {
	model   string
	apiKey  func() string
	baseURL func() string
	timeout time.Duration
}

func NewGenAIClient(model string, timeout time.Duration) *GenAIClient {
	if model == "" {
		model = DefaultModel
	}
	return &GenAIClient{
		model:   model,
		apiKey:  config.APIKey,
		baseURL: config.APIBaseURL,
		timeout: timeout,
	}
}

func (g *GenAIClient) Complete(ctx context.Context, req GenerationRequest) (Reply, error) {
	apiKey := g.apiKey()
	if apiKey == "" {
		return Reply{}, &Error{Kind: ConfigurationError}
	}

	base, version := sdkEndpoint(g.baseURL())
	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    base,
			APIVersion: version,
		},
	}
	if g.timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: g.timeout}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return Reply{}, &Error{Kind: ConfigurationError, Err: err}
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, toGenAIContents(req.Contents), toGenAIConfig(req.GenerationConfig))
	if err != nil {
		return Reply{}, classifySDKError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return Reply{}, &Error{Kind: EmptyResponse}
	}

	candidate := resp.Candidates[0]
	var texts []string
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil {
				texts = append(texts, part.Text)
			}
		}
	}
	return classifyCandidate(texts, string(candidate.FinishReason))
}

func toGenAIContents(contents []Content) []*genai.Content {
	out := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		parts := make([]*genai.Part, 0, len(c.Parts))
		for _, p := range c.Parts {
			if p.InlineData != nil {
				parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data}})
				continue
			}
			parts = append(parts, &genai.Part{Text: p.Text})
		}
		out = append(out, &genai.Content{Role: c.Role, Parts: parts})
	}
	return out
}

func toGenAIConfig(cfg GenerationConfig) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		MaxOutputTokens: int32(cfg.MaxOutputTokens),
		Temperature:     genai.Ptr(float32(cfg.Temperature)),
		TopP:            genai.Ptr(float32(cfg.TopP)),
		TopK:            genai.Ptr(float32(cfg.TopK)),
	}
}

func classifySDKError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: UpstreamError, StatusCode: apiErr.Code, Body: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &Error{Kind: UpstreamError, StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message, Err: err}
	}
	return &Error{Kind: ConnectivityError, Err: err}
}

// sdkEndpoint splits ".../v1beta/models" into the host root the SDK expects
// and the API version it appends itself.
func sdkEndpoint(raw string) (string, string) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw, ""
	}

	version := ""
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for _, seg := range segments {
		if strings.HasPrefix(seg, "v1") {
			version = seg
			break
		}
	}

	return u.Scheme + "://" + u.Host + "/", version
}
