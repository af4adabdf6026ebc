package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"locali/internal/config"
	"locali/internal/port"
	"locali/internal/triage"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

func init() {
	triage.RegisterProvider("claude", func(cfg *config.TriageConfig) (port.ContentClassifier, error) {
		return NewClassifier(cfg), nil
	})
}

// Classifier implements port.ContentClassifier using the Anthropic Messages API.
type Classifier struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClassifier creates a Claude-based content classifier. cfg.Endpoint
// overrides the API URL when set.
func NewClassifier(cfg *config.TriageConfig) *Classifier {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return newClassifier(cfg, endpoint)
}

// NewClassifierWithEndpoint creates a classifier pointing at a custom API endpoint (for testing).
func NewClassifierWithEndpoint(cfg *config.TriageConfig, endpoint string) *Classifier {
	return newClassifier(cfg, endpoint)
}

func newClassifier(cfg *config.TriageConfig, endpoint string) *Classifier {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Classifier{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Classifier) Classify(ctx context.Context, input port.ClassifyInput) (*port.ClassifyOutput, error) {
	reqBody := map[string]interface{}{
		"model":       c.model,
		"max_tokens":  256,
		"temperature": triage.Temperature,
		"system":      triage.SystemInstruction,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": triage.BuildUserMessage(input),
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, triage.Truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, triage.NewThrottleError("claude", baseErr, resp.Header.Get("Retry-After"), time.Now())
		}
		return nil, baseErr
	}

	return parseResponse(respBody, c.model)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte, model string) (*port.ClassifyOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	if resp.StopReason == "max_tokens" {
		return nil, fmt.Errorf("output truncated (stop_reason: max_tokens)")
	}

	safe, reason, err := triage.ParseClassification(resp.Content[0].Text)
	if err != nil {
		return nil, err
	}

	return &port.ClassifyOutput{
		Safe:      safe,
		Reason:    reason,
		ModelUsed: model,
	}, nil
}
