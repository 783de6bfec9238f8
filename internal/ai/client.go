// Package ai calls the external generation service that produces study
// schedules from a natural-language prompt plus a machine-checked JSON
// schema.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mindarch/mindarch/internal/config"
	"github.com/mindarch/mindarch/internal/logger"
	"github.com/mindarch/mindarch/internal/plan"
)

// Generator produces a raw study schedule from validated parameters.
type Generator interface {
	Generate(ctx context.Context, params plan.GenerationParams) (*plan.GeneratedSchedule, error)
}

// Client talks to a Gemini-style generateContent endpoint. Requests are
// not retried: a failure surfaces to the caller, who may re-trigger
// generation manually.
type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// New builds a client from the environment. MINDARCH_API_KEY is required.
func New(log *logger.Logger) (*Client, error) {
	apiKey := config.GetEnv(config.EnvAPIKey, "")
	if apiKey == "" {
		return nil, fmt.Errorf("missing %s", config.EnvAPIKey)
	}

	baseURL := strings.TrimRight(config.GetEnv(config.EnvAPIBaseURL, "https://generativelanguage.googleapis.com"), "/")
	model := config.GetEnv(config.EnvModel, "gemini-2.0-flash")
	timeoutSec := config.GetEnvInt(config.EnvTimeoutSec, 120)

	return &Client{
		log:        log.With("service", "GenerationClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type generateContentRequest struct {
	Contents []content `json:"contents"`

	GenerationConfig struct {
		ResponseMimeType string         `json:"responseMimeType"`
		ResponseSchema   map[string]any `json:"responseSchema"`
	} `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends one generation request and parses the structured result.
// Error taxonomy: transport failures and non-2xx statuses propagate as-is
// (the latter as *HTTPError); a response with no text is ErrEmptyResponse;
// unparsable or schema-violating text is ErrMalformedResponse.
func (c *Client) Generate(ctx context.Context, params plan.GenerationParams) (*plan.GeneratedSchedule, error) {
	req := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: BuildPrompt(params)}}}},
	}
	req.GenerationConfig.ResponseMimeType = "application/json"
	req.GenerationConfig.ResponseSchema = responseSchema()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyResponse
	}

	var genResp generateContentResponse
	if err := json.Unmarshal(raw, &genResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	text := extractText(genResp)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	var schedule plan.GeneratedSchedule
	if err := json.Unmarshal([]byte(text), &schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	c.log.Info("Schedule generated",
		"model", c.model,
		"days", len(schedule.Schedule),
		"elapsed", time.Since(started).String(),
	)

	return &schedule, nil
}

func extractText(resp generateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}
