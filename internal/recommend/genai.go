package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
)

// Transport sends a free-text prompt to the generative-language service and
// returns the raw response text. Implementations must return an error on any
// transport or configuration failure; callers decide the fallback.
type Transport interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// genaiTransport talks to a hosted Gemini-style generateContent endpoint.
type genaiTransport struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  logger.Logger
}

// NewTransport builds the HTTP transport from config. The client carries no
// timeout of its own; the per-call context deadline governs.
func NewTransport(cfg config.APIsConfig, log logger.Logger) Transport {
	return &genaiTransport{
		baseURL: strings.TrimRight(cfg.GenAI.BaseURL, "/"),
		apiKey:  cfg.GenAI.APIKey,
		model:   cfg.GenAI.Model,
		client:  &http.Client{},
		logger:  log.WithFields(map[string]interface{}{"component": "genai"}),
	}
}

// generateContent request/response shapes, reduced to the fields used here.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (t *genaiTransport) Generate(ctx context.Context, prompt string) (string, error) {
	if t.apiKey == "" {
		return "", errors.NewGenAIUnavailableError(fmt.Errorf("no API key configured"))
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	body, _ := json.Marshal(reqBody)

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", t.baseURL, t.model, t.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", errors.NewGenAIUnavailableError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.NewGenAITimeoutError()
		}
		return "", errors.NewGenAIUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewGenAIUnavailableError(fmt.Errorf("status %d", resp.StatusCode))
	}

	var apiResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", errors.NewGenAIUnavailableError(fmt.Errorf("decode error: %w", err))
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.NewGenAIUnavailableError(fmt.Errorf("empty response"))
	}

	var sb strings.Builder
	for _, p := range apiResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
