package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/adapter/ai"
)

const defaultModel = "claude-sonnet-4-20250514"

// Classifier calls the Anthropic Messages API to label an utterance when
// the rule tier produced no match. The model is instructed to answer with
// a single JSON object; anything else is a provider error.
type Classifier struct {
	apiKey     string
	model      string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClassifier(apiKey, model string, log *zap.Logger) *Classifier {
	if model == "" {
		model = defaultModel
	}
	return &Classifier{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
		log:        log,
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (c *Classifier) Classify(ctx context.Context, prompt string) (string, float64, error) {
	if c.apiKey == "" {
		return "", 0, fmt.Errorf("anthropic: API key not configured")
	}

	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: 128,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", 0, fmt.Errorf("anthropic: create request: %w", err)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("anthropic: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", 0, fmt.Errorf("anthropic: API error status %d: %s", resp.StatusCode, string(body))
	}

	var result anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, fmt.Errorf("anthropic: decode response: %w", err)
	}

	if len(result.Content) == 0 {
		return "", 0, fmt.Errorf("anthropic: no content returned")
	}

	c.log.Debug("Anthropic classification completed",
		zap.Int("input_tokens", result.Usage.InputTokens),
		zap.Int("output_tokens", result.Usage.OutputTokens),
	)

	return ai.ParseClassification(result.Content[0].Text)
}
