package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/adapter/ai"
)

const defaultModel = "gpt-4o-mini"

// Classifier is the OpenAI-backed fallback classification provider
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

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func (c *Classifier) Classify(ctx context.Context, prompt string) (string, float64, error) {
	if c.apiKey == "" {
		return "", 0, fmt.Errorf("openai: API key not configured")
	}

	reqBody := chatRequest{
		Model:     c.model,
		MaxTokens: 128,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", 0, fmt.Errorf("openai: create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("openai: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("openai: API error status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, fmt.Errorf("openai: decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", 0, fmt.Errorf("openai: no choices returned")
	}

	return ai.ParseClassification(result.Choices[0].Message.Content)
}
