package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

type classification struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// ParseClassification pulls the {"intent","confidence"} object out of a
// model's answer, tolerating surrounding prose or code fences. Anything
// without a parsable object is a provider error.
func ParseClassification(text string) (string, float64, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", 0, fmt.Errorf("no JSON object in model output: %q", text)
	}
	var c classification
	if err := json.Unmarshal([]byte(text[start:end+1]), &c); err != nil {
		return "", 0, fmt.Errorf("malformed classification payload: %w", err)
	}
	if c.Intent == "" {
		return "", 0, fmt.Errorf("classification payload missing intent")
	}
	return c.Intent, c.Confidence, nil
}
