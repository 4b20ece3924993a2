package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"spryte/internal/config"
)

// OpenAI talks to the chat-completions API over plain HTTP. There is no
// official Go SDK dependency worth carrying for two request shapes.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func newOpenAI(cfg config.Config) (Provider, error) {
	if cfg.OpenAIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &OpenAI{
		apiKey:  cfg.OpenAIKey,
		model:   cfg.OpenAIModel,
		baseURL: cfg.OpenAIBaseURL,
		client:  &http.Client{Timeout: cfg.TransformTimeout},
	}, nil
}

func (o *OpenAI) TransformText(ctx context.Context, text, action, extra string) (string, error) {
	return o.Complete(ctx, TransformSystemPrompt, PromptFor(action, text, extra))
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (o *OpenAI) Complete(ctx context.Context, system, prompt string) (string, error) {
	payload := &chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("malformed provider response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("provider error: %s", parsed.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("provider returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
