package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMistralModel   = "mistral-large-latest"
	defaultMistralBaseURL = "https://api.mistral.ai/v1/chat/completions"
)

// MistralClient calls the Mistral Chat Completions API (OpenAI-compatible).
// See: https://docs.mistral.ai/api/
type MistralClient struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
}

// NewMistralClient creates a Mistral client. The model defaults to
// mistral-large-latest when empty.
func NewMistralClient(apiKey, model string) (*MistralClient, error) {
	if strings.TrimSpace(model) == "" {
		model = defaultMistralModel
	}
	return &MistralClient{
		http:    &http.Client{Timeout: 60 * time.Second},
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: defaultMistralBaseURL,
	}, nil
}

func (m *MistralClient) Name() string { return "Mistral:" + m.model }
func (m *MistralClient) Close() error { return nil }

type mistralChatReq struct {
	Model          string            `json:"model"`
	Messages       []mistralMessage  `json:"messages"`
	Temperature    float32           `json:"temperature,omitempty"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type mistralMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type mistralChatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user exchange and returns the model text.
func (m *MistralClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	body := mistralChatReq{
		Model:       m.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages: []mistralMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
	}
	if req.JSONOnly {
		body.ResponseFormat = map[string]string{"type": "json_object"}
	}
	b, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		const max = 2048
		if len(raw) > max {
			raw = raw[:max]
		}
		return "", fmt.Errorf("mistral: unexpected status %s: %s", resp.Status, string(raw))
	}

	var out mistralChatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}

// SetBaseURL overrides the API endpoint. Tests point this at a local server.
func (m *MistralClient) SetBaseURL(u string) { m.baseURL = u }
