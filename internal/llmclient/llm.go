package llmclient

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrEmptyResponse is returned when the provider answers without content.
	ErrEmptyResponse = errors.New("llmclient: empty response from model")
)

// ChatRequest is a single system+user exchange. JSONOnly asks the provider for
// a machine-parseable JSON body where the API supports it; callers still
// validate the payload themselves.
type ChatRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	JSONOnly    bool
}

// Client is a minimal chat-completion client. Implementations wrap one hosted
// model API; cross-cutting policy (there is deliberately none here: no retry,
// no rate limiting) stays with the caller.
type Client interface {
	Name() string
	Complete(ctx context.Context, req ChatRequest) (string, error)
	Close() error
}

// NewFromEnv builds the configured provider client. LLM_PROVIDER selects
// mistral (default) or gemini; keys come from the provider's usual env var.
func NewFromEnv(ctx context.Context) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	switch provider {
	case "", "mistral":
		return NewMistralClient(os.Getenv("MISTRAL_API_KEY"), os.Getenv("MISTRAL_MODEL"))
	case "gemini":
		return NewGeminiClient(ctx, os.Getenv("GEMINI_MODEL"))
	default:
		return nil, fmt.Errorf("llmclient: unknown provider %q", provider)
	}
}
