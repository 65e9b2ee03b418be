package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestMistral(t *testing.T, handler http.HandlerFunc) *MistralClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewMistralClient("test-key", "")
	if err != nil {
		t.Fatalf("NewMistralClient() error = %v", err)
	}
	c.SetBaseURL(srv.URL)
	return c
}

func TestMistralComplete(t *testing.T) {
	var gotReq mistralChatReq
	var gotAuth string
	c := newTestMistral(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "hello"}},
			},
		})
	})

	out, err := c.Complete(context.Background(), ChatRequest{
		System:      "sys",
		User:        "usr",
		Temperature: 0.7,
		MaxTokens:   100,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "hello" {
		t.Fatalf("Complete() = %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != defaultMistralModel {
		t.Fatalf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "usr" {
		t.Fatalf("request messages = %+v", gotReq.Messages)
	}
	if gotReq.ResponseFormat != nil {
		t.Fatalf("response_format set without JSONOnly")
	}
}

func TestMistralCompleteJSONOnly(t *testing.T) {
	var gotReq mistralChatReq
	c := newTestMistral(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "{}"}},
			},
		})
	})

	if _, err := c.Complete(context.Background(), ChatRequest{User: "u", JSONOnly: true}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if gotReq.ResponseFormat["type"] != "json_object" {
		t.Fatalf("response_format = %+v", gotReq.ResponseFormat)
	}
}

func TestMistralCompleteErrorStatus(t *testing.T) {
	c := newTestMistral(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	})
	_, err := c.Complete(context.Background(), ChatRequest{User: "u"})
	if err == nil {
		t.Fatalf("Complete() succeeded on 401")
	}
}

func TestMistralCompleteEmptyChoices(t *testing.T) {
	c := newTestMistral(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})
	_, err := c.Complete(context.Background(), ChatRequest{User: "u"})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("Complete() error = %v, want ErrEmptyResponse", err)
	}
}
