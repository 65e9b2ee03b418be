package llmclient

import (
	"context"
	"sync"
)

// FakeClient replays scripted responses in order. Tests use it in place of a
// hosted model.
type FakeClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	Requests  []ChatRequest
}

func NewFakeClient(responses ...string) *FakeClient {
	return &FakeClient{responses: responses}
}

// NewFailingClient always returns err.
func NewFailingClient(err error) *FakeClient {
	return &FakeClient{err: err}
}

func (f *FakeClient) Name() string { return "fake" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Complete(_ context.Context, req ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", ErrEmptyResponse
	}
	out := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return out, nil
}
