package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"politix/internal/feed"
	"politix/internal/gateway/repository/analysis"
	artifactrepo "politix/internal/gateway/repository/artifact"
	"politix/internal/gateway/repository/clientstate"
	topicrepo "politix/internal/gateway/repository/topic"
	"politix/internal/gateway/service/analyze"
	"politix/internal/gateway/service/assistant"
	"politix/internal/gateway/service/insights"
	"politix/internal/gateway/service/topics"
	"politix/internal/insight"
	"politix/internal/llmclient"
	"politix/internal/topic"
)

type testEnv struct {
	svc      *Service
	topics   topicrepo.Store
	analyses analysis.Store
	state    *clientstate.Store
}

func newTestEnv(t *testing.T, llm llmclient.Client) *testEnv {
	t.Helper()
	topicStore := topicrepo.NewMemoryStore()
	analysisStore := analysis.NewMemoryStore()
	state := clientstate.New(filepath.Join(t.TempDir(), "state.json"))

	svc := NewService(
		topics.New(topicStore, state),
		insights.New(analysisStore, topicStore),
		analyze.New(llm, topicStore, artifactrepo.NewMemoryStore(), state),
		assistant.New(llm),
		state,
		feed.NewGenerator(1),
	)
	return &testEnv{svc: svc, topics: topicStore, analyses: analysisStore, state: state}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func TestTopicsEndToEnd(t *testing.T) {
	env := newTestEnv(t, llmclient.NewFakeClient())

	// Create
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/topics",
		strings.NewReader(`{"name":"AI Regulation","description":"EU rules"}`))
	env.svc.HandleTopics(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/topics status = %d: %s", rec.Code, rec.Body.String())
	}
	var created topic.Topic
	decodeJSON(t, rec, &created)
	if created.ID == "" || created.Name != "AI Regulation" {
		t.Fatalf("created topic = %+v", created)
	}

	// List
	rec = httptest.NewRecorder()
	env.svc.HandleTopics(rec, httptest.NewRequest(http.MethodGet, "/api/topics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/topics status = %d", rec.Code)
	}
	var listResp struct {
		Topics []topic.Topic `json:"topics"`
	}
	decodeJSON(t, rec, &listResp)
	if len(listResp.Topics) != 1 {
		t.Fatalf("GET /api/topics topics = %+v", listResp.Topics)
	}

	// Update
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/topics/"+created.ID,
		strings.NewReader(`{"name":"Renamed","description":""}`))
	env.svc.HandleTopicByID(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/topics/{id} status = %d: %s", rec.Code, rec.Body.String())
	}

	// Update unknown id
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/topics/nope",
		strings.NewReader(`{"name":"X"}`))
	env.svc.HandleTopicByID(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("PUT unknown topic status = %d", rec.Code)
	}
}

func TestInsightsEndpoint(t *testing.T) {
	env := newTestEnv(t, llmclient.NewFakeClient())
	ctx := context.Background()
	_, err := env.analyses.Insert(ctx, insight.RawRecord{
		ContentType:  analysis.ContentTypeRegulatoryInsight,
		AnalysisData: json.RawMessage(`{"title":"T","priority":"urgent"}`),
		AnalysisDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := httptest.NewRecorder()
	env.svc.HandleInsights(rec, httptest.NewRequest(http.MethodGet, "/api/insights", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/insights status = %d", rec.Code)
	}
	var resp struct {
		Insights []insight.Insight `json:"insights"`
	}
	decodeJSON(t, rec, &resp)
	if len(resp.Insights) != 1 || resp.Insights[0].Title != "T" {
		t.Fatalf("GET /api/insights = %+v", resp.Insights)
	}

	// Explicitly empty priorities filter selects nothing.
	rec = httptest.NewRecorder()
	env.svc.HandleInsights(rec, httptest.NewRequest(http.MethodGet, "/api/insights?priorities=", nil))
	decodeJSON(t, rec, &resp)
	if len(resp.Insights) != 0 {
		t.Fatalf("empty priorities param returned %d insights", len(resp.Insights))
	}
}

func TestStateEndpoint(t *testing.T) {
	env := newTestEnv(t, llmclient.NewFakeClient())

	// Unknown key
	rec := httptest.NewRecorder()
	env.svc.HandleState(rec, httptest.NewRequest(http.MethodGet, "/api/state/bogus", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET unknown key status = %d", rec.Code)
	}

	// Put + Get
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/state/analyzedWebsite",
		strings.NewReader(`{"value":"https://example.com"}`))
	env.svc.HandleState(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT state status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	env.svc.HandleState(rec, httptest.NewRequest(http.MethodGet, "/api/state/analyzedWebsite", nil))
	var got struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	decodeJSON(t, rec, &got)
	if got.Value != "https://example.com" {
		t.Fatalf("GET state = %+v", got)
	}

	// Over-cap selection rejected
	rec = httptest.NewRecorder()
	ids := make([]string, clientstate.MaxSelectedTopics+1)
	for i := range ids {
		ids[i] = "t"
	}
	b, _ := json.Marshal(map[string]any{"value": marshalIDs(t, ids)})
	req = httptest.NewRequest(http.MethodPut, "/api/state/selectedTopics", strings.NewReader(string(b)))
	env.svc.HandleState(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("PUT over-cap selection status = %d", rec.Code)
	}

	// Delete
	rec = httptest.NewRecorder()
	env.svc.HandleState(rec, httptest.NewRequest(http.MethodDelete, "/api/state/analyzedWebsite", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE state status = %d", rec.Code)
	}
}

func marshalIDs(t *testing.T, ids []string) string {
	t.Helper()
	b, err := json.Marshal(ids)
	if err != nil {
		t.Fatalf("marshal ids: %v", err)
	}
	return string(b)
}

func TestAnalyzeEndpoint(t *testing.T) {
	fake := llmclient.NewFakeClient(`[{"name":"Data Privacy","description":"GDPR."}]`)
	env := newTestEnv(t, fake)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/functions/analyze-website",
		strings.NewReader(`{"websiteUrl":"https://example.com"}`))
	env.svc.HandleAnalyzeWebsite(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST analyze status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp analyze.Result
	decodeJSON(t, rec, &resp)
	if len(resp.Topics) != 1 || len(resp.AddedTopics) != 1 {
		t.Fatalf("analyze response = %+v", resp)
	}

	// Missing URL
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/functions/analyze-website", strings.NewReader(`{}`))
	env.svc.HandleAnalyzeWebsite(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST analyze without url status = %d", rec.Code)
	}
}

func TestAssistantEndpoint(t *testing.T) {
	fake := llmclient.NewFakeClient("Based on INSIGHT ins-1, the answer is yes.")
	env := newTestEnv(t, fake)

	body := `{"query":"Did anything change?","insights":[{"id":"ins-1","title":"T","description":"D","source":"S","priority":"high","date":"1/1/2024, 1:00:00 AM","topic":"X"}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/functions/regulatory-assistant", strings.NewReader(body))
	env.svc.HandleRegulatoryAssistant(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST assistant status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	decodeJSON(t, rec, &resp)
	if !strings.Contains(resp["response"], "ins-1") {
		t.Fatalf("assistant response = %+v", resp)
	}

	// Missing insights
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/functions/regulatory-assistant",
		strings.NewReader(`{"query":"q","insights":[]}`))
	env.svc.HandleRegulatoryAssistant(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST assistant without insights status = %d", rec.Code)
	}
}
