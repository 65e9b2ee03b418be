package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"politix/internal/feed"
	"politix/internal/gateway/repository/clientstate"
	"politix/internal/gateway/service/analyze"
	"politix/internal/gateway/service/assistant"
	"politix/internal/gateway/service/insights"
	"politix/internal/gateway/service/topics"
)

// Service implements all gateway HTTP endpoints. It holds one field per
// application service plus the client-state store the browser reads and
// writes directly.
type Service struct {
	topics    *topics.Service
	insights  *insights.Service
	analyze   *analyze.Service
	assistant *assistant.Service
	state     *clientstate.Store
	feed      *feed.Generator
}

func NewService(
	topicsSvc *topics.Service,
	insightsSvc *insights.Service,
	analyzeSvc *analyze.Service,
	assistantSvc *assistant.Service,
	state *clientstate.Store,
	feedGen *feed.Generator,
) *Service {
	return &Service{
		topics:    topicsSvc,
		insights:  insightsSvc,
		analyze:   analyzeSvc,
		assistant: assistantSvc,
		state:     state,
		feed:      feedGen,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError emits the {"error": "..."} body every endpoint uses for
// failures.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// splitParam turns a comma-separated query value into trimmed parts.
func splitParam(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
