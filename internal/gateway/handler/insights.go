package handler

import (
	"net/http"
	"strings"

	"politix/internal/gateway/repository/analysis"
	"politix/internal/gateway/service/insights"
	"politix/internal/insight"
)

// HandleInsights serves GET /api/insights. Filters arrive as comma-separated
// query params; an absent priorities param means all priorities, while an
// explicitly empty one selects nothing.
func (s *Service) HandleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := insights.Query{
		TopicIDs:    splitParam(r.URL.Query().Get("topics")),
		Priorities:  parsePriorities(r),
		ContentType: contentTypeParam(r),
	}
	list, err := s.insights.List(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"insights": list})
}

// HandleInsightStats serves GET /api/insights/stats.
func (s *Service) HandleInsightStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	topicIDs := splitParam(r.URL.Query().Get("topics"))
	followed := len(s.state.SelectedTopicIDs())
	stats, err := s.insights.Stats(r.Context(), topicIDs, followed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func parsePriorities(r *http.Request) []insight.Priority {
	if !r.URL.Query().Has("priorities") {
		return insight.AllPriorities
	}
	parts := splitParam(r.URL.Query().Get("priorities"))
	out := make([]insight.Priority, 0, len(parts))
	for _, p := range parts {
		out = append(out, insight.Priority(strings.ToLower(p)))
	}
	return out
}

func contentTypeParam(r *http.Request) string {
	if ct := strings.TrimSpace(r.URL.Query().Get("content_type")); ct != "" {
		return ct
	}
	return analysis.ContentTypeRegulatoryInsight
}
