package server

import (
	"net/http"

	"politix/internal/gateway/handler"
	"politix/internal/gateway/middleware"
)

func NewMux(svc *handler.Service) http.Handler {
	mux := http.NewServeMux()

	// Dashboard API
	mux.HandleFunc("/api/topics", svc.HandleTopics)
	mux.HandleFunc("/api/topics/", svc.HandleTopicByID)
	mux.HandleFunc("/api/insights", svc.HandleInsights)
	mux.HandleFunc("/api/insights/stats", svc.HandleInsightStats)
	mux.HandleFunc("/api/state/", svc.HandleState)
	mux.HandleFunc("/api/feed/ws", svc.HandleFeedWS)

	// LLM-backed functions
	mux.HandleFunc("/functions/analyze-website", svc.HandleAnalyzeWebsite)
	mux.HandleFunc("/functions/regulatory-assistant", svc.HandleRegulatoryAssistant)

	// Middleware
	return middleware.CORS(mux)
}
