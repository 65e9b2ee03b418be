package handler

import (
	"log"
	"net/http"

	"politix/internal/insight"
)

// HandleRegulatoryAssistant serves POST /functions/regulatory-assistant.
func (s *Service) HandleRegulatoryAssistant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body struct {
		Query    string            `json:"query"`
		Insights []insight.Insight `json:"insights"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Query == "" || len(body.Insights) == 0 {
		writeError(w, http.StatusBadRequest, "Query and insights are required")
		return
	}

	answer, err := s.assistant.Ask(r.Context(), body.Query, body.Insights)
	if err != nil {
		log.Printf("regulatory-assistant: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": answer})
}
