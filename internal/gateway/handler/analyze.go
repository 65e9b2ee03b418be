package handler

import (
	"log"
	"net/http"
	"strings"
)

// HandleAnalyzeWebsite serves POST /functions/analyze-website.
func (s *Service) HandleAnalyzeWebsite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body struct {
		WebsiteURL string `json:"websiteUrl"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.WebsiteURL) == "" {
		writeError(w, http.StatusBadRequest, "Website URL is required")
		return
	}

	log.Printf("analyzing website: %s", body.WebsiteURL)
	result, err := s.analyze.Analyze(r.Context(), body.WebsiteURL)
	if err != nil {
		log.Printf("analyze-website: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// New topics change what the insights pipeline can match against.
	s.insights.Invalidate()
	writeJSON(w, http.StatusOK, result)
}
