package handler

import (
	"errors"
	"net/http"
	"strings"

	topicrepo "politix/internal/gateway/repository/topic"
	"politix/internal/gateway/service/topics"
)

// HandleTopics serves GET (list) and POST (create) on /api/topics.
func (s *Service) HandleTopics(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTopics(w, r)
	case http.MethodPost:
		s.createTopic(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Service) listTopics(w http.ResponseWriter, r *http.Request) {
	q := topics.ListQuery{
		IDs:    splitParam(r.URL.Query().Get("ids")),
		Source: r.URL.Query().Get("source"),
		Search: r.URL.Query().Get("search"),
	}

	if r.URL.Query().Get("categorized") == "true" {
		cats, err := s.topics.Categorized(r.Context(), q)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
		return
	}

	list, err := s.topics.List(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"topics": list})
}

type topicBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Service) createTopic(w http.ResponseWriter, r *http.Request) {
	var body topicBody
	if !decodeBody(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeError(w, http.StatusBadRequest, "topic name is required")
		return
	}
	created, err := s.topics.Create(r.Context(), body.Name, body.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleTopicByID serves PUT /api/topics/{id}.
func (s *Service) HandleTopicByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/topics/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "topic id is required")
		return
	}
	var body topicBody
	if !decodeBody(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeError(w, http.StatusBadRequest, "topic name is required")
		return
	}
	updated, err := s.topics.Update(r.Context(), id, body.Name, body.Description)
	if errors.Is(err, topicrepo.ErrNotFound) {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
