package handler

import (
	"errors"
	"net/http"
	"strings"

	"politix/internal/gateway/repository/clientstate"
)

// HandleState serves /api/state/{key}: GET reads a value, PUT writes one, and
// DELETE clears it. Keys outside the documented schema are rejected.
func (s *Service) HandleState(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/state/")
	if key == "" || strings.Contains(key, "/") {
		writeError(w, http.StatusBadRequest, "state key is required")
		return
	}
	if !clientstate.IsKnownKey(key) {
		writeError(w, http.StatusNotFound, "unknown state key")
		return
	}

	switch r.Method {
	case http.MethodGet:
		value, ok := s.state.Get(key)
		if !ok {
			writeError(w, http.StatusNotFound, "state key not set")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
	case http.MethodPut:
		var body struct {
			Value string `json:"value"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		if err := s.state.Set(key, body.Value); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, clientstate.ErrUnknownKey) {
				status = http.StatusNotFound
			}
			writeError(w, status, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": body.Value})
	case http.MethodDelete:
		if err := s.state.Delete(key); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
