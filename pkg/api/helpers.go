package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/logging"
	"github.com/dd0wney/gridcast/pkg/service"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps engine errors onto HTTP status codes:
// unknown node 404, no deployment 409, bad enums 400, anything else 500.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, graph.ErrNodeNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotInitialized):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, graph.ErrUnknownFailureType),
		errors.Is(err, graph.ErrUnknownSeverity),
		errors.Is(err, graph.ErrUnknownNodeType):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", logging.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
