package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/bryhearnchi/tripguides/internal/domain"
)

// ErrorResponse is the JSON error envelope for every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON body with the given status.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

// respondError maps a service error to its HTTP status: ErrNotFound to
// 404, ErrValidation to 422, anything else to a 500 with the detail kept
// out of the body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.respondJSON(w, http.StatusNotFound,
			ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: "resource not found"}})
	case errors.Is(err, domain.ErrValidation):
		s.respondJSON(w, http.StatusUnprocessableEntity,
			ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		s.respondJSON(w, http.StatusInternalServerError,
			ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
	}
}

// respondBadRequest rejects a request before it reaches the service
// layer (malformed body, non-numeric path param).
func (s *Server) respondBadRequest(w http.ResponseWriter, message string) {
	s.respondJSON(w, http.StatusBadRequest,
		ErrorResponse{Error: ErrorDetail{Code: "bad_request", Message: message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: name is
// required" becomes "name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}
