package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/servimarket/internal/domain"
)

// Error codes carried in ErrorResponse.Error.Code.
const (
	codeNotFound      = "not_found"
	codeValidation    = "validation_error"
	codeBadRequest    = "bad_request"
	codeConflict      = "conflict"
	codeTooLarge      = "payload_too_large"
	codeInternal      = "internal"
	validationMarker  = "validation error: "
	internalErrorText = "internal server error"
)

// ErrorResponse is the JSON envelope for every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the body of ErrorResponse.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client may have gone away
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service error to its HTTP response.
// notFound is the message used for domain.ErrNotFound and domain.ErrAmbiguous,
// because the handler is the layer that knows what was being looked up.
// Unrecognized errors are logged and answered with a generic 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAmbiguous):
		writeJSON(w, http.StatusNotFound, errorBody(codeNotFound, notFound))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(codeValidation, unwrapMessage(err)))
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody(codeConflict, "resource already exists"))
	default:
		s.log.ErrorContext(r.Context(), "handler error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody(codeInternal, internalErrorText))
	}
}

// writeBadRequest answers input rejected before reaching the service layer.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody(codeBadRequest, message))
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "validation error: title is required" → "title is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, validationMarker); i >= 0 {
		return msg[i+len(validationMarker):]
	}
	return msg
}

// decodeJSON decodes the request body into dst, writing the error response
// itself and returning false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody(codeTooLarge, "request body too large"))
	case errors.Is(err, io.EOF):
		writeBadRequest(w, "request body is required")
	default:
		writeBadRequest(w, "malformed JSON body")
	}
	return false
}
