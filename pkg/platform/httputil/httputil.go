package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "miigate/pkg/domain-errors"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore
	// encoding errors. The response body may be incomplete, but headers are
	// already sent.
	_ = json.NewEncoder(w).Encode(response)
}

// ErrorResponse is the stable outward error shape. Field is present only for
// invalid_format errors so the caller can surface the message inline on the
// offending input.
type ErrorResponse struct {
	Error       string `json:"error"`
	Field       string `json:"field,omitempty"`
	Description string `json:"error_description,omitempty"`
}

// WriteError centralizes domain error translation to HTTP responses.
// Internal error kinds never leak stack traces or upstream raw bodies.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		response := ErrorResponse{
			Error: string(domainErr.Code),
			Field: domainErr.Field,
		}
		if domainErr.Message != "" {
			response.Description = domainErr.Message
		}
		WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), response)
		return
	}

	// Fallback for unexpected errors
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: string(dErrors.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidFormat:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
