// Package httputil writes the uniform JSON result envelope shared by every
// handler and maps coded domain errors onto HTTP status codes.
package httputil

import (
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	dErrors "libraria/pkg/domain-errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Result is the envelope every mutating endpoint returns. Handlers embed it
// next to the entity field ("book", "member", "transaction").
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// OK builds a success envelope.
func OK(message string) Result {
	return Result{Success: true, Message: message}
}

// Failure builds a failure envelope from a coded error. Internal errors get a
// generic message so causes never leak to clients.
func Failure(err error) Result {
	code := dErrors.CodeOf(err)
	return Result{
		Success: false,
		Message: dErrors.MessageOf(err),
		Error:   string(code),
	}
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidInput, dErrors.CodeValidation, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeInvariantViolation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a failure envelope for err.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(dErrors.CodeOf(err)), Failure(err))
}

// DecodeJSON reads a JSON request body into dst. Unknown fields are rejected.
func DecodeJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
