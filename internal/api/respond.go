package api

import (
	"encoding/json"
	"net/http"

	"github.com/sketchflow/sketchflow/pkg/errors"
)

// errorEnvelope is the wire shape for failures.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorEnvelope{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// statusFor maps machine-readable error codes onto HTTP statuses.
// Unknown codes are treated as internal failures.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidManifest,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPattern:
		return http.StatusBadRequest
	case errors.ErrCodeConflict:
		return http.StatusConflict
	case errors.ErrCodeValidation,
		errors.ErrCodeInvalidReference,
		errors.ErrCodeStateError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
