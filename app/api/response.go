package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse is the body of requests that return nothing but the flag.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Question is the wire shape of a question.
type Question struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   uint   `json:"category"`
	Difficulty int    `json:"difficulty"`
}

var messages = map[int]string{
	http.StatusBadRequest:          "Bad request",
	http.StatusNotFound:            "Resource not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusUnprocessableEntity: "Cannot process request",
	http.StatusInternalServerError: "Internal server error",
}

// JSON writes payload with the given status code. The status line is sent
// before encoding, so an encode failure can only be logged.
func JSON(w http.ResponseWriter, r *http.Request, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("encode response")
	}
}

// Abort writes the canonical error envelope for statusCode.
func Abort(w http.ResponseWriter, r *http.Request, statusCode int) {
	message, ok := messages[statusCode]
	if !ok {
		message = http.StatusText(statusCode)
	}
	JSON(w, r, statusCode, ErrorResponse{
		Success: false,
		Error:   statusCode,
		Message: message,
	})
}

// Fail maps err to an error envelope. Errors that are not one of the
// request error kinds are logged and reported as 500.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	if statusCode, ok := StatusFor(err); ok {
		Abort(w, r, statusCode)
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	Abort(w, r, http.StatusInternalServerError)
}
