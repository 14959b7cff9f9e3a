package response

import (
	"encoding/json"
	"net/http"
	"time"

	"quickbuy/internal/apperr"
	"quickbuy/internal/models"
)

const APIVersion = "v1"

type Meta struct {
	Version    string                 `json:"version"`
	Timestamp  string                 `json:"timestamp"`
	Pagination *models.PaginationMeta `json:"pagination,omitempty"`
}

// Envelope is the uniform wrapper every endpoint responds with.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    Meta        `json:"meta"`
	Errors  interface{} `json:"errors,omitempty"`
}

func newMeta(pagination *models.PaginationMeta) Meta {
	return Meta{
		Version:    APIVersion,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Pagination: pagination,
	}
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}, pagination *models.PaginationMeta) {
	writeJSON(w, statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    newMeta(pagination),
	})
}

// Error translates any error to the status and envelope for its kind.
// Internal detail is attached only when exposeDetail is set (non-production).
func Error(w http.ResponseWriter, err error, exposeDetail bool) {
	env := Envelope{
		Success: false,
		Message: apperr.ClientMessage(err),
		Meta:    newMeta(nil),
	}
	if exposeDetail && apperr.KindOf(err) == apperr.KindInternal {
		env.Errors = err.Error()
	}
	writeJSON(w, apperr.StatusCode(err), env)
}

// Fail writes an error envelope with an explicit status and message, for
// callers that sit outside the apperr taxonomy (middleware short-circuits).
func Fail(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, Envelope{
		Success: false,
		Message: message,
		Meta:    newMeta(nil),
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(env)
}
