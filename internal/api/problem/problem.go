package problem

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

const contentType = "application/json"

// ErrorResponse is the JSON error body shape for the whole API: a
// human-readable message plus optional per-field validation errors.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type Option func(*ErrorResponse)

func WithFieldErrors(errs map[string]string) Option {
	return func(p *ErrorResponse) {
		p.Errors = errs
	}
}

// Write serializes an error response and logs it with the request-scoped
// logger: warn for 4xx, error for 5xx. Outside development/test the message
// stays generic for 5xx so internals never leak to clients.
func Write(w http.ResponseWriter, r *http.Request, status int, message string, err error, env string, opts ...Option) {
	body := ErrorResponse{Message: message}
	for _, opt := range opts {
		opt(&body)
	}

	if status >= 500 && env != "development" && env != "test" {
		body.Message = http.StatusText(status)
	}

	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
