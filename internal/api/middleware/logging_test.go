package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatherly/server/internal/domain/organizations"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggingCarriesCorrelationAndTenant(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	repo := stubOrgRepo{
		getBySlugFn: func(slug string) (*organizations.Organization, error) {
			return &organizations.Organization{Slug: slug, Name: "Acme Events"}, nil
		},
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{org}/events", ResolveTenant(organizations.NewService(repo), "test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	var handler http.Handler = mux
	handler = RequestLogging(logger)(handler)
	handler = CorrelationID(logger)(handler)

	req := httptest.NewRequest(http.MethodGet, "/acme-events/events", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "request", entry["message"])
	require.Equal(t, "req-123", entry["request_id"])
	require.Equal(t, "acme-events", entry["org"])
	require.Equal(t, float64(http.StatusOK), entry["status"])
	require.Equal(t, http.MethodGet, entry["method"])
}

func TestRequestLoggingErrorLevelOnServerFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := RequestLogging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "error", entry["level"])
	require.Equal(t, float64(http.StatusInternalServerError), entry["status"])
}
