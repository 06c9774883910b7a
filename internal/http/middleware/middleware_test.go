package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elenaw/gusteau/internal/config"
	"github.com/elenaw/gusteau/internal/http/middleware"
	"github.com/elenaw/gusteau/internal/observability"
)

func TestChain_AppliesInOrder(t *testing.T) {
	var order []string

	tag := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	chain := middleware.Chain(tag("first"), tag("second"))
	handler := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestTrace_InjectsIdentifiers(t *testing.T) {
	var gotTraceID, gotRequestID string

	handler := middleware.Trace()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTraceID = observability.GetTraceID(r.Context())
		gotRequestID = observability.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/suggestions", nil))

	require.NotEmpty(t, gotTraceID)
	require.NotEmpty(t, gotRequestID)
	assert.Equal(t, gotTraceID, rec.Header().Get("X-Trace-Id"))
	assert.Equal(t, gotRequestID, rec.Header().Get("X-Request-Id"))
}

func TestCORS_SetsAllowOriginHeader(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"https://example.com"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}

	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NilConfigIsNoOp(t *testing.T) {
	called := false
	handler := middleware.CORS(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
