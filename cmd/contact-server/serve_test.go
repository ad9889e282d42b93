package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestChiWithMiddleware_LogsPanickingRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := chiWithMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), zap.New(core))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.EqualValues(t, http.StatusInternalServerError, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestChiWithMiddleware_LogsRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := chiWithMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), zap.New(core))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/healthz", fields["path"])
	assert.EqualValues(t, http.StatusNoContent, fields["status"])
}
