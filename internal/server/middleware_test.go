package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerTagsRequestID(t *testing.T) {
	log, hook := test.NewNullLogger()

	handler := chimw.RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health_check", nil))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Started request", entries[0].Message)
	assert.Equal(t, "Finished request", entries[1].Message)
	assert.Equal(t, http.StatusTeapot, entries[1].Data["status"])
	assert.Equal(t, "/health_check", entries[1].Data["path"])
	assert.NotEmpty(t, entries[1].Data["request_id"])
}

func TestRequestLoggerServerErrorsLogAtErrorLevel(t *testing.T) {
	log, hook := test.NewNullLogger()

	handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "InternalError", "boom")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
