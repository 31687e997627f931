package middleware

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/syllabl-backend/internal/observability"
	"github.com/heartmarshall/syllabl-backend/pkg/ctxutil"
)

func TestRecovery_NoPanic(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	Recovery(slog.New(slog.NewTextHandler(io.Discard, nil)))(handler).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecovery_Panic(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "syllable table corrupted", want: "syllable table corrupted"},
		{name: "error", value: errors.New("nil lookup"), want: "nil lookup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
			before := testutil.ToFloat64(observability.PanicsRecoveredTotal)

			handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(tt.value) })
			req := httptest.NewRequest(http.MethodGet, "/word", nil)
			req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-42"))
			rec := httptest.NewRecorder()

			Recovery(logger)(handler).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			out := buf.String()
			assert.Contains(t, out, "panic recovered")
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "request_id=req-42")
			assert.Contains(t, out, "stack=")
			assert.InDelta(t, 1, testutil.ToFloat64(observability.PanicsRecoveredTotal)-before, 1e-9)
		})
	}
}

func TestRecovery_AbortHandlerIsRepanicked(t *testing.T) {
	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		Recovery(slog.New(slog.NewTextHandler(io.Discard, nil)))(handler).
			ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
