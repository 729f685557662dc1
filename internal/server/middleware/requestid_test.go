package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureHandler(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID_Generated(t *testing.T) {
	var seen string
	handler := RequestID(captureHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/api/interview/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesClientValue(t *testing.T) {
	var seen string
	handler := RequestID(captureHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-abc_123.4")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "client-abc_123.4", seen)
	assert.Equal(t, "client-abc_123.4", rr.Header().Get(RequestIDHeader))
}

func TestRequestID_RejectsMalformedClientValue(t *testing.T) {
	for _, bad := range []string{"has space", "line\nbreak", "<script>", strings.Repeat("a", 200)} {
		var seen string
		handler := RequestID(captureHandler(&seen))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header[RequestIDHeader] = []string{bad}
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEqual(t, bad, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err, "replacement for %q", bad)
	}
}

func TestRequestIDFrom_Empty(t *testing.T) {
	assert.Empty(t, RequestIDFrom(context.Background()))
	assert.Equal(t, "x", RequestIDFrom(WithRequestID(context.Background(), "x")))
}
