package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var gotID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "42", status: http.StatusNoContent},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "not a number", header: "abc", status: http.StatusUnauthorized},
		{name: "zero", header: "0", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, int64(42), gotID)
			}
		})
	}
}

type recordedRequest struct {
	method string
	path   string
	status int
}

type fakeMetrics struct {
	requests []recordedRequest
}

func (f *fakeMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method: method, path: path, status: status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	metrics := &fakeMetrics{}
	router := mux.NewRouter()
	router.Use(Metrics(metrics))
	router.HandleFunc("/clients/{clientId}/reliability", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clients/client-1/reliability", nil))

	require.Len(t, metrics.requests, 1)
	assert.Equal(t, recordedRequest{method: http.MethodGet, path: "/clients/{clientId}/reliability", status: http.StatusTeapot}, metrics.requests[0])
}

type captureLogger struct {
	messages []string
}

func (c *captureLogger) Error(format string, v ...interface{}) {
	c.messages = append(c.messages, format)
}

func TestRecovery(t *testing.T) {
	logger := &captureLogger{}
	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/deposit-quotes", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, logger.messages, 1)
}
