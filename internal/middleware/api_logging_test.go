package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldSkipLogging(t *testing.T) {
	assert.True(t, shouldSkipLogging("/health"))
	assert.True(t, shouldSkipLogging("/health/ready"))
	assert.True(t, shouldSkipLogging("/metrics"))
	assert.True(t, shouldSkipLogging("/favicon.ico"))
	assert.False(t, shouldSkipLogging("/api/invoices"))
	assert.False(t, shouldSkipLogging("/"))
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "/api/customers", sanitizePath("/api/customers?q=jane"))
	assert.Equal(t, "/api/jobs", sanitizePath("/api/jobs"))
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	r.RemoteAddr = "10.0.0.5:52100"
	assert.Equal(t, "10.0.0.5", getClientIP(r))

	r.Header.Set("X-Real-IP", "192.168.1.20")
	assert.Equal(t, "192.168.1.20", getClientIP(r))

	// X-Forwarded-For wins, first hop only
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", getClientIP(r))
}

func TestAPILoggingPassesResponseThrough(t *testing.T) {
	rec := httptest.NewRecorder()

	handler := APILogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}))
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/customers", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"id":1}`, rec.Body.String())
}
