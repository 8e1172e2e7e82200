package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func serveStatus(status string, code int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"status":"` + status + `","version":"1.0.0","checks":[{"name":"database","status":"` + status + `","message":"pool busy"}]}`))
	}))
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		code          int
		allowDegraded bool
		want          int
	}{
		{"Healthy", "healthy", http.StatusOK, true, exitCodeSuccess},
		{"DegradedAllowed", "degraded", http.StatusOK, true, exitCodeSuccess},
		{"DegradedStrict", "degraded", http.StatusOK, false, exitCodeFailure},
		{"Unhealthy", "unhealthy", http.StatusServiceUnavailable, true, exitCodeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveStatus(tt.status, tt.code)
			defer srv.Close()

			var out bytes.Buffer
			got := run(Options{URL: srv.URL, Timeout: time.Second, AllowDegraded: tt.allowDegraded}, &out)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "database")
		})
	}
}

func TestRunUnreachable(t *testing.T) {
	srv := serveStatus("healthy", http.StatusOK)
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	got := run(Options{URL: url, Timeout: 200 * time.Millisecond, RetryCount: 1, RetryDelay: time.Millisecond}, &out)
	assert.Equal(t, exitCodeError, got)
	assert.Contains(t, out.String(), "after 2 attempts")
}

func TestRunRejectsNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	assert.Equal(t, exitCodeError, run(Options{URL: srv.URL, Timeout: time.Second}, &out))
}
