package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newHealthEngine(status HealthChecker) *gin.Engine {
	r := newTestEngine(testConfig())
	h := NewHealthHandler(status, testConfig())
	r.GET("/", h.Root)
	r.GET("/api/health", h.Health)
	r.GET("/version", h.Version)
	r.GET("/health/liveness", h.Liveness)
	r.GET("/health/readiness", h.Readiness)
	return r
}

func TestHealth(t *testing.T) {
	r := newHealthEngine(fakeHealth{live: true, ready: true})

	w := doRequest(r, http.MethodGet, "/api/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["success"] != true || body["message"] != "Employee Management API is running" || body["environment"] != "test" {
		t.Errorf("body = %v", body)
	}
	if _, err := time.Parse(time.RFC3339Nano, body["timestamp"].(string)); err != nil {
		t.Errorf("timestamp %v: %v", body["timestamp"], err)
	}
}

func TestRoot(t *testing.T) {
	r := newHealthEngine(fakeHealth{live: true})

	w := doRequest(r, http.MethodGet, "/", "")

	body := decode(t, w)
	if body["message"] != "SmartFit Employee Backend API" || body["version"] != "1.2.3" {
		t.Errorf("body = %v", body)
	}
	endpoints := body["endpoints"].(map[string]any)
	for _, key := range []string{"health", "generateEmployees", "getEmployees", "batchLogs", "updateStatus", "resetPassword", "deleteEmployee"} {
		if _, ok := endpoints[key]; !ok {
			t.Errorf("endpoints missing %q", key)
		}
	}
}

func TestProbes(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		status   fakeHealth
		wantCode int
		want     string
	}{
		{"alive", "/health/liveness", fakeHealth{live: true}, http.StatusOK, "alive"},
		{"down", "/health/liveness", fakeHealth{}, http.StatusServiceUnavailable, "down"},
		{"ready", "/health/readiness", fakeHealth{live: true, ready: true}, http.StatusOK, "ready"},
		{"not ready", "/health/readiness", fakeHealth{live: true}, http.StatusServiceUnavailable, "not ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(newHealthEngine(tt.status), http.MethodGet, tt.path, "")

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			body := decode(t, w)
			if body["status"] != tt.want {
				t.Errorf("status field = %v, want %q", body["status"], tt.want)
			}
			if _, ok := body["requestId"]; ok {
				t.Errorf("probe response should not be wrapped: %v", body)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	w := doRequest(newHealthEngine(fakeHealth{live: true, uptime: 90 * time.Second}), http.MethodGet, "/version", "")

	body := decode(t, w)
	if body["name"] != "staffhub" || body["version"] != "1.2.3" || body["uptime"] != "1m30s" {
		t.Errorf("body = %v", body)
	}
	if body["goVersion"] == "" {
		t.Errorf("goVersion missing")
	}
}
