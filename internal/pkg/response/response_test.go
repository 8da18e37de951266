package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	cErr "staffhub/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

func TestSuccessExtractsMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name        string
		data        any
		wantMessage string
		wantKeys    int
	}{
		{"message moved out of payload", gin.H{"message": "done", "newPassword": "x"}, "done", 1},
		{"payload without message", gin.H{"data": []int{1}}, "", 1},
		{"non-map payload", []string{"a"}, "", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())

			Success(c, tt.data)

			if got := c.GetString("message"); got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
			if !c.IsAborted() {
				t.Errorf("context not aborted")
			}
			data, _ := c.Get("data")
			if h, ok := data.(gin.H); ok && len(h) != tt.wantKeys {
				t.Errorf("payload = %v", h)
			}
		})
	}
}

func TestFailByErr(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name         string
		err          error
		hideInternal bool
		wantStatus   int
		wantError    string
	}{
		{"client error is shown", cErr.NotFound("Employee not found", cErr.EMPLOYEE_NOT_FOUND), true, http.StatusNotFound, "Employee not found"},
		{"internal shown outside production", errors.New("mongo down"), false, http.StatusInternalServerError, "mongo down"},
		{"internal hidden in production", errors.New("mongo down"), true, http.StatusInternalServerError, GenericInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FailByErr(c, "req-1", tt.err, tt.hideInternal)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body Failure
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || body.Error != tt.wantError || body.RequestID != "req-1" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}
