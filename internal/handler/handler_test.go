package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"staffhub/config"
	"staffhub/internal/database/client"
	fluentdRepo "staffhub/internal/database/fluentd/repository"
	"staffhub/internal/dto"
	"staffhub/internal/middleware"
	"staffhub/internal/service"
	"staffhub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func testConfig() *config.Configuration {
	conf := &config.Configuration{}
	conf.App.Env = "test"
	conf.App.Name = "staffhub"
	conf.App.Version = "1.2.3"
	return conf
}

// newTestEngine 套用 request id / 錯誤 / 信封 middleware，與正式環境輸出格式一致
func newTestEngine(conf *config.Configuration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	trace := &telemetry.Trace{}
	logRepo := fluentdRepo.NewLogRepository(conf, &client.NoopClient{})

	r := gin.New()
	r.Use(middleware.NewTraceEntry(trace, &telemetry.Metric{}, conf).Handler())
	r.Use(middleware.NewRecovery(logger, trace, conf, logRepo).ErrorHandler())
	r.Use(middleware.NewResponse(logger, trace, conf, logRepo).FormatHandler())
	return r
}

func doRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

// ---- fakes ----

type fakeProvisioner struct {
	got    *service.GenerateCommand
	result *dto.GenerateEmployeesResponseDto
	err    error
}

func (f *fakeProvisioner) Generate(_ context.Context, cmd service.GenerateCommand) (*dto.GenerateEmployeesResponseDto, error) {
	f.got = &cmd
	return f.result, f.err
}

type call struct {
	method string
	args   []any
}

type fakeEmployees struct {
	calls     []call
	employees []*dto.EmployeeResponseDto
	logs      []*dto.BatchLogResponseDto
	password  string
	err       error
}

func (f *fakeEmployees) record(method string, args ...any) {
	f.calls = append(f.calls, call{method: method, args: args})
}

func (f *fakeEmployees) last() call {
	if len(f.calls) == 0 {
		return call{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeEmployees) ListEmployees(_ context.Context, shopID, shopOwnerID string) ([]*dto.EmployeeResponseDto, error) {
	f.record("ListEmployees", shopID, shopOwnerID)
	return f.employees, f.err
}

func (f *fakeEmployees) UpdateStatus(_ context.Context, uid, status, shopOwnerID string) error {
	f.record("UpdateStatus", uid, status, shopOwnerID)
	return f.err
}

func (f *fakeEmployees) ResetPassword(_ context.Context, uid, shopOwnerID string) (string, error) {
	f.record("ResetPassword", uid, shopOwnerID)
	return f.password, f.err
}

func (f *fakeEmployees) DeleteEmployee(_ context.Context, uid, shopOwnerID string) error {
	f.record("DeleteEmployee", uid, shopOwnerID)
	return f.err
}

func (f *fakeEmployees) ListBatchLogs(_ context.Context, shopID, shopOwnerID string, limit int64) ([]*dto.BatchLogResponseDto, error) {
	f.record("ListBatchLogs", shopID, shopOwnerID, limit)
	return f.logs, f.err
}

type fakeHealth struct {
	live, ready bool
	uptime      time.Duration
}

func (f fakeHealth) IsLive() bool                   { return f.live }
func (f fakeHealth) IsReady(_ context.Context) bool { return f.ready }
func (f fakeHealth) Uptime() time.Duration          { return f.uptime }
