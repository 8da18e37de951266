package core

const (
	ContextTraceKey        = "telemetry_trace_ctx"
	ContextRequestIDKey    = "requestId"
	ContextRequestStartKey = "requestDuration"
)

// HeaderRequestID 呼叫端可自帶，否則由 TraceEntry 產生
const HeaderRequestID = "X-Request-ID"

// ==== 型別安全 span name ====
type TraceSpanName string

const (
	SpanHttpRequest         TraceSpanName = "http_request"
	SpanLoggerMiddleware    TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware  TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware      TraceSpanName = "cors_middleware"
	SpanResponseMiddleware  TraceSpanName = "response_middleware"
	SpanRateLimitMiddleware TraceSpanName = "ratelimit_middleware"
	SpanProvisionItem       TraceSpanName = "provision_item"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal       MetricName = "requests_total"
	MetricHttpRequestDuration     MetricName = "request_duration_seconds"
	MetricHttpFailTotal           MetricName = "request_fail_total"
	MetricEmployeesProvisioned    MetricName = "employees_provisioned_total"
	MetricProvisionFailTotal      MetricName = "employee_provision_fail_total"
	MetricProvisionCollisionTotal MetricName = "employee_provision_collision_total"
	MetricRateLimitTotal          MetricName = "rate_limited_total"
	MetricReconciledTotal         MetricName = "identities_reconciled_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

// 供 Redis / in-memory 限流使用
type TraceRateLimitMeta struct {
	Key       string `trace:"rl.key"`
	Limit     int    `trace:"rl.limit_count"`
	WindowSec int64  `trace:"rl.window_sec"`
	Remaining int    `trace:"rl.remaining,omitempty"`
	TTL       int64  `trace:"rl.ttl_sec,omitempty"`
	Backend   string `trace:"rl.backend"`
	Blocked   bool   `trace:"rl.blocked"`
}

// 批次建立整體結果
type TraceProvisionBatchMeta struct {
	ShopID           string `trace:"shop.id"`
	ShopOwnerID      string `trace:"shop.owner_id"`
	Requested        int    `trace:"batch.requested"`
	StartNumber      int    `trace:"batch.start_number"`
	Created          int    `trace:"batch.created"`
	Failed           int    `trace:"batch.failed"`
	Skipped          int    `trace:"batch.skipped"`
	LastNumber       int    `trace:"batch.last_number"`
	Exhausted        bool   `trace:"batch.exhausted"`
	CounterPersisted bool   `trace:"batch.counter_persisted"`
}

// 單筆建立
type TraceProvisionItemMeta struct {
	ShopID         string `trace:"shop.id"`
	EmployeeNumber int    `trace:"employee.number"`
	Email          string `trace:"employee.email"`
	UID            string `trace:"employee.uid,omitempty"`
	Outcome        string `trace:"employee.outcome"` // created / collision / failed
	Compensated    bool   `trace:"employee.compensated"`
}

type TraceEmployeeMeta struct {
	Op          string `trace:"op"`
	EmployeeID  string `trace:"employee.id,omitempty"`
	ShopID      string `trace:"shop.id,omitempty"`
	ShopOwnerID string `trace:"shop.owner_id,omitempty"`
	Status      string `trace:"employee.status,omitempty"`
	Count       int    `trace:"result.count,omitempty"`
}

type TraceReconcileMeta struct {
	Candidates int   `trace:"reconcile.candidates"`
	Deleted    int   `trace:"reconcile.deleted"`
	Failed     int   `trace:"reconcile.failed"`
	GraceSec   int64 `trace:"reconcile.grace_sec"`
}
