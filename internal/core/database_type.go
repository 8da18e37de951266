package core

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────

// 預設資料庫名稱沿用既有的 realtime database 根節點
const (
	MongoDBDefault MongoDatabaseName = "smartfit_AR_Database"
)

const (
	MongoCollectionShops             MongoCollection = "shops"
	MongoCollectionEmployees         MongoCollection = "employees"
	MongoCollectionShopEmployees     MongoCollection = "shop_employees"
	MongoCollectionEmployeeBatchLogs MongoCollection = "employee_batch_logs"
	MongoCollectionIdentities        MongoCollection = "identities"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName RedisKey = "staffhub"   // 伺服器名稱
	RedisKeyRateLimit  RedisKey = "rate_limit" // 限流計數
)

// ─── Fluentd ───────────────────────────────────────────────────────────────────

const (
	FluentdRequest    FluentdSubTag = "request_log"
	FluentdResponse   FluentdSubTag = "response_log"
	FluentdBatchAudit FluentdSubTag = "employee_batch_log"
)

// FluentdTimeLayout 寫入 fluentd 的時間格式
const FluentdTimeLayout = "2006-01-02 15:04:05.999999 UTC"
