package error

const (
	// 0 ~ 999: 成功類別
	SUCCESS = 0 // 200 OK

	// 40000 ~ 40099: 用戶請求錯誤 (400 系列)
	BAD_REQUEST_BODY    = 40000 // 400 - 無效的請求體
	BAD_REQUEST_PARAMS  = 40001 // 400 - 無效的請求參數
	BAD_REQUEST_QUERY   = 40002 // 400 - 無效的查詢參數
	BATCH_SIZE_EXCEEDED = 40010 // 400 - 單次批次數量超過上限
	INVALID_STATUS      = 40011 // 400 - 員工狀態不合法

	// 40300 ~ 40399: 權限錯誤 (403 系列)
	FORBIDDEN          = 40300 // 403 - 禁止訪問
	SHOP_OWNER_UNKNOWN = 40301 // 403 - 店主不存在
	NOT_EMPLOYEE_OWNER = 40302 // 403 - 非該員工所屬店主

	// 40400 ~ 40499: 資源錯誤 (404 系列)
	NOT_FOUND          = 40400 // 404 - 資源未找到
	EMPLOYEE_NOT_FOUND = 40401 // 404 - 員工不存在
	ROUTE_NOT_FOUND    = 40402 // 404 - 端點不存在

	// 42900 ~ 42999: 流量限制錯誤 (429 系列)
	RATE_LIMIT_EXCEEDED = 42900 // 429 - 速率限制超過

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR      = 50000 // 500 - 內部錯誤
	DATABASE_ERROR      = 50001 // 500 - 資料庫錯誤
	DIRECTORY_ERROR     = 50002 // 500 - 目錄服務錯誤
	SERVICE_UNAVAILABLE = 50300 // 503 - 服務暫停
)
