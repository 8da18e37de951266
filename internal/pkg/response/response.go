package response

import (
	"net/http"

	cErr "staffhub/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// GenericInternalError 正式環境下 5xx 對外的統一描述
const GenericInternalError = "Internal server error"

// Failure 失敗回應；成功回應由 Response middleware 以 map 組裝（success + payload 欄位）
type Failure struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      int    `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

// Success 把 gin.H 內的 "message" 抽出，其餘欄位交給 Response middleware 輸出
func Success(c *gin.Context, data any) {
	message := ""
	if msg, ok := data.(gin.H); ok {
		if s, ok := msg["message"].(string); ok && s != "" {
			message = s
			delete(msg, "message")
		}
	}
	c.Set("data", data)
	c.Set("message", message)
	c.Abort()
}

func AbortWithError(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, requestID string, httpCode int, errorCode int, desc string) {
	c.JSON(httpCode, Failure{
		Success:   false,
		Error:     desc,
		Code:      errorCode,
		RequestID: requestID,
	})
	c.Abort()
}

// FailByErr 依錯誤型別輸出；hideInternal 為 true 時 5xx 不外露細節
func FailByErr(c *gin.Context, requestID string, err error, hideInternal bool) {
	appErr := cErr.From(err)
	desc := appErr.ErrorDesc()
	if desc == "" {
		desc = appErr.Error()
	}
	if hideInternal && appErr.HttpCode() >= http.StatusInternalServerError {
		desc = GenericInternalError
	}
	Fail(c, requestID, appErr.HttpCode(), appErr.ErrorCode(), desc)
}
