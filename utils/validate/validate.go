package validate

import (
	"encoding/json"

	cErr "staffhub/internal/pkg/error"
	"staffhub/internal/pkg/request"

	"github.com/gin-gonic/gin"
)

// BindAndValidate 綁定 JSON body；錯誤訊息取自 DTO 的 GetMessages
func BindAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindJSON(req); err != nil {
		return err, request.GetError(req, err)
	}
	return nil, nil
}

// BindQuery 綁定 query string
func BindQuery(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindQuery(req); err != nil {
		appErr := request.GetError(req, err)
		return err, cErr.ValidateQueryErr(appErr.ErrorDesc())
	}
	return nil, nil
}

// sensitiveKeys 寫入日誌前需遮蔽的欄位
var sensitiveKeys = map[string]struct{}{
	"temporaryPassword": {},
	"newPassword":       {},
	"password":          {},
}

// Redact 遞迴遮蔽憑證欄位，回傳新的值，不修改輸入
func Redact(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if _, ok := sensitiveKeys[k]; ok {
				out[k] = "[REDACTED]"
				continue
			}
			out[k] = Redact(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Redact(item)
		}
		return out
	default:
		return v
	}
}

// RedactJSON 對 JSON 字串遮蔽；非 JSON 原樣回傳
func RedactJSON(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	b, err := json.Marshal(Redact(v))
	if err != nil {
		return string(raw)
	}
	return string(b)
}
