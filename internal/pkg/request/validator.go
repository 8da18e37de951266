package request

import (
	"errors"
	"regexp"

	cErr "staffhub/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

type Validator interface {
	GetMessages() ValidatorMessages
}

// ValidatorMessages key 為 "<StructField>.<tag>"，例如 "ShopID.required"
type ValidatorMessages map[string]string

var reg = regexp.MustCompile(`\[\d+\]`)

// GetError 從請求和錯誤中獲取錯誤信息
func GetError(request interface{}, err error) *cErr.Error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		v, isValidator := request.(Validator)

		var errorMessages []string
		for _, fe := range validationErrors {
			if isValidator {
				field := reg.ReplaceAllString(fe.StructNamespace(), ".*")
				if message, exist := lookup(v.GetMessages(), field, fe.Field(), fe.Tag()); exist {
					errorMessages = append(errorMessages, message)
					continue
				}
			}
			errorMessages = append(errorMessages, fe.Error())
		}
		if len(errorMessages) > 0 {
			return cErr.ValidateErr(errorMessages[0])
		}
	}

	return cErr.ValidateErr("Parameter error")
}

// lookup 先以去掉根型別名稱的完整路徑比對，找不到再用欄位名
func lookup(messages ValidatorMessages, namespace, field, tag string) (string, bool) {
	if i := indexAfterRoot(namespace); i >= 0 {
		if m, ok := messages[namespace[i:]+"."+tag]; ok {
			return m, true
		}
	}
	m, ok := messages[field+"."+tag]
	return m, ok
}

func indexAfterRoot(namespace string) int {
	for i := 0; i < len(namespace); i++ {
		if namespace[i] == '.' {
			return i + 1
		}
	}
	return -1
}
