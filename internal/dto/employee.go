package dto

import (
	"time"

	"staffhub/internal/pkg/request"
)

// ===== Request =====

type EmployeeData struct {
	// 省略或 0 時為 1
	Count       int      `json:"count" binding:"min=0"`
	Domain      string   `json:"domain,omitempty" binding:"omitempty,hostname_rfc1123"`
	Role        string   `json:"role,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

type GenerateEmployeesDto struct {
	ShopID       string       `json:"shopId" binding:"required"`
	ShopOwnerID  string       `json:"shopOwnerId" binding:"required"`
	EmployeeData EmployeeData `json:"employeeData"`
}

func (GenerateEmployeesDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"ShopID.required":                      "Missing required fields: shopId, shopOwnerId",
		"ShopOwnerID.required":                 "Missing required fields: shopId, shopOwnerId",
		"EmployeeData.Count.min":               "employeeData.count must not be negative",
		"EmployeeData.Domain.hostname_rfc1123": "employeeData.domain is not a valid domain",
	}
}

// 狀態值與 shopOwnerId 由 service 依序檢查，以維持「先驗狀態值」的順序
type UpdateEmployeeStatusDto struct {
	Status      string `json:"status"`
	ShopOwnerID string `json:"shopOwnerId"`
}

// ShopOwnerDto reset-password / delete 共用；delete 亦可由 query 帶入
type ShopOwnerDto struct {
	ShopOwnerID string `json:"shopOwnerId" form:"shopOwnerId"`
}

type ListEmployeesQuery struct {
	ShopOwnerID string `form:"shopOwnerId" binding:"required"`
}

func (ListEmployeesQuery) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"ShopOwnerID.required": "shopOwnerId query parameter is required",
	}
}

type ListBatchLogsQuery struct {
	ShopOwnerID string `form:"shopOwnerId" binding:"required"`
	Limit       int64  `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (ListBatchLogsQuery) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"ShopOwnerID.required": "shopOwnerId query parameter is required",
		"Limit.min":            "limit must be between 1 and 100",
		"Limit.max":            "limit must be between 1 and 100",
	}
}

// ===== Response =====

type GeneratedEmployeeDto struct {
	UID               string `json:"uid"`
	EmployeeID        string `json:"employeeId"`
	Email             string `json:"email"`
	TemporaryPassword string `json:"temporaryPassword"`
	Status            string `json:"status"`
}

type GenerateErrorDto struct {
	EmployeeNumber int    `json:"employeeNumber"`
	Error          string `json:"error"`
}

type GenerateSummaryDto struct {
	TotalRequested      int  `json:"totalRequested"`
	SuccessfullyCreated int  `json:"successfullyCreated"`
	Failed              int  `json:"failed"`
	Skipped             int  `json:"skipped"`
	SuffixesConsumed    int  `json:"suffixesConsumed"`
	LastEmployeeNumber  int  `json:"lastEmployeeNumber"`
	Exhausted           bool `json:"exhausted"`
}

type GenerateEmployeesResponseDto struct {
	Employees []GeneratedEmployeeDto `json:"employees"`
	Errors    []GenerateErrorDto     `json:"errors"`
	Summary   GenerateSummaryDto     `json:"summary"`
}

// EmployeeResponseDto 不含臨時密碼
type EmployeeResponseDto struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Role             string     `json:"role"`
	Permissions      []string   `json:"permissions"`
	ShopID           string     `json:"shopId"`
	ShopOwnerID      string     `json:"shopOwnerId"`
	Email            string     `json:"email"`
	EmployeeID       string     `json:"employeeId"`
	Status           string     `json:"status"`
	DateCreated      time.Time  `json:"dateCreated"`
	CreatedBy        string     `json:"createdBy"`
	LastUpdated      time.Time  `json:"lastUpdated"`
	IsBatchGenerated bool       `json:"isBatchGenerated"`
	StatusUpdatedBy  string     `json:"statusUpdatedBy,omitempty"`
	PasswordResetAt  *time.Time `json:"passwordResetAt,omitempty"`
	PasswordResetBy  string     `json:"passwordResetBy,omitempty"`
}

type BatchLogResponseDto struct {
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	ShopOwnerID    string             `json:"shopOwnerId"`
	CountRequested int                `json:"countRequested"`
	CountCreated   int                `json:"countCreated"`
	CountFailed    int                `json:"countFailed"`
	CountSkipped   int                `json:"countSkipped"`
	Exhausted      bool               `json:"exhausted"`
	Employees      []BatchLogEmployee `json:"employees"`
	Errors         []GenerateErrorDto `json:"errors"`
}

type BatchLogEmployee struct {
	Email      string `json:"email"`
	EmployeeID string `json:"employeeId"`
}
