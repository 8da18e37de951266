package handler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"staffhub/internal/dto"
	cErr "staffhub/internal/pkg/error"
	"staffhub/internal/pkg/response"
	"staffhub/internal/service"
	"staffhub/internal/telemetry"
	"staffhub/utils/validate"

	"github.com/gin-gonic/gin"
)

type Provisioner interface {
	Generate(ctx context.Context, cmd service.GenerateCommand) (*dto.GenerateEmployeesResponseDto, error)
}

type EmployeeManager interface {
	ListEmployees(ctx context.Context, shopID, shopOwnerID string) ([]*dto.EmployeeResponseDto, error)
	UpdateStatus(ctx context.Context, uid, status, shopOwnerID string) error
	ResetPassword(ctx context.Context, uid, shopOwnerID string) (string, error)
	DeleteEmployee(ctx context.Context, uid, shopOwnerID string) error
	ListBatchLogs(ctx context.Context, shopID, shopOwnerID string, limit int64) ([]*dto.BatchLogResponseDto, error)
}

type EmployeeHandler struct {
	trace       *telemetry.Trace
	provisioner Provisioner
	employees   EmployeeManager
}

func NewEmployeeHandler(trace *telemetry.Trace, provisioner Provisioner, employees EmployeeManager) *EmployeeHandler {
	return &EmployeeHandler{trace: trace, provisioner: provisioner, employees: employees}
}

// Generate 批次建立員工帳號
// @Summary 批次建立員工帳號
// @Tags Employee
// @Accept json
// @Produce json
// @Param body body dto.GenerateEmployeesDto true "店鋪、店主與建立參數"
// @Success 200 {object} dto.GenerateEmployeesResponseDto
// @Failure 400 {object} response.Failure
// @Failure 403 {object} response.Failure
// @Failure 429 {object} response.Failure
// @Failure 500 {object} response.Failure
// @Router /api/generate-employees [post]
func (h *EmployeeHandler) Generate(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var err error
	defer func() { end(err) }()

	var req dto.GenerateEmployeesDto
	cause, respErr := validate.BindAndValidate(c, &req)
	if cause != nil {
		err = cause
		response.AbortWithError(c, respErr)
		return
	}

	result, err := h.provisioner.Generate(ctx, service.GenerateCommand{
		ShopID:      req.ShopID,
		ShopOwnerID: req.ShopOwnerID,
		Count:       req.EmployeeData.Count,
		Domain:      req.EmployeeData.Domain,
		Role:        req.EmployeeData.Role,
		Permissions: req.EmployeeData.Permissions,
	})
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": fmt.Sprintf("Successfully created %d out of %d employee accounts",
			result.Summary.SuccessfullyCreated, result.Summary.TotalRequested),
		"employees": result.Employees,
		"errors":    result.Errors,
		"summary":   result.Summary,
	})
}

// ListEmployees 列出店鋪員工（不含臨時密碼）
// @Summary 列出店鋪員工
// @Tags Employee
// @Produce json
// @Param shopId path string true "Shop ID"
// @Param shopOwnerId query string true "Shop owner ID"
// @Success 200 {array} dto.EmployeeResponseDto
// @Failure 400 {object} response.Failure
// @Failure 403 {object} response.Failure
// @Router /api/shop/{shopId}/employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var err error
	defer func() { end(err) }()

	var query dto.ListEmployeesQuery
	cause, respErr := validate.BindQuery(c, &query)
	if cause != nil {
		err = cause
		response.AbortWithError(c, respErr)
		return
	}

	employees, err := h.employees.ListEmployees(ctx, c.Param("shopId"), query.ShopOwnerID)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"data": employees})
}

// UpdateStatus 變更員工狀態
// @Summary 變更員工狀態
// @Tags Employee
// @Accept json
// @Produce json
// @Param employeeId path string true "Employee uid"
// @Param body body dto.UpdateEmployeeStatusDto true "active / inactive / suspended"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.Failure
// @Failure 403 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /api/employees/{employeeId}/status [patch]
func (h *EmployeeHandler) UpdateStatus(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var err error
	defer func() { end(err) }()

	var req dto.UpdateEmployeeStatusDto
	if err = bindOptionalJSON(c, &req); err != nil {
		response.AbortWithError(c, cErr.ValidateErr("Invalid request body"))
		return
	}

	if err = h.employees.UpdateStatus(ctx, c.Param("employeeId"), req.Status, req.ShopOwnerID); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Employee status updated to " + req.Status})
}

// ResetPassword 重設臨時密碼
// @Summary 重設員工臨時密碼
// @Tags Employee
// @Accept json
// @Produce json
// @Param employeeId path string true "Employee uid"
// @Param body body dto.ShopOwnerDto true "Shop owner"
// @Success 200 {object} map[string]any
// @Failure 403 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /api/employees/{employeeId}/reset-password [post]
func (h *EmployeeHandler) ResetPassword(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var err error
	defer func() { end(err) }()

	ownerID, err := shopOwnerFromRequest(c)
	if err != nil {
		response.AbortWithError(c, cErr.ValidateErr("Invalid request body"))
		return
	}

	password, err := h.employees.ResetPassword(ctx, c.Param("employeeId"), ownerID)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{
		"message":     "Password reset successfully",
		"newPassword": password,
	})
}

// Delete 刪除員工帳號；shopOwnerId 可放在 body 或 query
// @Summary 刪除員工帳號
// @Tags Employee
// @Produce json
// @Param employeeId path string true "Employee uid"
// @Param shopOwnerId query string false "Shop owner ID（body 未提供時使用）"
// @Success 200 {object} map[string]any
// @Failure 403 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /api/employees/{employeeId} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var err error
	defer func() { end(err) }()

	ownerID, err := shopOwnerFromRequest(c)
	if err != nil {
		response.AbortWithError(c, cErr.ValidateErr("Invalid request body"))
		return
	}

	if err = h.employees.DeleteEmployee(ctx, c.Param("employeeId"), ownerID); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Employee account deleted successfully"})
}

// ListBatchLogs 店鋪批次建立紀錄，由新到舊
// @Summary 列出批次建立紀錄
// @Tags Employee
// @Produce json
// @Param shopId path string true "Shop ID"
// @Param shopOwnerId query string true "Shop owner ID"
// @Param limit query int false "筆數（預設 20，上限 100）"
// @Success 200 {array} dto.BatchLogResponseDto
// @Failure 400 {object} response.Failure
// @Failure 403 {object} response.Failure
// @Router /api/shop/{shopId}/batch-logs [get]
func (h *EmployeeHandler) ListBatchLogs(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var err error
	defer func() { end(err) }()

	var query dto.ListBatchLogsQuery
	cause, respErr := validate.BindQuery(c, &query)
	if cause != nil {
		err = cause
		response.AbortWithError(c, respErr)
		return
	}

	logs, err := h.employees.ListBatchLogs(ctx, c.Param("shopId"), query.ShopOwnerID, query.Limit)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"data": logs})
}

// bindOptionalJSON 空 body 視為零值
func bindOptionalJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// shopOwnerFromRequest body 優先，其次 query
func shopOwnerFromRequest(c *gin.Context) (string, error) {
	var req dto.ShopOwnerDto
	if err := bindOptionalJSON(c, &req); err != nil {
		return "", err
	}
	if req.ShopOwnerID == "" {
		req.ShopOwnerID = c.Query("shopOwnerId")
	}
	return req.ShopOwnerID, nil
}
