package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"staffhub/internal/core"
	"staffhub/internal/database/mongodb/model"
	"staffhub/internal/dto"
	cErr "staffhub/internal/pkg/error"
	"staffhub/internal/telemetry"
	"staffhub/utils/credential"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	defaultBatchLogLimit = 20
	maxBatchLogLimit     = 100
)

// EmployeeService 單筆員工管理；每個操作都先確認擁有者
type EmployeeService struct {
	logger      *zap.Logger
	trace       *telemetry.Trace
	directory   Directory
	employees   EmployeeStore
	memberships MembershipStore
	shops       ShopStore
	batchLogs   BatchLogStore

	now           func() time.Time
	newCredential func(length int) (string, error)
}

func NewEmployeeService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	directory Directory,
	employees EmployeeStore,
	memberships MembershipStore,
	shops ShopStore,
	batchLogs BatchLogStore,
) *EmployeeService {
	return &EmployeeService{
		logger:        logger,
		trace:         trace,
		directory:     directory,
		employees:     employees,
		memberships:   memberships,
		shops:         shops,
		batchLogs:     batchLogs,
		now:           time.Now,
		newCredential: credential.Generate,
	}
}

func (s *EmployeeService) ListEmployees(ctx context.Context, shopID, shopOwnerID string) (_ []*dto.EmployeeResponseDto, err error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	if err = s.requireOwner(ctx, shopOwnerID, "Unauthorized access to shop employees"); err != nil {
		return nil, err
	}

	employees, err := s.employees.ListByShop(ctx, shopID)
	if err != nil {
		return nil, cErr.DatabaseError(fmt.Sprintf("database ListByShop error: %v", err))
	}
	resp := make([]*dto.EmployeeResponseDto, len(employees))
	for i, e := range employees {
		resp[i] = modelToEmployeeResponseDto(e)
	}

	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeMeta{Op: "list", ShopID: shopID, ShopOwnerID: shopOwnerID, Count: len(resp)})
	return resp, nil
}

func (s *EmployeeService) UpdateStatus(ctx context.Context, uid, status, shopOwnerID string) (err error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	next := core.EmployeeStatus(status)
	if !next.Valid() {
		return cErr.InvalidStatus("Invalid status. Use: active, inactive, or suspended")
	}
	employee, err := s.loadOwned(ctx, uid, shopOwnerID, "Unauthorized to modify this employee")
	if err != nil {
		return err
	}
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeMeta{Op: "update_status", EmployeeID: uid, ShopID: employee.ShopID, ShopOwnerID: shopOwnerID, Status: status})

	// 先改帳號再寫紀錄；紀錄寫入失敗時把帳號還原成原狀態
	disabled := next.Disabled()
	if err = s.directory.UpdateUser(ctx, uid, UpdateIdentityParams{Disabled: &disabled}); err != nil {
		return cErr.DirectoryError(err.Error())
	}

	if err = s.employees.UpdateStatus(ctx, uid, status, shopOwnerID, s.now().UTC()); err != nil {
		s.restoreDisabled(ctx, uid, core.EmployeeStatus(employee.Status).Disabled())
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.NotFound("Employee not found", cErr.EMPLOYEE_NOT_FOUND)
		}
		return cErr.DatabaseError(fmt.Sprintf("database UpdateStatus error: %v", err))
	}

	if memberErr := s.memberships.UpdateStatus(ctx, employee.ShopID, uid, status); memberErr != nil {
		s.logger.Warn("failed to sync shop membership status",
			zap.String("shopId", employee.ShopID),
			zap.String("uid", uid),
			zap.Error(memberErr),
		)
	}
	return nil
}

func (s *EmployeeService) restoreDisabled(ctx context.Context, uid string, disabled bool) {
	if err := s.directory.UpdateUser(ctx, uid, UpdateIdentityParams{Disabled: &disabled}); err != nil {
		s.logger.Error("failed to restore identity disabled flag",
			zap.String("uid", uid),
			zap.Bool("disabled", disabled),
			zap.Error(err),
		)
	}
}

func (s *EmployeeService) ResetPassword(ctx context.Context, uid, shopOwnerID string) (_ string, err error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	employee, err := s.loadOwned(ctx, uid, shopOwnerID, "Unauthorized to reset password for this employee")
	if err != nil {
		return "", err
	}
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeMeta{Op: "reset_password", EmployeeID: uid, ShopID: employee.ShopID, ShopOwnerID: shopOwnerID})

	password, err := s.newCredential(core.CredentialLength)
	if err != nil {
		return "", cErr.InternalServer(err.Error())
	}
	if err = s.directory.UpdateUser(ctx, uid, UpdateIdentityParams{Password: &password}); err != nil {
		return "", cErr.DirectoryError(err.Error())
	}
	if err = s.employees.UpdatePassword(ctx, uid, password, shopOwnerID, s.now().UTC()); err != nil {
		return "", cErr.DatabaseError(fmt.Sprintf("database UpdatePassword error: %v", err))
	}
	return password, nil
}

// DeleteEmployee 依序移除目錄帳號、員工紀錄與店鋪索引
func (s *EmployeeService) DeleteEmployee(ctx context.Context, uid, shopOwnerID string) (err error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	employee, err := s.loadOwned(ctx, uid, shopOwnerID, "Unauthorized to delete this employee")
	if err != nil {
		return err
	}
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeMeta{Op: "delete", EmployeeID: uid, ShopID: employee.ShopID, ShopOwnerID: shopOwnerID})

	if err = s.directory.DeleteUser(ctx, uid); err != nil && !errors.Is(err, ErrIdentityNotFound) {
		return cErr.DirectoryError(err.Error())
	}
	if err = s.employees.Delete(ctx, uid); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return cErr.DatabaseError(fmt.Sprintf("database DeleteEmployee error: %v", err))
	}
	if err = s.memberships.Delete(ctx, employee.ShopID, uid); err != nil {
		return cErr.DatabaseError(fmt.Sprintf("database DeleteMembership error: %v", err))
	}
	return nil
}

// ListBatchLogs 由新到舊；limit <= 0 時使用預設值
func (s *EmployeeService) ListBatchLogs(ctx context.Context, shopID, shopOwnerID string, limit int64) (_ []*dto.BatchLogResponseDto, err error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	if err = s.requireOwner(ctx, shopOwnerID, "Unauthorized access to shop batch logs"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultBatchLogLimit
	}
	if limit > maxBatchLogLimit {
		limit = maxBatchLogLimit
	}

	logs, err := s.batchLogs.ListByShop(ctx, shopID, limit)
	if err != nil {
		return nil, cErr.DatabaseError(fmt.Sprintf("database ListBatchLogs error: %v", err))
	}
	resp := make([]*dto.BatchLogResponseDto, len(logs))
	for i, l := range logs {
		resp[i] = modelToBatchLogResponseDto(l)
	}
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeMeta{Op: "list_batch_logs", ShopID: shopID, ShopOwnerID: shopOwnerID, Count: len(resp)})
	return resp, nil
}

func (s *EmployeeService) requireOwner(ctx context.Context, shopOwnerID, forbiddenMsg string) error {
	if strings.TrimSpace(shopOwnerID) == "" {
		return cErr.ValidateQueryErr("shopOwnerId query parameter is required")
	}
	exists, err := s.shops.OwnerExists(ctx, shopOwnerID)
	if err != nil {
		return cErr.DatabaseError(fmt.Sprintf("database OwnerExists error: %v", err))
	}
	if !exists {
		return cErr.Forbidden(forbiddenMsg, cErr.SHOP_OWNER_UNKNOWN)
	}
	return nil
}

// loadOwned 找不到 → 404；擁有者不符 → 403
func (s *EmployeeService) loadOwned(ctx context.Context, uid, shopOwnerID, forbiddenMsg string) (*model.Employee, error) {
	if strings.TrimSpace(shopOwnerID) == "" {
		return nil, cErr.ValidateErr("shopOwnerId is required")
	}
	employee, err := s.employees.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("Employee not found", cErr.EMPLOYEE_NOT_FOUND)
		}
		return nil, cErr.DatabaseError(fmt.Sprintf("database GetEmployee error: %v", err))
	}
	if employee.ShopOwnerID != shopOwnerID {
		return nil, cErr.Forbidden(forbiddenMsg, cErr.NOT_EMPLOYEE_OWNER)
	}
	return employee, nil
}

func modelToEmployeeResponseDto(e *model.Employee) *dto.EmployeeResponseDto {
	return &dto.EmployeeResponseDto{
		ID:               e.ID,
		Name:             e.Name,
		Role:             e.Role,
		Permissions:      e.Permissions,
		ShopID:           e.ShopID,
		ShopOwnerID:      e.ShopOwnerID,
		Email:            e.Email,
		EmployeeID:       e.EmployeeID,
		Status:           e.Status,
		DateCreated:      e.DateCreated,
		CreatedBy:        e.CreatedBy,
		LastUpdated:      e.LastUpdated,
		IsBatchGenerated: e.IsBatchGenerated,
		StatusUpdatedBy:  e.StatusUpdatedBy,
		PasswordResetAt:  e.PasswordResetAt,
		PasswordResetBy:  e.PasswordResetBy,
	}
}

func modelToBatchLogResponseDto(l *model.BatchLog) *dto.BatchLogResponseDto {
	employees := make([]dto.BatchLogEmployee, len(l.Employees))
	for i, e := range l.Employees {
		employees[i] = dto.BatchLogEmployee{Email: e.Email, EmployeeID: e.EmployeeID}
	}
	errs := make([]dto.GenerateErrorDto, len(l.Errors))
	for i, e := range l.Errors {
		errs[i] = dto.GenerateErrorDto{EmployeeNumber: e.EmployeeNumber, Error: e.Error}
	}
	return &dto.BatchLogResponseDto{
		ID:             l.ID.Hex(),
		Timestamp:      l.Timestamp,
		ShopOwnerID:    l.ShopOwnerID,
		CountRequested: l.CountRequested,
		CountCreated:   l.CountCreated,
		CountFailed:    l.CountFailed,
		CountSkipped:   l.CountSkipped,
		Exhausted:      l.Exhausted,
		Employees:      employees,
		Errors:         errs,
	}
}
