package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"staffhub/config"
	"staffhub/internal/core"
	fluentdModel "staffhub/internal/database/fluentd/model"
	"staffhub/internal/database/mongodb/model"
	"staffhub/internal/dto"
	cErr "staffhub/internal/pkg/error"
	"staffhub/internal/telemetry"
	"staffhub/utils/credential"

	"go.uber.org/zap"
)

var ErrSuffixSpaceExhausted = errors.New("employee number search space exhausted")

const (
	defaultMaxBatchSize    = 50
	defaultMaxSuffixSearch = 1000
)

type itemOutcome string

const (
	outcomeCreated   itemOutcome = "created"
	outcomeCollision itemOutcome = "collision"
	outcomeFailed    itemOutcome = "failed"
)

// GenerateCommand 一次批次建立的輸入，欄位已套用預設值前的原始值
type GenerateCommand struct {
	ShopID      string
	ShopOwnerID string
	Count       int
	Domain      string
	Role        string
	Permissions []string
}

type ProvisioningService struct {
	logger      *zap.Logger
	trace       *telemetry.Trace
	metric      *telemetry.Metric
	conf        config.Provisioning
	directory   Directory
	employees   EmployeeStore
	memberships MembershipStore
	shops       ShopStore
	batchLogs   BatchLogStore
	auditor     BatchAuditor

	now           func() time.Time
	newCredential func(length int) (string, error)
}

func NewProvisioningService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	conf *config.Configuration,
	directory Directory,
	employees EmployeeStore,
	memberships MembershipStore,
	shops ShopStore,
	batchLogs BatchLogStore,
	auditor BatchAuditor,
) *ProvisioningService {
	p := conf.Provisioning
	if p.MaxBatchSize <= 0 {
		p.MaxBatchSize = defaultMaxBatchSize
	}
	if p.MaxSuffixSearch <= 0 {
		p.MaxSuffixSearch = defaultMaxSuffixSearch
	}
	if p.DefaultDomain == "" {
		p.DefaultDomain = core.DefaultEmployeeDomain
	}
	if p.DefaultRole == "" {
		p.DefaultRole = core.DefaultEmployeeRole
	}
	if len(p.DefaultPermissions) == 0 {
		p.DefaultPermissions = core.DefaultEmployeePermissions
	}
	return &ProvisioningService{
		logger:        logger,
		trace:         trace,
		metric:        metric,
		conf:          p,
		directory:     directory,
		employees:     employees,
		memberships:   memberships,
		shops:         shops,
		batchLogs:     batchLogs,
		auditor:       auditor,
		now:           time.Now,
		newCredential: credential.Generate,
	}
}

// batchRun 單次批次的累計狀態
type batchRun struct {
	cmd         GenerateCommand
	start       int
	next        int
	employees   []dto.GeneratedEmployeeDto
	errors      []dto.GenerateErrorDto
	skipped     int
	exhausted   bool
	counterSave bool
}

// Generate 依序建立員工帳號；單筆失敗不中斷整批，碰撞則跳到下一個流水號
func (s *ProvisioningService) Generate(ctx context.Context, cmd GenerateCommand) (_ *dto.GenerateEmployeesResponseDto, err error) {
	// 開始後不受呼叫端取消影響
	ctx = context.WithoutCancel(ctx)
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	cmd, err = s.normalize(cmd)
	if err != nil {
		return nil, err
	}

	ownerExists, err := s.shops.OwnerExists(ctx, cmd.ShopOwnerID)
	if err != nil {
		return nil, cErr.DatabaseError(fmt.Sprintf("database OwnerExists error: %v", err))
	}
	if !ownerExists {
		return nil, cErr.Forbidden("Shop owner not found or unauthorized", cErr.SHOP_OWNER_UNKNOWN)
	}

	last, err := s.shops.LastEmployeeNumber(ctx, cmd.ShopID)
	if err != nil {
		return nil, cErr.DatabaseError(fmt.Sprintf("database LastEmployeeNumber error: %v", err))
	}

	run := &batchRun{
		cmd:       cmd,
		start:     last + 1,
		next:      last + 1,
		employees: make([]dto.GeneratedEmployeeDto, 0, cmd.Count),
		errors:    make([]dto.GenerateErrorDto, 0),
	}

	for len(run.employees) < cmd.Count {
		if run.next-run.start >= s.conf.MaxSuffixSearch {
			run.exhausted = true
			s.logger.Warn("suffix search exhausted",
				zap.String("shopId", cmd.ShopID),
				zap.Int("start", run.start),
				zap.Int("searched", run.next-run.start),
				zap.Error(ErrSuffixSpaceExhausted),
			)
			break
		}
		s.provisionOne(ctx, run, run.next)
		run.next++
	}

	lastNumber := run.next - 1
	if run.next > run.start {
		if _, saveErr := s.shops.AdvanceLastEmployeeNumber(ctx, cmd.ShopID, lastNumber); saveErr != nil {
			s.logger.Error("failed to persist last employee number",
				zap.String("shopId", cmd.ShopID),
				zap.Int("lastEmployeeNumber", lastNumber),
				zap.Error(saveErr),
			)
		} else {
			run.counterSave = true
		}
	}

	s.recordBatch(ctx, run)

	created := len(run.employees)
	failed := len(run.errors)
	s.metric.AddProvisioned(created)
	s.trace.ApplyTraceAttributes(span, core.TraceProvisionBatchMeta{
		ShopID:           cmd.ShopID,
		ShopOwnerID:      cmd.ShopOwnerID,
		Requested:        cmd.Count,
		StartNumber:      run.start,
		Created:          created,
		Failed:           failed,
		Skipped:          run.skipped,
		LastNumber:       lastNumber,
		Exhausted:        run.exhausted,
		CounterPersisted: run.counterSave,
	})
	s.logger.Info("employee batch finished",
		zap.String("shopId", cmd.ShopID),
		zap.String("shopOwnerId", cmd.ShopOwnerID),
		zap.Int("requested", cmd.Count),
		zap.Int("created", created),
		zap.Int("failed", failed),
		zap.Int("skipped", run.skipped),
		zap.Int("lastEmployeeNumber", lastNumber),
		zap.Bool("exhausted", run.exhausted),
	)

	return &dto.GenerateEmployeesResponseDto{
		Employees: run.employees,
		Errors:    run.errors,
		Summary: dto.GenerateSummaryDto{
			TotalRequested:      cmd.Count,
			SuccessfullyCreated: created,
			Failed:              failed,
			Skipped:             run.skipped,
			SuffixesConsumed:    created + failed,
			LastEmployeeNumber:  lastNumber,
			Exhausted:           run.exhausted,
		},
	}, nil
}

// normalize 驗證並套用預設值；所有檢查都在任何外部呼叫之前
func (s *ProvisioningService) normalize(cmd GenerateCommand) (GenerateCommand, error) {
	cmd.ShopID = strings.TrimSpace(cmd.ShopID)
	cmd.ShopOwnerID = strings.TrimSpace(cmd.ShopOwnerID)
	if cmd.ShopID == "" || cmd.ShopOwnerID == "" {
		return cmd, cErr.ValidateErr("Missing required fields: shopId, shopOwnerId")
	}
	if cmd.Count < 0 {
		return cmd, cErr.ValidateErr("employeeData.count must not be negative")
	}
	if cmd.Count == 0 {
		cmd.Count = 1
	}
	if cmd.Count > s.conf.MaxBatchSize {
		return cmd, cErr.BatchSizeExceeded(fmt.Sprintf("Cannot generate more than %d employees at once", s.conf.MaxBatchSize))
	}
	cmd.Domain = strings.ToLower(strings.TrimSpace(cmd.Domain))
	if cmd.Domain == "" {
		cmd.Domain = s.conf.DefaultDomain
	}
	if cmd.Role == "" {
		cmd.Role = s.conf.DefaultRole
	}
	if len(cmd.Permissions) == 0 {
		cmd.Permissions = append([]string(nil), s.conf.DefaultPermissions...)
	}
	return cmd, nil
}

func (s *ProvisioningService) provisionOne(ctx context.Context, run *batchRun, number int) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanProvisionItem))
	meta := core.TraceProvisionItemMeta{
		ShopID:         run.cmd.ShopID,
		EmployeeNumber: number,
		Email:          EmployeeEmail(number, run.cmd.Domain),
	}

	entry, outcome, compensated, err := s.createEmployee(ctx, run.cmd, number, meta.Email)
	meta.Outcome = string(outcome)
	meta.Compensated = compensated

	switch outcome {
	case outcomeCreated:
		meta.UID = entry.UID
		run.employees = append(run.employees, *entry)
	case outcomeCollision:
		run.skipped++
		s.metric.IncCollision()
		s.logger.Debug("employee email already exists, trying next number",
			zap.String("shopId", run.cmd.ShopID),
			zap.String("email", meta.Email),
		)
	case outcomeFailed:
		run.errors = append(run.errors, dto.GenerateErrorDto{EmployeeNumber: number, Error: err.Error()})
		s.logger.Warn("failed to create employee",
			zap.String("shopId", run.cmd.ShopID),
			zap.Int("employeeNumber", number),
			zap.Bool("compensated", compensated),
			zap.Error(err),
		)
	}
	s.trace.ApplyTraceAttributes(span, meta)
	end(err)
}

// createEmployee 兩階段寫入：目錄帳號 → 員工紀錄 → 店鋪索引，後段失敗時刪除已建立的部分
func (s *ProvisioningService) createEmployee(
	ctx context.Context,
	cmd GenerateCommand,
	number int,
	email string,
) (*dto.GeneratedEmployeeDto, itemOutcome, bool, error) {
	if _, err := s.directory.GetUserByEmail(ctx, email); err == nil {
		return nil, outcomeCollision, false, nil
	} else if !errors.Is(err, ErrIdentityNotFound) {
		s.metric.IncProvisionFail("probe")
		return nil, outcomeFailed, false, err
	}

	password, err := s.newCredential(core.CredentialLength)
	if err != nil {
		s.metric.IncProvisionFail("credential")
		return nil, outcomeFailed, false, err
	}

	uid, err := s.directory.CreateUser(ctx, CreateIdentityParams{
		Email:         email,
		Password:      password,
		EmailVerified: true,
		Disabled:      false,
		Origin:        core.IdentityOriginBatch,
		ShopID:        cmd.ShopID,
	})
	if errors.Is(err, ErrIdentityExists) {
		return nil, outcomeCollision, false, nil
	}
	if err != nil {
		s.metric.IncProvisionFail("directory")
		return nil, outcomeFailed, false, err
	}

	nowUTC := s.now().UTC()
	record := &model.Employee{
		ID:                uid,
		Name:              fmt.Sprintf("Employee %d", number),
		Role:              cmd.Role,
		Permissions:       cmd.Permissions,
		ShopID:            cmd.ShopID,
		ShopOwnerID:       cmd.ShopOwnerID,
		Email:             email,
		TemporaryPassword: password,
		EmployeeID:        EmployeeCode(cmd.ShopID, number),
		EmployeeNumber:    number,
		Status:            string(core.EmployeeStatusActive),
		CreatedBy:         cmd.ShopOwnerID,
		IsBatchGenerated:  true,
		DateCreated:       nowUTC,
		LastUpdated:       nowUTC,
	}
	if _, err := s.employees.Create(ctx, record); err != nil {
		s.metric.IncProvisionFail("record")
		return nil, outcomeFailed, s.compensate(ctx, uid, false), err
	}

	membership := &model.ShopEmployee{
		ShopID:     cmd.ShopID,
		EmployeeID: uid,
		Email:      email,
		Status:     string(core.EmployeeStatusActive),
		DateAdded:  nowUTC,
	}
	if err := s.memberships.Put(ctx, membership); err != nil {
		s.metric.IncProvisionFail("membership")
		return nil, outcomeFailed, s.compensate(ctx, uid, true), err
	}

	return &dto.GeneratedEmployeeDto{
		UID:               uid,
		EmployeeID:        record.EmployeeID,
		Email:             email,
		TemporaryPassword: password,
		Status:            string(outcomeCreated),
	}, outcomeCreated, false, nil
}

// compensate 回傳是否完整清除；未清除的帳號留給對帳排程
func (s *ProvisioningService) compensate(ctx context.Context, uid string, recordWritten bool) bool {
	ok := true
	if recordWritten {
		if err := s.employees.Delete(ctx, uid); err != nil {
			ok = false
			s.logger.Error("compensation: failed to delete employee record", zap.String("uid", uid), zap.Error(err))
		}
	}
	if err := s.directory.DeleteUser(ctx, uid); err != nil && !errors.Is(err, ErrIdentityNotFound) {
		ok = false
		s.logger.Error("compensation: failed to delete identity", zap.String("uid", uid), zap.Error(err))
	}
	return ok
}

// recordBatch 寫入批次紀錄與稽核；失敗不影響回應
func (s *ProvisioningService) recordBatch(ctx context.Context, run *batchRun) {
	logEmployees := make([]model.BatchLogEmployee, 0, len(run.employees))
	emails := make([]string, 0, len(run.employees))
	for _, e := range run.employees {
		logEmployees = append(logEmployees, model.BatchLogEmployee{Email: e.Email, EmployeeID: e.EmployeeID})
		emails = append(emails, e.Email)
	}
	logErrors := make([]model.BatchLogError, 0, len(run.errors))
	for _, e := range run.errors {
		logErrors = append(logErrors, model.BatchLogError{EmployeeNumber: e.EmployeeNumber, Error: e.Error})
	}

	batchLog := &model.BatchLog{
		ShopID:         run.cmd.ShopID,
		Timestamp:      s.now().UTC(),
		ShopOwnerID:    run.cmd.ShopOwnerID,
		CountRequested: run.cmd.Count,
		CountCreated:   len(run.employees),
		CountFailed:    len(run.errors),
		CountSkipped:   run.skipped,
		Exhausted:      run.exhausted,
		Employees:      logEmployees,
		Errors:         logErrors,
	}
	if err := s.batchLogs.Append(ctx, batchLog); err != nil {
		s.logger.Warn("failed to append employee batch log", zap.String("shopId", run.cmd.ShopID), zap.Error(err))
	}

	if s.auditor == nil {
		return
	}
	audit := fluentdModel.BatchAuditLog{
		ShopID:         run.cmd.ShopID,
		ShopOwnerID:    run.cmd.ShopOwnerID,
		CountRequested: run.cmd.Count,
		CountCreated:   len(run.employees),
		CountFailed:    len(run.errors),
		CountSkipped:   run.skipped,
		StartNumber:    run.start,
		LastNumber:     run.next - 1,
		Exhausted:      run.exhausted,
		Emails:         emails,
	}
	if err := s.auditor.LogBatch(ctx, audit); err != nil {
		s.logger.Warn("failed to ship employee batch audit", zap.String("shopId", run.cmd.ShopID), zap.Error(err))
	}
}

// EmployeeEmail employee<N>@<domain>
func EmployeeEmail(number int, domain string) string {
	return fmt.Sprintf("%s%d@%s", core.UsernamePrefix, number, domain)
}

// EmployeeCode EMP + 店鋪 id 末四碼（大寫）+ 三位數流水號
func EmployeeCode(shopID string, number int) string {
	tail := shopID
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return fmt.Sprintf("%s%s%03d", core.EmployeeCodePrefix, strings.ToUpper(tail), number)
}
