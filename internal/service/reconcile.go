package service

import (
	"context"
	"errors"
	"time"

	"staffhub/config"
	"staffhub/internal/core"
	"staffhub/internal/database/mongodb/model"
	"staffhub/internal/database/mongodb/repository"
	"staffhub/internal/telemetry"

	"go.uber.org/zap"
)

const (
	defaultReconcileGrace = 5 * time.Minute
	reconcilePageSize     = 500
)

type ReconcileResult struct {
	Candidates int `json:"candidates"`
	Deleted    int `json:"deleted"`
	Failed     int `json:"failed"`
}

// ReconcileService 清除批次建立後沒有對應員工紀錄的目錄帳號（補償失敗所留下的孤兒）
type ReconcileService struct {
	logger    *zap.Logger
	trace     *telemetry.Trace
	metric    *telemetry.Metric
	directory Directory
	employees EmployeeStore
	grace     time.Duration
	pageSize  int64
	now       func() time.Time
}

func NewReconcileService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	conf *config.Configuration,
	directory Directory,
	employees EmployeeStore,
) *ReconcileService {
	grace := time.Duration(conf.Reconcile.GraceSeconds) * time.Second
	if grace <= 0 {
		grace = defaultReconcileGrace
	}
	return &ReconcileService{
		logger:    logger,
		trace:     trace,
		metric:    metric,
		directory: directory,
		employees: employees,
		grace:     grace,
		pageSize:  reconcilePageSize,
		now:       time.Now,
	}
}

// Run 寬限期內的帳號可能仍在建立中，不納入
func (s *ReconcileService) Run(ctx context.Context) (result ReconcileResult, err error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() {
		s.trace.ApplyTraceAttributes(span, core.TraceReconcileMeta{
			Candidates: result.Candidates,
			Deleted:    result.Deleted,
			Failed:     result.Failed,
			GraceSec:   int64(s.grace.Seconds()),
		})
		end(err)
	}()

	cutoff := s.now().UTC().Add(-s.grace)
	scanned := 0
	// 以 (createdAt, uid) 遊標翻頁直到取完，已有員工紀錄的帳號不會卡住後面的孤兒
	var after *repository.IdentityCursor
	for {
		identities, listErr := s.directory.ListByOrigin(ctx, core.IdentityOriginBatch, cutoff, after, s.pageSize)
		if listErr != nil {
			return result, listErr
		}
		scanned += len(identities)
		for _, identity := range identities {
			s.reconcileOne(ctx, identity, &result)
		}
		if int64(len(identities)) < s.pageSize {
			break
		}
		last := identities[len(identities)-1]
		after = &repository.IdentityCursor{CreatedAt: last.CreatedAt, UID: last.UID}
	}

	s.metric.AddReconciled("deleted", result.Deleted)
	s.metric.AddReconciled("failed", result.Failed)
	s.logger.Info("reconcile finished",
		zap.Int("scanned", scanned),
		zap.Int("candidates", result.Candidates),
		zap.Int("deleted", result.Deleted),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *ReconcileService) reconcileOne(ctx context.Context, identity *model.Identity, result *ReconcileResult) {
	exists, err := s.employees.Exists(ctx, identity.UID)
	if err != nil {
		result.Failed++
		s.logger.Warn("reconcile: failed to check employee record", zap.String("uid", identity.UID), zap.Error(err))
		return
	}
	if exists {
		return
	}
	result.Candidates++
	if err := s.directory.DeleteUser(ctx, identity.UID); err != nil && !errors.Is(err, ErrIdentityNotFound) {
		result.Failed++
		s.logger.Warn("reconcile: failed to delete orphaned identity", zap.String("uid", identity.UID), zap.Error(err))
		return
	}
	result.Deleted++
	s.logger.Info("reconcile: deleted orphaned identity",
		zap.String("uid", identity.UID),
		zap.String("email", identity.Email),
		zap.String("shopId", identity.ShopID),
	)
}
