package service

import (
	"context"
	"time"

	fluentdModel "staffhub/internal/database/fluentd/model"
	"staffhub/internal/database/mongodb/model"
	"staffhub/internal/database/mongodb/repository"
)

// 找不到資料時一律回傳 mongo.ErrNoDocuments

type EmployeeStore interface {
	Create(ctx context.Context, employee *model.Employee) (*model.Employee, error)
	GetByID(ctx context.Context, uid string) (*model.Employee, error)
	Exists(ctx context.Context, uid string) (bool, error)
	ListByShop(ctx context.Context, shopID string) ([]*model.Employee, error)
	UpdateStatus(ctx context.Context, uid, status, updatedBy string, at time.Time) error
	UpdatePassword(ctx context.Context, uid, password, resetBy string, at time.Time) error
	Delete(ctx context.Context, uid string) error
}

type MembershipStore interface {
	Put(ctx context.Context, membership *model.ShopEmployee) error
	UpdateStatus(ctx context.Context, shopID, uid, status string) error
	Delete(ctx context.Context, shopID, uid string) error
}

type ShopStore interface {
	OwnerExists(ctx context.Context, ownerID string) (bool, error)
	LastEmployeeNumber(ctx context.Context, shopID string) (int, error)
	AdvanceLastEmployeeNumber(ctx context.Context, shopID string, number int) (int, error)
	Register(ctx context.Context, shop *model.Shop) error
}

type BatchLogStore interface {
	Append(ctx context.Context, batchLog *model.BatchLog) error
	ListByShop(ctx context.Context, shopID string, limit int64) ([]*model.BatchLog, error)
}

type IdentityStore interface {
	Insert(ctx context.Context, identity *model.Identity) error
	GetByEmail(ctx context.Context, email string) (*model.Identity, error)
	Update(ctx context.Context, uid string, fields repository.IdentityUpdate) error
	Delete(ctx context.Context, uid string) error
	ListByOriginBefore(ctx context.Context, origin string, before time.Time, after *repository.IdentityCursor, limit int64) ([]*model.Identity, error)
}

type BatchAuditor interface {
	LogBatch(ctx context.Context, audit fluentdModel.BatchAuditLog) error
}

// RedisLimiter 固定視窗計數器
type RedisLimiter interface {
	Enabled() bool
	Consume(ctx context.Context, subject string, windowSeconds int64, limitCount int) (int, int64, error)
}
