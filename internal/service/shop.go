package service

import (
	"context"
	"fmt"
	"strings"

	"staffhub/internal/database/mongodb/model"
	cErr "staffhub/internal/pkg/error"
	"staffhub/internal/telemetry"

	"go.uber.org/zap"
)

// ShopService 只供維運指令建立店主紀錄；API 本身不建立店主
type ShopService struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	shops  ShopStore
}

func NewShopService(logger *zap.Logger, trace *telemetry.Trace, shops ShopStore) *ShopService {
	return &ShopService{logger: logger, trace: trace, shops: shops}
}

// Register 建立店主紀錄；shopID 與 ownerID 不同時另建店鋪紀錄
func (s *ShopService) Register(ctx context.Context, ownerID, shopID, name string) (err error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	ownerID = strings.TrimSpace(ownerID)
	shopID = strings.TrimSpace(shopID)
	if ownerID == "" {
		return cErr.ValidateErr("owner id is required")
	}

	if err = s.shops.Register(ctx, &model.Shop{ID: ownerID, Name: name}); err != nil {
		return cErr.DatabaseError(fmt.Sprintf("database RegisterOwner error: %v", err))
	}
	if shopID != "" && shopID != ownerID {
		if err = s.shops.Register(ctx, &model.Shop{ID: shopID, Name: name, OwnerID: ownerID}); err != nil {
			return cErr.DatabaseError(fmt.Sprintf("database RegisterShop error: %v", err))
		}
	}
	s.logger.Info("shop registered", zap.String("ownerId", ownerID), zap.String("shopId", shopID), zap.String("name", name))
	return nil
}
