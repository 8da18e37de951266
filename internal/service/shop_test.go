package service

import (
	"context"
	"net/http"
	"testing"

	"staffhub/internal/telemetry"

	"go.uber.org/zap"
)

func TestShopRegister(t *testing.T) {
	t.Parallel()
	trace, _, _ := telemetry.NewTrace(nil)

	tests := []struct {
		name      string
		owner     string
		shop      string
		wantDocs  int
		wantError int
	}{
		{name: "owner only", owner: "owner-9", wantDocs: 1},
		{name: "owner is shop", owner: "owner-9", shop: "owner-9", wantDocs: 1},
		{name: "separate shop", owner: "owner-9", shop: "shop-9", wantDocs: 2},
		{name: "missing owner", owner: " ", wantError: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			shops := newFakeShopStore()
			svc := NewShopService(zap.NewNop(), trace, shops)

			err := svc.Register(context.Background(), tt.owner, tt.shop, "Test Shop")
			if tt.wantError != 0 {
				requireAppError(t, err, tt.wantError)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(shops.registered) != tt.wantDocs {
				t.Fatalf("expected %d documents, got %d", tt.wantDocs, len(shops.registered))
			}
			if ok, _ := shops.OwnerExists(context.Background(), tt.owner); !ok {
				t.Fatalf("owner must exist after registration")
			}
			if tt.shop != "" && tt.shop != tt.owner && shops.registered[tt.shop].OwnerID != tt.owner {
				t.Fatalf("shop document must reference its owner")
			}
		})
	}
}
