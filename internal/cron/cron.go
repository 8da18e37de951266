package cron

import (
	"context"
	"time"

	"staffhub/config"
	"staffhub/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

const defaultReconcileSchedule = "0 */10 * * * *"

type Cron struct {
	logger    *zap.Logger
	conf      *config.Configuration
	server    *cron.Cron
	reconcile *service.ReconcileService
}

// NewCron 秒級排程；上一輪尚未結束時跳過本輪
func NewCron(logger *zap.Logger, conf *config.Configuration, reconcile *service.ReconcileService) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	return &Cron{
		logger:    logger,
		conf:      conf,
		server:    server,
		reconcile: reconcile,
	}
}

func (c *Cron) Run() error {
	if c.conf.Reconcile.Enabled {
		schedule := c.conf.Reconcile.Schedule
		if schedule == "" {
			schedule = defaultReconcileSchedule
		}
		if _, err := c.server.AddFunc(schedule, c.reconcileJob); err != nil {
			return err
		}
		c.logger.Info("reconcile job scheduled", zap.String("schedule", schedule))
	}

	c.server.Start()
	return nil
}

func (c *Cron) reconcileJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if _, err := c.reconcile.Run(ctx); err != nil {
		c.logger.Error("reconcile job failed", zap.Error(err))
	}
}

// Stop 等待執行中的 job 結束，或 ctx 逾時
func (c *Cron) Stop(ctx context.Context) error {
	done := c.server.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
