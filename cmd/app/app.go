package main

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"staffhub/config"
	"staffhub/internal/cron"
	"staffhub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RuntimeInfo struct {
	Env       string    `json:"env"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	GoVersion string    `json:"go_version"`
	StartAt   time.Time `json:"start_at"`
}

type App struct {
	conf          *config.Configuration
	logger        *zap.Logger
	cronSrv       *cron.Cron
	httpSrv       *http.Server
	healthService *service.HealthService

	appInfo RuntimeInfo
}

func newHttpServer(
	conf *config.Configuration,
	router *gin.Engine,
) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.FormatUint(uint64(conf.App.Port), 10),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newApp(
	conf *config.Configuration,
	logger *zap.Logger,
	httpSrv *http.Server,
	healthService *service.HealthService,
	cronSrv *cron.Cron,
) *App {
	return &App{
		conf:          conf,
		logger:        logger,
		httpSrv:       httpSrv,
		healthService: healthService,
		cronSrv:       cronSrv,
		appInfo: RuntimeInfo{
			Env:       conf.App.Env,
			Name:      conf.App.Name,
			Version:   conf.App.Version,
			GoVersion: runtime.Version(),
			StartAt:   time.Now(),
		},
	}
}

// Run 啟動 cron 與 HTTP server；server 在背景執行，錯誤寫入回傳的 channel
func (a *App) Run() (<-chan error, error) {
	info := a.appInfo
	a.logger.Info("app runtime info",
		zap.String("env", info.Env),
		zap.String("name", info.Name),
		zap.String("version", info.Version),
		zap.String("go_version", info.GoVersion),
		zap.Time("start_at", info.StartAt),
	)

	if err := a.cronSrv.Run(); err != nil {
		return nil, err
	}
	a.logger.Info("cron server started")

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	a.healthService.SetReady(true)
	return errCh, nil
}

// Stop 先摘除 readiness，再關閉 HTTP 與 cron
func (a *App) Stop(ctx context.Context) error {
	a.healthService.SetReady(false)

	var errs []error
	if err := a.httpSrv.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	a.logger.Info("http server has been stop")

	if err := a.cronSrv.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	a.logger.Info("cron server has been stop")

	return errors.Join(errs...)
}
