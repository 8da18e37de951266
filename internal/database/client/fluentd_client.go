package client

import (
	"context"
	"time"

	"staffhub/config"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// Client 讓 repository 可以在測試中替換
type Client interface {
	Post(ctx context.Context, tag string, message any) error
	Close() error
}

// FluentdClient implements Client using fluent-logger-golang.
type FluentdClient struct {
	client    *fluent.Fluent
	tagPrefix string
}

// NewFluentdClient 未啟用時回傳 NoopClient
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (Client, func(), error) {
	if !config.Fluentd.Enabled {
		logger.Info("Fluentd disabled")
		return &NoopClient{}, func() {}, nil
	}

	prefix := "staffhub"
	if config.Fluentd.TagPrefix != "" {
		prefix = config.Fluentd.TagPrefix
	}
	var timeout time.Duration
	if config.Fluentd.Timeout > 0 {
		timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}

	f, err := fluent.New(fluent.Config{
		FluentHost: config.Fluentd.Host,
		FluentPort: config.Fluentd.Port,
		Timeout:    timeout,
		TagPrefix:  prefix,
		Async:      true,
	})
	if err != nil {
		logger.Error("failed to connect to Fluentd", zap.Error(err))
		return nil, nil, err
	}
	logger.Info("Connected to Fluentd", zap.String("tagPrefix", prefix))

	fc := &FluentdClient{client: f, tagPrefix: prefix}
	cleanup := func() {
		logger.Info("closing the Fluentd resources")
		if err := fc.Close(); err != nil {
			logger.Error("failed to close Fluentd client", zap.Error(err))
		}
	}
	return fc, cleanup, nil
}

func (c *FluentdClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Post 的 tag 會自動加上 TagPrefix，例如 "request_log" => "staffhub.request_log"
func (c *FluentdClient) Post(ctx context.Context, tag string, message any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.client.Post(tag, message)
}

// NoopClient 停用模式
type NoopClient struct{}

func (n *NoopClient) Post(ctx context.Context, tag string, message any) error { return nil }
func (n *NoopClient) Close() error                                            { return nil }
