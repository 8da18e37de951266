package repository

import (
	"context"
	"encoding/json"
	"time"

	"staffhub/config"
	"staffhub/internal/core"
	"staffhub/internal/database/client"
	"staffhub/internal/database/fluentd/model"
)

// LogRepository 統一負責發送 Request/Response/Batch Log 到 Fluentd
type LogRepository struct {
	fluentdClient client.Client
	version       string
	now           func() time.Time
}

func NewLogRepository(config *config.Configuration, client client.Client) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{fluentdClient: client, version: version, now: time.Now}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if req.LoggedAt == "" {
		req.LoggedAt = repository.timestamp()
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	return repository.post(ctx, core.FluentdRequest, req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if resp.LoggedAt == "" {
		resp.LoggedAt = repository.timestamp()
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	return repository.post(ctx, core.FluentdResponse, resp)
}

func (repository *LogRepository) LogBatch(ctx context.Context, audit model.BatchAuditLog) error {
	if audit.LoggedAt == "" {
		audit.LoggedAt = repository.timestamp()
	}
	if audit.Version == "" {
		audit.Version = repository.version
	}
	return repository.post(ctx, core.FluentdBatchAudit, audit)
}

func (repository *LogRepository) timestamp() string {
	return repository.now().UTC().Format(core.FluentdTimeLayout)
}

// fluent-logger 對 map 的編碼最穩定，先轉成 map 再送出
func (repository *LogRepository) post(ctx context.Context, tag core.FluentdSubTag, record any) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var fluentdMessage map[string]any
	if err := json.Unmarshal(b, &fluentdMessage); err != nil {
		return err
	}
	return repository.fluentdClient.Post(ctx, string(tag), fluentdMessage)
}
