package database

import (
	client "staffhub/internal/database/client"
	fluentdRepo "staffhub/internal/database/fluentd/repository"
	mongoRepo "staffhub/internal/database/mongodb/repository"
	redisRepo "staffhub/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
