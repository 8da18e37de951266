package service

import (
	client "staffhub/internal/database/client"
	fluentdRepo "staffhub/internal/database/fluentd/repository"
	mongoRepo "staffhub/internal/database/mongodb/repository"
	redisRepo "staffhub/internal/database/redis/repository"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewDirectoryService,
	NewProvisioningService,
	NewEmployeeService,
	NewReconcileService,
	NewShopService,
	NewRateLimitService,
	NewHealthService,
	wire.Bind(new(Directory), new(*DirectoryService)),
	wire.Bind(new(IdentityStore), new(*mongoRepo.IdentityRepository)),
	wire.Bind(new(EmployeeStore), new(*mongoRepo.EmployeeRepository)),
	wire.Bind(new(MembershipStore), new(*mongoRepo.ShopEmployeeRepository)),
	wire.Bind(new(ShopStore), new(*mongoRepo.ShopRepository)),
	wire.Bind(new(BatchLogStore), new(*mongoRepo.BatchLogRepository)),
	wire.Bind(new(BatchAuditor), new(*fluentdRepo.LogRepository)),
	wire.Bind(new(RedisLimiter), new(*redisRepo.RateLimiterRepository)),
	wire.Bind(new(Pinger), new(*client.MongoClient)),
)
