//go:build wireinject
// +build wireinject

package main

import (
	"staffhub/config"
	"staffhub/internal/command"
	"staffhub/internal/cron"
	"staffhub/internal/database"
	"staffhub/internal/handler"
	"staffhub/internal/middleware"
	"staffhub/internal/router"
	"staffhub/internal/service"
	"staffhub/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			telemetry.ProviderSet,
			newHttpServer,
			newApp,
		),
	)
}

// wireCommand init command dependencies.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			telemetry.ProviderSet,
			command.ProviderSet,
		),
	)
}
