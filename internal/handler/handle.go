package handler

import (
	"staffhub/internal/service"

	"github.com/google/wire"
)

// ProviderSet Provider对象集合
var ProviderSet = wire.NewSet(
	NewEmployeeHandler,
	NewHealthHandler,
	wire.Bind(new(Provisioner), new(*service.ProvisioningService)),
	wire.Bind(new(EmployeeManager), new(*service.EmployeeService)),
	wire.Bind(new(HealthChecker), new(*service.HealthService)),
)
