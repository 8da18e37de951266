package router

import (
	"staffhub/internal/handler"
	"staffhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

type EmployeeRouter struct {
	handler   *handler.EmployeeHandler
	rateLimit *middleware.RateLimit
}

func NewEmployeeRouter(
	handler *handler.EmployeeHandler,
	rateLimit *middleware.RateLimit,
) *EmployeeRouter {
	return &EmployeeRouter{handler: handler, rateLimit: rateLimit}
}

func (er *EmployeeRouter) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/generate-employees", er.rateLimit.Guard(), er.handler.Generate)

		shop := api.Group("/shop/:shopId")
		shop.GET("/employees", er.handler.ListEmployees)
		shop.GET("/batch-logs", er.handler.ListBatchLogs)

		employees := api.Group("/employees/:employeeId")
		employees.PATCH("/status", er.handler.UpdateStatus)
		employees.POST("/reset-password", er.handler.ResetPassword)
		employees.DELETE("", er.handler.Delete)
	}
}
