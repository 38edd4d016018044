package httpv1

import (
	logginghelper "github.com/Egor213/LogKeeper/internal/controller/common/logging"
	"github.com/Egor213/LogKeeper/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const maxBodySize = "32M"

func ConfigureRouter(handler *echo.Echo, services *service.Services) {
	handler.Use(middleware.Recover())
	handler.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: logginghelper.LogRequest,
	}))

	v1 := handler.Group("/api/v1")
	newUserRoutes(v1.Group("/users"), services.Auth)
	newLogRoutes(v1.Group("/logs",
		middleware.BasicAuth(basicAuthValidator(services.Auth)),
		middleware.Decompress(),
		middleware.BodyLimit(maxBodySize),
	), services.Log)
}
