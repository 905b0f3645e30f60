package app

import (
	"github.com/platewise/platewise-backend/internal/http/middleware"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth   *middleware.AuthMiddleware
	Limits *middleware.TenantLimitMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:   middleware.NewAuthMiddleware(log, services.Auth),
		Limits: middleware.NewTenantLimitMiddleware(log, services.Usage),
	}
}
