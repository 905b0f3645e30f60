package app

import (
	"github.com/platewise/platewise-backend/internal/clients/email"
	"github.com/platewise/platewise-backend/internal/clients/payment"
	"github.com/platewise/platewise-backend/internal/clients/redis"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type Clients struct {
	Payment    payment.Provider
	Email      email.Client
	UsageCache redis.UsageCache
}

func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")

	mailer, err := email.NewFromEnv(log)
	if err != nil {
		log.Warn("Email client init failed, mail disabled", "error", err)
		mailer = nil
	}

	// The cache is an optimization; the usage service falls back to counting
	// rows when it is absent.
	usageCache, err := redis.NewUsageCache(log)
	if err != nil {
		log.Warn("Redis init failed, usage cache disabled", "error", err)
		usageCache = nil
	}

	return Clients{
		Payment:    payment.NewOfflineProvider(log),
		Email:      mailer,
		UsageCache: usageCache,
	}
}
