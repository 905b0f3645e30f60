package app

import (
	"strings"
	"time"

	"github.com/platewise/platewise-backend/internal/pkg/envutil"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	AllowedOrigins []string
	Port           string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	port := envutil.GetEnv("PORT", "8080", log)

	var origins []string
	if raw := envutil.GetEnv("ALLOWED_ORIGINS", "", log); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		AllowedOrigins: origins,
		Port:           port,
	}
}
