package app

import (
	"time"

	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"github.com/stembot/stembot-backend/internal/services"
	"github.com/stembot/stembot-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	UsageGuardPolicy services.FailurePolicy
	TierLimitsFile   string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	return Config{
		JWTSecretKey:     jwtSecretKey,
		AccessTokenTTL:   time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL:  time.Duration(refreshTokenTTLSeconds) * time.Second,
		UsageGuardPolicy: services.FailurePolicyFromEnv(log),
		TierLimitsFile:   utils.GetEnv("TIER_LIMITS_FILE", "", log),
	}
}
