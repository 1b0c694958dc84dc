package app

import (
	httpMW "github.com/stembot/stembot-backend/internal/http/middleware"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth      *httpMW.AuthMiddleware
	RateLimit *httpMW.RateLimitMiddleware
}

func wireMiddleware(log *logger.Logger, s Services, clients Clients) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:      httpMW.NewAuthMiddleware(log, s.Auth),
		RateLimit: httpMW.NewRateLimitMiddleware(log, clients.RateLimiter),
	}
}
