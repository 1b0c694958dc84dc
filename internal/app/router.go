package app

import (
	"github.com/gin-gonic/gin"

	stemhttp "github.com/stembot/stembot-backend/internal/http"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return stemhttp.NewRouter(stemhttp.RouterConfig{
		Log: log,

		AuthMiddleware:      middleware.Auth,
		RateLimitMiddleware: middleware.RateLimit,

		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		UserHandler:        handlers.User,
		ProjectHandler:     handlers.Project,
		MethodologyHandler: handlers.Methodology,
		LiteratureHandler:  handlers.Literature,
		WritingHandler:     handlers.Writing,
		ChatHandler:        handlers.Chat,
		BillingHandler:     handlers.Billing,
	})
}
