package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/stembot/stembot-backend/internal/http/handlers"
	httpMW "github.com/stembot/stembot-backend/internal/http/middleware"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware      *httpMW.AuthMiddleware
	RateLimitMiddleware *httpMW.RateLimitMiddleware

	HealthHandler      *httpH.HealthHandler
	AuthHandler        *httpH.AuthHandler
	UserHandler        *httpH.UserHandler
	ProjectHandler     *httpH.ProjectHandler
	MethodologyHandler *httpH.MethodologyHandler
	LiteratureHandler  *httpH.LiteratureHandler
	WritingHandler     *httpH.WritingHandler
	ChatHandler        *httpH.ChatHandler
	BillingHandler     *httpH.BillingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("stembot-backend"))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}

		// Stripe webhook (public; signature-verified)
		if cfg.BillingHandler != nil {
			api.POST("/billing/webhook", cfg.BillingHandler.Webhook)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}
		if cfg.RateLimitMiddleware != nil {
			protected.Use(cfg.RateLimitMiddleware.Limit())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Projects
		if cfg.ProjectHandler != nil {
			protected.POST("/projects", cfg.ProjectHandler.Create)
			protected.GET("/projects", cfg.ProjectHandler.List)
			protected.GET("/projects/:id", cfg.ProjectHandler.Get)
			protected.PATCH("/projects/:id", cfg.ProjectHandler.Update)
			protected.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
		}

		// Methodology
		if cfg.MethodologyHandler != nil {
			protected.GET("/projects/:id/methodology/recommend", cfg.MethodologyHandler.Recommend)
			protected.PUT("/projects/:id/methodology", cfg.MethodologyHandler.Save)
			protected.GET("/projects/:id/methodology", cfg.MethodologyHandler.Get)
			protected.GET("/methodology/sample-size", cfg.MethodologyHandler.SampleSize)
		}

		// Literature
		if cfg.LiteratureHandler != nil {
			protected.POST("/projects/:id/sources", cfg.LiteratureHandler.Add)
			protected.GET("/projects/:id/sources", cfg.LiteratureHandler.List)
			protected.PATCH("/projects/:id/sources/:sourceId", cfg.LiteratureHandler.Update)
			protected.DELETE("/projects/:id/sources/:sourceId", cfg.LiteratureHandler.Delete)
		}

		// Writing
		if cfg.WritingHandler != nil {
			protected.POST("/projects/:id/outline/generate", cfg.WritingHandler.GenerateOutline)
			protected.GET("/projects/:id/outline", cfg.WritingHandler.GetOutline)
			protected.PUT("/projects/:id/outline/draft", cfg.WritingHandler.SaveSectionDraft)
		}

		// Chat
		if cfg.ChatHandler != nil {
			protected.POST("/projects/:id/threads", cfg.ChatHandler.CreateThread)
			protected.GET("/projects/:id/threads", cfg.ChatHandler.ListThreads)
			protected.GET("/threads/:threadId/messages", cfg.ChatHandler.ListMessages)
			protected.POST("/threads/:threadId/messages", cfg.ChatHandler.SendMessage)
			protected.DELETE("/threads/:threadId", cfg.ChatHandler.DeleteThread)
		}

		// Billing
		if cfg.BillingHandler != nil {
			protected.POST("/billing/checkout", cfg.BillingHandler.CreateCheckoutSession)
			protected.POST("/billing/portal", cfg.BillingHandler.CreatePortalSession)
			protected.GET("/billing/summary", cfg.BillingHandler.Summary)
			protected.GET("/billing/usage", cfg.BillingHandler.Usage)
		}
	}

	return r
}
