package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/stembot/stembot-backend/internal/billing"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"github.com/stembot/stembot-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Usage       services.UsageService
	Project     services.ProjectService
	Methodology services.MethodologyService
	Literature  services.LiteratureService
	Writing     services.WritingService
	Chat        services.ChatService
	Billing     services.BillingService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	tiers, err := billing.LoadTiers(cfg.TierLimitsFile)
	if err != nil {
		return Services{}, fmt.Errorf("load tier limits: %w", err)
	}
	prices := billing.NewPriceMapFromEnv(log)

	authService := services.NewAuthService(db, log, r.User, r.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(db, log, r.User)
	usageService := services.NewUsageService(log, tiers, cfg.UsageGuardPolicy, r.UsageCounter, r.Project)
	projectService := services.NewProjectService(db, log, r.Project, usageService)
	methodologyService := services.NewMethodologyService(db, log, projectService, r.Methodology)
	literatureService := services.NewLiteratureService(db, log, projectService, r.Literature)
	writingService := services.NewWritingService(db, log, projectService, r.Outline, r.Methodology, r.AICallLog, usageService, clients.OpenAI)
	chatService := services.NewChatService(db, log, projectService, r.ChatThread, r.ChatMessage, r.AICallLog, usageService, clients.OpenAI)
	billingService := services.NewBillingService(db, log, r.User, r.Subscription, usageService, tiers, prices)

	return Services{
		Auth:        authService,
		User:        userService,
		Usage:       usageService,
		Project:     projectService,
		Methodology: methodologyService,
		Literature:  literatureService,
		Writing:     writingService,
		Chat:        chatService,
		Billing:     billingService,
	}, nil
}
