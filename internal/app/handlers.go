package app

import (
	httpH "github.com/stembot/stembot-backend/internal/http/handlers"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	User        *httpH.UserHandler
	Project     *httpH.ProjectHandler
	Methodology *httpH.MethodologyHandler
	Literature  *httpH.LiteratureHandler
	Writing     *httpH.WritingHandler
	Chat        *httpH.ChatHandler
	Billing     *httpH.BillingHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Auth:        httpH.NewAuthHandler(s.Auth),
		User:        httpH.NewUserHandler(s.User),
		Project:     httpH.NewProjectHandler(s.Project, s.User),
		Methodology: httpH.NewMethodologyHandler(s.Methodology),
		Literature:  httpH.NewLiteratureHandler(s.Literature),
		Writing:     httpH.NewWritingHandler(s.Writing, s.User),
		Chat:        httpH.NewChatHandler(s.Chat, s.User),
		Billing:     httpH.NewBillingHandler(s.Billing, s.Usage, s.User),
	}
}
