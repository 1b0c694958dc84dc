package app

import (
	"gorm.io/gorm"

	"github.com/stembot/stembot-backend/internal/data/repos"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo

	Project     repos.ProjectRepo
	Methodology repos.MethodologyRepo
	Literature  repos.LiteratureRepo
	Outline     repos.OutlineRepo

	ChatThread  repos.ChatThreadRepo
	ChatMessage repos.ChatMessageRepo
	AICallLog   repos.AICallLogRepo

	Subscription repos.SubscriptionRepo
	UsageCounter repos.UsageCounterRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),

		Project:     repos.NewProjectRepo(db, log),
		Methodology: repos.NewMethodologyRepo(db, log),
		Literature:  repos.NewLiteratureRepo(db, log),
		Outline:     repos.NewOutlineRepo(db, log),

		ChatThread:  repos.NewChatThreadRepo(db, log),
		ChatMessage: repos.NewChatMessageRepo(db, log),
		AICallLog:   repos.NewAICallLogRepo(db, log),

		Subscription: repos.NewSubscriptionRepo(db, log),
		UsageCounter: repos.NewUsageCounterRepo(db, log),
	}
}
