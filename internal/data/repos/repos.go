// Package repos re-exports the area repositories under one import so the
// service layer doesn't accumulate five repo imports per file.
package repos

import (
	"github.com/stembot/stembot-backend/internal/data/repos/auth"
	"github.com/stembot/stembot-backend/internal/data/repos/billing"
	"github.com/stembot/stembot-backend/internal/data/repos/chat"
	"github.com/stembot/stembot-backend/internal/data/repos/research"
	"github.com/stembot/stembot-backend/internal/data/repos/user"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type ProjectRepo = research.ProjectRepo
type MethodologyRepo = research.MethodologyRepo
type LiteratureRepo = research.LiteratureRepo
type OutlineRepo = research.OutlineRepo

type ChatThreadRepo = chat.ThreadRepo
type ChatMessageRepo = chat.MessageRepo
type AICallLogRepo = chat.AICallLogRepo

type SubscriptionRepo = billing.SubscriptionRepo
type UsageCounterRepo = billing.UsageCounterRepo

var (
	NewUserRepo      = user.NewUserRepo
	NewUserTokenRepo = auth.NewUserTokenRepo

	NewProjectRepo     = research.NewProjectRepo
	NewMethodologyRepo = research.NewMethodologyRepo
	NewLiteratureRepo  = research.NewLiteratureRepo
	NewOutlineRepo     = research.NewOutlineRepo

	NewChatThreadRepo  = chat.NewThreadRepo
	NewChatMessageRepo = chat.NewMessageRepo
	NewAICallLogRepo   = chat.NewAICallLogRepo

	NewSubscriptionRepo = billing.NewSubscriptionRepo
	NewUsageCounterRepo = billing.NewUsageCounterRepo
)
