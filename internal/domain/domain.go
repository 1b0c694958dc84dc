// Package domain re-exports the persisted model types from their area
// subpackages so callers can import a single package as "types".
package domain

import (
	"github.com/stembot/stembot-backend/internal/domain/auth"
	"github.com/stembot/stembot-backend/internal/domain/billing"
	"github.com/stembot/stembot-backend/internal/domain/chat"
	"github.com/stembot/stembot-backend/internal/domain/research"
	"github.com/stembot/stembot-backend/internal/domain/user"
)

type (
	User      = user.User
	UserToken = auth.UserToken

	Project           = research.Project
	MethodologyRecord = research.MethodologyRecord
	LiteratureSource  = research.LiteratureSource
	PaperOutline      = research.PaperOutline
	OutlineSection    = research.OutlineSection

	ChatThread  = chat.ChatThread
	ChatMessage = chat.ChatMessage
	AICallLog   = chat.AICallLog

	Subscription = billing.Subscription
	UsageCounter = billing.UsageCounter
)

const (
	ProjectStatusActive    = research.ProjectStatusActive
	ProjectStatusPaused    = research.ProjectStatusPaused
	ProjectStatusCompleted = research.ProjectStatusCompleted
	ProjectStatusArchived  = research.ProjectStatusArchived

	SourceStatusToRead  = research.SourceStatusToRead
	SourceStatusReading = research.SourceStatusReading
	SourceStatusRead    = research.SourceStatusRead

	RoleUser      = chat.RoleUser
	RoleAssistant = chat.RoleAssistant
	RoleSystem    = chat.RoleSystem

	SubscriptionStatusActive   = billing.SubscriptionStatusActive
	SubscriptionStatusPastDue  = billing.SubscriptionStatusPastDue
	SubscriptionStatusCanceled = billing.SubscriptionStatusCanceled
)

// PeriodOf formats a time as the usage-counter period key (YYYY-MM, UTC).
var PeriodOf = billing.PeriodOf
