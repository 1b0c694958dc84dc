package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stembot/stembot-backend/internal/billing"
	billingrepo "github.com/stembot/stembot-backend/internal/data/repos/billing"
	researchrepo "github.com/stembot/stembot-backend/internal/data/repos/research"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"github.com/stembot/stembot-backend/internal/utils"
)

// FailurePolicy decides what a usage check does when the counter lookup
// itself fails. Mentoring is the product; a broken counter must not take the
// chat down, so the default is to allow.
type FailurePolicy string

const (
	FailOpen   FailurePolicy = "open"
	FailClosed FailurePolicy = "closed"
)

// FailurePolicyFromEnv reads USAGE_GUARD_FAILURE_POLICY, defaulting to open.
func FailurePolicyFromEnv(log *logger.Logger) FailurePolicy {
	raw := strings.ToLower(utils.GetEnv("USAGE_GUARD_FAILURE_POLICY", string(FailOpen), log))
	if raw == string(FailClosed) {
		return FailClosed
	}
	return FailOpen
}

// UsageDecision is the outcome of a quota check. Remaining is -1 when the
// tier has no limit for the checked resource; the JSON shape surfaces that as
// null via Unlimited.
type UsageDecision struct {
	Allowed       bool   `json:"allowed"`
	Unlimited     bool   `json:"unlimited"`
	Remaining     int    `json:"remaining"`
	Limit         int    `json:"limit,omitempty"`
	Used          int    `json:"used"`
	Tier          string `json:"tier"`
	Period        string `json:"period,omitempty"`
	ShouldUpgrade bool   `json:"should_upgrade"`
	Message       string `json:"message,omitempty"`
	Code          string `json:"code,omitempty"`
}

type UsageService interface {
	// CheckAIUsage decides whether the user may run one more AI interaction
	// this billing month.
	CheckAIUsage(ctx context.Context, userID uuid.UUID, tier string) (*UsageDecision, error)
	// CheckProjectLimit decides whether the user may create another active
	// project.
	CheckProjectLimit(ctx context.Context, userID uuid.UUID, tier string) (*UsageDecision, error)
	// RecordAIInteraction bumps the month counter after a successful AI call.
	// Recording never blocks the interaction that already happened.
	RecordAIInteraction(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	// Snapshot returns the current month usage without making a decision.
	Snapshot(ctx context.Context, userID uuid.UUID, tier string) (*UsageSnapshot, error)
}

// UsageSnapshot is the read-only usage view for the billing summary.
type UsageSnapshot struct {
	Period         string `json:"period"`
	AIInteractions struct {
		Used      int  `json:"used"`
		Limit     int  `json:"limit,omitempty"`
		Unlimited bool `json:"unlimited"`
		Remaining int  `json:"remaining"`
	} `json:"ai_interactions"`
	Projects struct {
		Active    int  `json:"active"`
		Limit     int  `json:"limit,omitempty"`
		Unlimited bool `json:"unlimited"`
		Remaining int  `json:"remaining"`
	} `json:"projects"`
}

type usageService struct {
	log      *logger.Logger
	tiers    *billing.Tiers
	policy   FailurePolicy
	counters billingrepo.UsageCounterRepo
	projects researchrepo.ProjectRepo
	now      func() time.Time
}

func NewUsageService(
	baseLog *logger.Logger,
	tiers *billing.Tiers,
	policy FailurePolicy,
	counters billingrepo.UsageCounterRepo,
	projects researchrepo.ProjectRepo,
) UsageService {
	return &usageService{
		log:      baseLog.With("service", "UsageService"),
		tiers:    tiers,
		policy:   policy,
		counters: counters,
		projects: projects,
		now:      time.Now,
	}
}

func (s *usageService) CheckAIUsage(ctx context.Context, userID uuid.UUID, tier string) (*UsageDecision, error) {
	limits := s.tiers.Limits(tier)
	period := types.PeriodOf(s.now())

	if limits.AIInteractions == nil {
		return &UsageDecision{
			Allowed:   true,
			Unlimited: true,
			Remaining: -1,
			Tier:      tier,
			Period:    period,
		}, nil
	}
	limit := *limits.AIInteractions

	counter, err := s.counters.GetForMonth(ctx, nil, userID, period)
	if err != nil {
		return s.onLookupFailure(err, tier, period, limit, "ai usage")
	}

	used := counter.AIInteractionsCount
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	decision := &UsageDecision{
		Allowed:   used < limit,
		Remaining: remaining,
		Limit:     limit,
		Used:      used,
		Tier:      tier,
		Period:    period,
	}
	if !decision.Allowed {
		decision.ShouldUpgrade = tier != billing.TierResearcher
		decision.Code = CodeUsageLimitExceeded
		decision.Message = fmt.Sprintf(
			"You've used all %d AI interactions for this month. Upgrade your plan to keep going.", limit)
	}
	return decision, nil
}

func (s *usageService) CheckProjectLimit(ctx context.Context, userID uuid.UUID, tier string) (*UsageDecision, error) {
	limits := s.tiers.Limits(tier)

	if limits.Projects == nil {
		return &UsageDecision{
			Allowed:   true,
			Unlimited: true,
			Remaining: -1,
			Tier:      tier,
		}, nil
	}
	limit := *limits.Projects

	count, err := s.projects.CountActiveByUserID(ctx, nil, userID)
	if err != nil {
		return s.onLookupFailure(err, tier, "", limit, "project count")
	}

	used := int(count)
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	decision := &UsageDecision{
		Allowed:   used < limit,
		Remaining: remaining,
		Limit:     limit,
		Used:      used,
		Tier:      tier,
	}
	if !decision.Allowed {
		decision.ShouldUpgrade = tier != billing.TierResearcher
		decision.Code = CodeProjectLimitExceeded
		decision.Message = fmt.Sprintf(
			"Your plan allows %d active project(s). Archive a project or upgrade to create more.", limit)
	}
	return decision, nil
}

// onLookupFailure applies the failure policy: fail-open allows the request
// and logs loudly, fail-closed surfaces the error to the caller.
func (s *usageService) onLookupFailure(err error, tier, period string, limit int, what string) (*UsageDecision, error) {
	if s.policy == FailClosed {
		return nil, fmt.Errorf("usage guard %s lookup: %w", what, err)
	}
	s.log.Error("Usage guard lookup failed, allowing request",
		"check", what,
		"tier", tier,
		"policy", string(s.policy),
		"error", err.Error(),
	)
	return &UsageDecision{
		Allowed:   true,
		Remaining: limit,
		Limit:     limit,
		Tier:      tier,
		Period:    period,
	}, nil
}

func (s *usageService) RecordAIInteraction(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	period := types.PeriodOf(s.now())
	if err := s.counters.IncrementAIInteractions(ctx, tx, userID, period); err != nil {
		s.log.Error("Failed to record AI interaction", "user_id", userID, "period", period, "error", err.Error())
		return err
	}
	return nil
}

func (s *usageService) Snapshot(ctx context.Context, userID uuid.UUID, tier string) (*UsageSnapshot, error) {
	limits := s.tiers.Limits(tier)
	period := types.PeriodOf(s.now())

	counter, err := s.counters.GetForMonth(ctx, nil, userID, period)
	if err != nil {
		return nil, err
	}
	projectCount, err := s.projects.CountActiveByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	snap := &UsageSnapshot{Period: period}
	snap.AIInteractions.Used = counter.AIInteractionsCount
	if limits.AIInteractions == nil {
		snap.AIInteractions.Unlimited = true
		snap.AIInteractions.Remaining = -1
	} else {
		snap.AIInteractions.Limit = *limits.AIInteractions
		snap.AIInteractions.Remaining = *limits.AIInteractions - counter.AIInteractionsCount
		if snap.AIInteractions.Remaining < 0 {
			snap.AIInteractions.Remaining = 0
		}
	}

	snap.Projects.Active = int(projectCount)
	if limits.Projects == nil {
		snap.Projects.Unlimited = true
		snap.Projects.Remaining = -1
	} else {
		snap.Projects.Limit = *limits.Projects
		snap.Projects.Remaining = *limits.Projects - int(projectCount)
		if snap.Projects.Remaining < 0 {
			snap.Projects.Remaining = 0
		}
	}
	return snap, nil
}
