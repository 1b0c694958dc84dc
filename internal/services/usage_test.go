package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stembot/stembot-backend/internal/billing"
	researchrepo "github.com/stembot/stembot-backend/internal/data/repos/research"
	types "github.com/stembot/stembot-backend/internal/domain"
)

type fakeCounterRepo struct {
	used       int
	err        error
	increments int
}

func (f *fakeCounterRepo) GetForMonth(ctx context.Context, tx *gorm.DB, userID uuid.UUID, month string) (*types.UsageCounter, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.UsageCounter{UserID: userID, Month: month, AIInteractionsCount: f.used}, nil
}

func (f *fakeCounterRepo) IncrementAIInteractions(ctx context.Context, tx *gorm.DB, userID uuid.UUID, month string) error {
	if f.err != nil {
		return f.err
	}
	f.increments++
	return nil
}

type fakeProjectRepo struct {
	researchrepo.ProjectRepo
	active int64
	err    error
}

func (f *fakeProjectRepo) CountActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.active, nil
}

func newTestUsageService(t *testing.T, counters *fakeCounterRepo, projects *fakeProjectRepo, policy FailurePolicy) UsageService {
	t.Helper()
	log := testLogger(t)
	tiers, err := billing.LoadTiers("")
	if err != nil {
		t.Fatalf("LoadTiers: %v", err)
	}
	svc := NewUsageService(log, tiers, policy, counters, projects)
	svc.(*usageService).now = func() time.Time {
		return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCheckAIUsageUnlimitedTier(t *testing.T) {
	// Researcher has no AI limit; the counter must not even be consulted.
	counters := &fakeCounterRepo{err: errors.New("db down")}
	svc := newTestUsageService(t, counters, &fakeProjectRepo{}, FailOpen)

	decision, err := svc.CheckAIUsage(context.Background(), uuid.New(), billing.TierResearcher)
	if err != nil {
		t.Fatalf("CheckAIUsage: %v", err)
	}
	if !decision.Allowed || !decision.Unlimited || decision.Remaining != -1 {
		t.Fatalf("expected unlimited allow, got %+v", decision)
	}
}

func TestCheckAIUsageUnderLimit(t *testing.T) {
	svc := newTestUsageService(t, &fakeCounterRepo{used: 49}, &fakeProjectRepo{}, FailOpen)

	decision, err := svc.CheckAIUsage(context.Background(), uuid.New(), billing.TierFree)
	if err != nil {
		t.Fatalf("CheckAIUsage: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allowed at 49/50, got %+v", decision)
	}
	if decision.Remaining != 1 {
		t.Fatalf("expected remaining 1, got %d", decision.Remaining)
	}
	if decision.Period != "2026-03" {
		t.Fatalf("expected period 2026-03, got %q", decision.Period)
	}
}

func TestCheckAIUsageAtLimit(t *testing.T) {
	svc := newTestUsageService(t, &fakeCounterRepo{used: 50}, &fakeProjectRepo{}, FailOpen)

	decision, err := svc.CheckAIUsage(context.Background(), uuid.New(), billing.TierFree)
	if err != nil {
		t.Fatalf("CheckAIUsage: %v", err)
	}
	if decision.Allowed {
		t.Fatalf("expected denial at 50/50, got %+v", decision)
	}
	if !decision.ShouldUpgrade {
		t.Fatal("expected should_upgrade for free tier denial")
	}
	if decision.Code != CodeUsageLimitExceeded {
		t.Fatalf("expected code %s, got %q", CodeUsageLimitExceeded, decision.Code)
	}
	if decision.Remaining != 0 {
		t.Fatalf("expected remaining 0, got %d", decision.Remaining)
	}
	if decision.Message == "" {
		t.Fatal("expected an upgrade message")
	}
}

func TestCheckAIUsageUnknownTierFallsBackToFree(t *testing.T) {
	svc := newTestUsageService(t, &fakeCounterRepo{used: 50}, &fakeProjectRepo{}, FailOpen)

	decision, err := svc.CheckAIUsage(context.Background(), uuid.New(), "enterprise_legacy")
	if err != nil {
		t.Fatalf("CheckAIUsage: %v", err)
	}
	if decision.Allowed {
		t.Fatalf("unknown tier must get free limits, got %+v", decision)
	}
	if decision.Limit != 50 {
		t.Fatalf("expected free limit 50, got %d", decision.Limit)
	}
}

func TestCheckAIUsageFailOpen(t *testing.T) {
	counters := &fakeCounterRepo{err: errors.New("connection refused")}
	svc := newTestUsageService(t, counters, &fakeProjectRepo{}, FailOpen)

	decision, err := svc.CheckAIUsage(context.Background(), uuid.New(), billing.TierFree)
	if err != nil {
		t.Fatalf("fail-open must not surface the lookup error: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("fail-open must allow, got %+v", decision)
	}
}

func TestCheckAIUsageFailClosed(t *testing.T) {
	counters := &fakeCounterRepo{err: errors.New("connection refused")}
	svc := newTestUsageService(t, counters, &fakeProjectRepo{}, FailClosed)

	if _, err := svc.CheckAIUsage(context.Background(), uuid.New(), billing.TierFree); err == nil {
		t.Fatal("fail-closed must surface the lookup error")
	}
}

func TestCheckProjectLimit(t *testing.T) {
	tests := []struct {
		name        string
		tier        string
		active      int64
		wantAllowed bool
	}{
		{"free under limit", billing.TierFree, 0, true},
		{"free at limit", billing.TierFree, 1, false},
		{"student pro under limit", billing.TierStudentPro, 9, true},
		{"student pro at limit", billing.TierStudentPro, 10, false},
		{"researcher unlimited", billing.TierResearcher, 500, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestUsageService(t, &fakeCounterRepo{}, &fakeProjectRepo{active: tt.active}, FailOpen)
			decision, err := svc.CheckProjectLimit(context.Background(), uuid.New(), tt.tier)
			if err != nil {
				t.Fatalf("CheckProjectLimit: %v", err)
			}
			if decision.Allowed != tt.wantAllowed {
				t.Fatalf("allowed = %v, want %v (%+v)", decision.Allowed, tt.wantAllowed, decision)
			}
			if !tt.wantAllowed && decision.Code != CodeProjectLimitExceeded {
				t.Fatalf("expected code %s, got %q", CodeProjectLimitExceeded, decision.Code)
			}
		})
	}
}

func TestRecordAIInteraction(t *testing.T) {
	counters := &fakeCounterRepo{}
	svc := newTestUsageService(t, counters, &fakeProjectRepo{}, FailOpen)

	if err := svc.RecordAIInteraction(context.Background(), nil, uuid.New()); err != nil {
		t.Fatalf("RecordAIInteraction: %v", err)
	}
	if counters.increments != 1 {
		t.Fatalf("expected one increment, got %d", counters.increments)
	}
}

func TestSnapshot(t *testing.T) {
	svc := newTestUsageService(t, &fakeCounterRepo{used: 12}, &fakeProjectRepo{active: 1}, FailOpen)

	snap, err := svc.Snapshot(context.Background(), uuid.New(), billing.TierStudentPro)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.AIInteractions.Used != 12 || snap.AIInteractions.Remaining != 488 {
		t.Fatalf("unexpected AI usage: %+v", snap.AIInteractions)
	}
	if snap.Projects.Active != 1 || snap.Projects.Remaining != 9 {
		t.Fatalf("unexpected project usage: %+v", snap.Projects)
	}
}
