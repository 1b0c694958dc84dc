package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/stembot/stembot-backend/internal/billing"
)

func TestCreateProjectDeniedAtLimit(t *testing.T) {
	// Free tier allows one active project; the second create must come back
	// as a 402-style quota error, before touching the database.
	usage := newTestUsageService(t, &fakeCounterRepo{}, &fakeProjectRepo{active: 1}, FailOpen)
	svc := NewProjectService(nil, testLogger(t), &fakeProjectRepo{active: 1}, usage)

	_, err := svc.CreateProject(context.Background(), uuid.New(), billing.TierFree, CreateProjectInput{
		Title:            "Microplastics in local waterways",
		ResearchQuestion: "How much microplastic is present in the town river?",
	})
	if err == nil {
		t.Fatal("expected quota error")
	}

	var quotaErr *QuotaError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected *QuotaError, got %T: %v", err, err)
	}
	if quotaErr.Code != CodeProjectLimitExceeded {
		t.Fatalf("expected code %s, got %q", CodeProjectLimitExceeded, quotaErr.Code)
	}
	if !errors.Is(err, ErrQuota) {
		t.Fatal("quota error must match ErrQuota")
	}
}

func TestCreateProjectRejectsEmptyTitle(t *testing.T) {
	usage := newTestUsageService(t, &fakeCounterRepo{}, &fakeProjectRepo{}, FailOpen)
	svc := NewProjectService(nil, testLogger(t), &fakeProjectRepo{}, usage)

	_, err := svc.CreateProject(context.Background(), uuid.New(), billing.TierFree, CreateProjectInput{
		Title: "   ",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
