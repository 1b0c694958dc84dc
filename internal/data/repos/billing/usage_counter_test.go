package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stembot/stembot-backend/internal/data/repos/testutil"
	types "github.com/stembot/stembot-backend/internal/domain"
)

func TestUsageCounterRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUsageCounterRepo(db, testutil.Logger(t))
	ctx := context.Background()
	userID := uuid.New()
	month := types.PeriodOf(time.Now())

	// Missing row reads as a zero counter.
	counter, err := repo.GetForMonth(ctx, tx, userID, month)
	if err != nil {
		t.Fatalf("GetForMonth (empty): %v", err)
	}
	if counter.AIInteractionsCount != 0 {
		t.Fatalf("expected zero counter, got %d", counter.AIInteractionsCount)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementAIInteractions(ctx, tx, userID, month); err != nil {
			t.Fatalf("IncrementAIInteractions (%d): %v", i, err)
		}
	}

	counter, err = repo.GetForMonth(ctx, tx, userID, month)
	if err != nil {
		t.Fatalf("GetForMonth: %v", err)
	}
	if counter.AIInteractionsCount != 3 {
		t.Fatalf("expected counter 3, got %d", counter.AIInteractionsCount)
	}

	// A different period starts from zero again.
	next := types.PeriodOf(time.Now().AddDate(0, 1, 0))
	counter, err = repo.GetForMonth(ctx, tx, userID, next)
	if err != nil {
		t.Fatalf("GetForMonth (next period): %v", err)
	}
	if counter.AIInteractionsCount != 0 {
		t.Fatalf("expected fresh counter for new period, got %d", counter.AIInteractionsCount)
	}
}
