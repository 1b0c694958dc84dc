package research

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stembot/stembot-backend/internal/data/repos/testutil"
	types "github.com/stembot/stembot-backend/internal/domain"
)

func TestMethodologyRepoUpsertOverwrites(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewMethodologyRepo(db, testutil.Logger(t))
	ctx := context.Background()
	projectID := uuid.New()

	first, err := repo.Upsert(ctx, tx, &types.MethodologyRecord{
		ProjectID:           projectID,
		MethodType:          "survey",
		EstimatedSampleSize: 80,
		ProcedureDraft:      "Distribute questionnaire in week one.",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	second, err := repo.Upsert(ctx, tx, &types.MethodologyRecord{
		ProjectID:           projectID,
		MethodType:          "controlled experiment",
		EstimatedSampleSize: 60,
		ProcedureDraft:      "Randomize participants into two groups.",
	})
	if err != nil {
		t.Fatalf("Upsert (second): %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("Upsert must overwrite, not version: first id %s, second id %s", first.ID, second.ID)
	}
	if second.MethodType != "controlled experiment" {
		t.Fatalf("Upsert did not overwrite method type: %+v", second)
	}

	got, err := repo.GetByProjectID(ctx, tx, projectID)
	if err != nil {
		t.Fatalf("GetByProjectID: %v", err)
	}
	if got.EstimatedSampleSize != 60 {
		t.Fatalf("GetByProjectID: expected overwritten sample size 60, got %d", got.EstimatedSampleSize)
	}
}
