package research

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stembot/stembot-backend/internal/data/repos/testutil"
	types "github.com/stembot/stembot-backend/internal/domain"
)

func TestProjectRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProjectRepo(db, testutil.Logger(t))
	ctx := context.Background()
	userID := uuid.New()

	created, err := repo.Create(ctx, tx, []*types.Project{
		{
			ID:               uuid.New(),
			UserID:           userID,
			Title:            "Caffeine and reaction time",
			ResearchQuestion: "Does caffeine affect reaction time in teenagers?",
			SubjectField:     "biology",
			Status:           types.ProjectStatusActive,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 project, got %d", len(created))
	}

	listed, err := repo.ListByUserID(ctx, tx, userID)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created[0].ID {
		t.Fatalf("ListByUserID: unexpected result: %+v", listed)
	}

	count, err := repo.CountActiveByUserID(ctx, tx, userID)
	if err != nil {
		t.Fatalf("CountActiveByUserID: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountActiveByUserID: expected 1, got %d", count)
	}

	created[0].Status = types.ProjectStatusCompleted
	if err := repo.Update(ctx, tx, created[0]); err != nil {
		t.Fatalf("Update: %v", err)
	}

	count, err = repo.CountActiveByUserID(ctx, tx, userID)
	if err != nil {
		t.Fatalf("CountActiveByUserID (after complete): %v", err)
	}
	if count != 0 {
		t.Fatalf("CountActiveByUserID: expected 0 after completing, got %d", count)
	}

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{created[0].ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	listed, err = repo.ListByUserID(ctx, tx, userID)
	if err != nil {
		t.Fatalf("ListByUserID (after delete): %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("ListByUserID: expected soft-deleted project to be hidden, got %+v", listed)
	}
}
