package research

import (
	"context"

	"github.com/google/uuid"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MethodologyRepo interface {
	// Upsert writes the record for its project, replacing any existing one.
	// Methodology is never versioned; re-submission overwrites.
	Upsert(ctx context.Context, tx *gorm.DB, rec *types.MethodologyRecord) (*types.MethodologyRecord, error)
	GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.MethodologyRecord, error)
}

type methodologyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMethodologyRepo(db *gorm.DB, baseLog *logger.Logger) MethodologyRepo {
	repoLog := baseLog.With("repo", "MethodologyRepo")
	return &methodologyRepo{db: db, log: repoLog}
}

func (r *methodologyRepo) Upsert(ctx context.Context, tx *gorm.DB, rec *types.MethodologyRecord) (*types.MethodologyRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"method_type", "method_name", "reasoning",
				"independent_variables", "dependent_variables", "control_variables",
				"participant_criteria", "estimated_sample_size",
				"recruitment_strategy", "procedure_draft", "updated_at",
			}),
		}).
		Create(rec).Error
	if err != nil {
		return nil, err
	}
	return r.GetByProjectID(ctx, transaction, rec.ProjectID)
}

func (r *methodologyRepo) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.MethodologyRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.MethodologyRecord
	err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}
