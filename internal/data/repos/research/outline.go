package research

import (
	"context"

	"github.com/google/uuid"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutlineRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, outline *types.PaperOutline) (*types.PaperOutline, error)
	GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.PaperOutline, error)
}

type outlineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOutlineRepo(db *gorm.DB, baseLog *logger.Logger) OutlineRepo {
	repoLog := baseLog.With("repo", "OutlineRepo")
	return &outlineRepo{db: db, log: repoLog}
}

func (r *outlineRepo) Upsert(ctx context.Context, tx *gorm.DB, outline *types.PaperOutline) (*types.PaperOutline, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if outline.ID == uuid.Nil {
		outline.ID = uuid.New()
	}

	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "sections", "generated_by", "updated_at",
			}),
		}).
		Create(outline).Error
	if err != nil {
		return nil, err
	}
	return r.GetByProjectID(ctx, transaction, outline.ProjectID)
}

func (r *outlineRepo) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.PaperOutline, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.PaperOutline
	err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}
