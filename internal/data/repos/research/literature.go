package research

import (
	"context"

	"github.com/google/uuid"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type LiteratureRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sources []*types.LiteratureSource) ([]*types.LiteratureSource, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LiteratureSource, error)
	ListByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.LiteratureSource, error)
	Update(ctx context.Context, tx *gorm.DB, source *types.LiteratureSource) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type literatureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLiteratureRepo(db *gorm.DB, baseLog *logger.Logger) LiteratureRepo {
	repoLog := baseLog.With("repo", "LiteratureRepo")
	return &literatureRepo{db: db, log: repoLog}
}

func (r *literatureRepo) Create(ctx context.Context, tx *gorm.DB, sources []*types.LiteratureSource) ([]*types.LiteratureSource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(sources) == 0 {
		return []*types.LiteratureSource{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

func (r *literatureRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LiteratureSource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LiteratureSource
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *literatureRepo) ListByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.LiteratureSource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LiteratureSource
	if err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *literatureRepo) Update(ctx context.Context, tx *gorm.DB, source *types.LiteratureSource) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(source).Error
}

func (r *literatureRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.LiteratureSource{}).Error
}
