package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type ThreadRepo interface {
	Create(ctx context.Context, tx *gorm.DB, threads []*types.ChatThread) ([]*types.ChatThread, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ChatThread, error)
	ListByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, limit int) ([]*types.ChatThread, error)
	TouchLastMessageAt(ctx context.Context, tx *gorm.DB, threadID uuid.UUID, at time.Time) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type threadRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewThreadRepo(db *gorm.DB, baseLog *logger.Logger) ThreadRepo {
	repoLog := baseLog.With("repo", "ChatThreadRepo")
	return &threadRepo{db: db, log: repoLog}
}

func (r *threadRepo) Create(ctx context.Context, tx *gorm.DB, threads []*types.ChatThread) ([]*types.ChatThread, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(threads) == 0 {
		return []*types.ChatThread{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *threadRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ChatThread, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ChatThread
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

func (r *threadRepo) ListByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, limit int) ([]*types.ChatThread, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 50
	}

	var results []*types.ChatThread
	if err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("last_message_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *threadRepo) TouchLastMessageAt(ctx context.Context, tx *gorm.DB, threadID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.ChatThread{}).
		Where("id = ?", threadID).
		Update("last_message_at", at).Error
}

func (r *threadRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.ChatThread{}).Error
}
