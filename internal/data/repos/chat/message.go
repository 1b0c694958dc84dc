package chat

import (
	"context"

	"github.com/google/uuid"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type MessageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, messages []*types.ChatMessage) ([]*types.ChatMessage, error)
	ListByThreadID(ctx context.Context, tx *gorm.DB, threadID uuid.UUID, limit int, beforeSeq *int64) ([]*types.ChatMessage, error)
	// NextSeq reserves the next sequence number in a thread. Callers must hold
	// a transaction so concurrent sends cannot collide.
	NextSeq(ctx context.Context, tx *gorm.DB, threadID uuid.UUID) (int64, error)
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	repoLog := baseLog.With("repo", "ChatMessageRepo")
	return &messageRepo{db: db, log: repoLog}
}

func (r *messageRepo) Create(ctx context.Context, tx *gorm.DB, messages []*types.ChatMessage) ([]*types.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(messages) == 0 {
		return []*types.ChatMessage{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepo) ListByThreadID(ctx context.Context, tx *gorm.DB, threadID uuid.UUID, limit int, beforeSeq *int64) ([]*types.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 100
	}

	q := transaction.WithContext(ctx).
		Where("thread_id = ?", threadID)
	if beforeSeq != nil {
		q = q.Where("seq < ?", *beforeSeq)
	}

	var results []*types.ChatMessage
	if err := q.Order("seq ASC").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *messageRepo) NextSeq(ctx context.Context, tx *gorm.DB, threadID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var maxSeq *int64
	err := transaction.WithContext(ctx).
		Model(&types.ChatMessage{}).
		Where("thread_id = ?", threadID).
		Select("MAX(seq)").
		Scan(&maxSeq).Error
	if err != nil {
		return 0, err
	}
	if maxSeq == nil {
		return 1, nil
	}
	return *maxSeq + 1, nil
}
