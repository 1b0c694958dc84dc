package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageCounterRepo interface {
	// GetForMonth returns the counter row for the user and period, or a zero
	// counter when no row exists yet.
	GetForMonth(ctx context.Context, tx *gorm.DB, userID uuid.UUID, month string) (*types.UsageCounter, error)
	// IncrementAIInteractions atomically bumps the AI counter for the period,
	// creating the row on first use. Counters only ever go up within a period.
	IncrementAIInteractions(ctx context.Context, tx *gorm.DB, userID uuid.UUID, month string) error
}

type usageCounterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUsageCounterRepo(db *gorm.DB, baseLog *logger.Logger) UsageCounterRepo {
	repoLog := baseLog.With("repo", "UsageCounterRepo")
	return &usageCounterRepo{db: db, log: repoLog}
}

func (r *usageCounterRepo) GetForMonth(ctx context.Context, tx *gorm.DB, userID uuid.UUID, month string) (*types.UsageCounter, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UsageCounter
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &types.UsageCounter{UserID: userID, Month: month}, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *usageCounterRepo) IncrementAIInteractions(ctx context.Context, tx *gorm.DB, userID uuid.UUID, month string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	counter := types.UsageCounter{
		ID:                  uuid.New(),
		UserID:              userID,
		Month:               month,
		AIInteractionsCount: 1,
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "month"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"ai_interactions_count": gorm.Expr("usage_counter.ai_interactions_count + 1"),
				"updated_at":            gorm.Expr("now()"),
			}),
		}).
		Create(&counter).Error
}
