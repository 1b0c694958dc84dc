package billing

import (
	"context"

	"github.com/google/uuid"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, sub *types.Subscription) (*types.Subscription, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Subscription, error)
	GetByStripeSubscriptionID(ctx context.Context, tx *gorm.DB, stripeSubID string) (*types.Subscription, error)
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	repoLog := baseLog.With("repo", "SubscriptionRepo")
	return &subscriptionRepo{db: db, log: repoLog}
}

func (r *subscriptionRepo) Upsert(ctx context.Context, tx *gorm.DB, sub *types.Subscription) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"tier", "status", "stripe_subscription_id", "stripe_price_id",
				"current_period_end", "cancel_at_period_end", "updated_at",
			}),
		}).
		Create(sub).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, transaction, sub.UserID)
}

func (r *subscriptionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Subscription
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *subscriptionRepo) GetByStripeSubscriptionID(ctx context.Context, tx *gorm.DB, stripeSubID string) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Subscription
	err := transaction.WithContext(ctx).
		Where("stripe_subscription_id = ?", stripeSubID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}
