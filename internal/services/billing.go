package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	portal "github.com/stripe/stripe-go/v79/billingportal/session"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
	"github.com/stripe/stripe-go/v79/webhook"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/stembot/stembot-backend/internal/billing"
	billingrepo "github.com/stembot/stembot-backend/internal/data/repos/billing"
	userrepo "github.com/stembot/stembot-backend/internal/data/repos/user"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"github.com/stembot/stembot-backend/internal/utils"
)

// BillingSummary is the one-call view the account page renders: current plan,
// subscription state, and this month's usage.
type BillingSummary struct {
	Tier         string              `json:"tier"`
	Limits       billing.TierLimits  `json:"limits"`
	Subscription *types.Subscription `json:"subscription,omitempty"`
	Usage        *UsageSnapshot      `json:"usage"`
}

type BillingService interface {
	// CreateCheckoutSession starts a Stripe Checkout for upgrading to the
	// given paid tier and returns the hosted page URL.
	CreateCheckoutSession(ctx context.Context, userID uuid.UUID, tier string) (string, error)
	// CreatePortalSession returns a Stripe customer-portal URL for managing
	// an existing subscription.
	CreatePortalSession(ctx context.Context, userID uuid.UUID) (string, error)
	// HandleWebhook verifies and applies a Stripe event. Unhandled event
	// types are acknowledged and ignored.
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
	// Summary fans out the subscription and usage lookups concurrently.
	Summary(ctx context.Context, userID uuid.UUID, tier string) (*BillingSummary, error)
}

type billingService struct {
	db            *gorm.DB
	log           *logger.Logger
	users         userrepo.UserRepo
	subscriptions billingrepo.SubscriptionRepo
	usage         UsageService
	tiers         *billing.Tiers
	prices        *billing.PriceMap
	webhookSecret string
	frontendURL   string
}

func NewBillingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	users userrepo.UserRepo,
	subscriptions billingrepo.SubscriptionRepo,
	usage UsageService,
	tiers *billing.Tiers,
	prices *billing.PriceMap,
) BillingService {
	log := baseLog.With("service", "BillingService")
	stripe.Key = utils.GetEnv("STRIPE_SECRET_KEY", "", log)
	return &billingService{
		db:            db,
		log:           log,
		users:         users,
		subscriptions: subscriptions,
		usage:         usage,
		tiers:         tiers,
		prices:        prices,
		webhookSecret: utils.GetEnv("STRIPE_WEBHOOK_SECRET", "", log),
		frontendURL:   strings.TrimRight(utils.GetEnv("FRONTEND_URL", "http://localhost:3000", log), "/"),
	}
}

// ensureStripeCustomer finds or creates the Stripe customer for a user and
// stores its ID on the user row.
func (s *billingService) ensureStripeCustomer(ctx context.Context, userID uuid.UUID) (string, error) {
	users, err := s.users.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return "", NotFoundError("user not found")
	}
	user := users[0]

	if user.StripeCustomerID != "" {
		return user.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(strings.TrimSpace(user.FirstName + " " + user.LastName)),
		Metadata: map[string]string{
			"user_id": user.ID.String(),
		},
	}
	cust, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("create stripe customer: %w", err)
	}

	if err := s.users.SetStripeCustomerID(ctx, nil, user.ID, cust.ID); err != nil {
		return "", fmt.Errorf("store stripe customer id: %w", err)
	}
	return cust.ID, nil
}

func (s *billingService) CreateCheckoutSession(ctx context.Context, userID uuid.UUID, tier string) (string, error) {
	priceID, ok := s.prices.PriceForTier(tier)
	if !ok {
		return "", ValidationError(fmt.Sprintf("tier %q is not purchasable", tier))
	}

	customerID, err := s.ensureStripeCustomer(ctx, userID)
	if err != nil {
		return "", err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(customerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.frontendURL + "/billing/success"),
		CancelURL:  stripe.String(s.frontendURL + "/billing/cancel"),
	}
	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

func (s *billingService) CreatePortalSession(ctx context.Context, userID uuid.UUID) (string, error) {
	users, err := s.users.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return "", NotFoundError("user not found")
	}
	if users[0].StripeCustomerID == "" {
		return "", ValidationError("no billing account exists for this user yet")
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(users[0].StripeCustomerID),
		ReturnURL: stripe.String(s.frontendURL + "/settings/billing"),
	}
	sess, err := portal.New(params)
	if err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}
	return sess.URL, nil
}

func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if s.webhookSecret == "" {
		return fmt.Errorf("stripe webhook secret not configured")
	}

	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return errors.Join(ErrUnauthorized, fmt.Errorf("verify webhook signature: %w", err))
	}

	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("decode subscription event: %w", err)
		}
		return s.applySubscription(ctx, &sub)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("decode subscription event: %w", err)
		}
		return s.cancelSubscription(ctx, &sub)

	default:
		s.log.Debug("Ignoring stripe event", "type", string(event.Type))
		return nil
	}
}

// applySubscription mirrors a Stripe subscription into the local row and
// moves the user onto the tier the price maps to.
func (s *billingService) applySubscription(ctx context.Context, sub *stripe.Subscription) error {
	if sub.Customer == nil {
		return fmt.Errorf("subscription event missing customer")
	}
	user, err := s.users.GetByStripeCustomerID(ctx, nil, sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("find user for stripe customer %s: %w", sub.Customer.ID, err)
	}

	priceID := ""
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		priceID = sub.Items.Data[0].Price.ID
	}
	tier, ok := s.prices.TierForPrice(priceID)
	if !ok {
		s.log.Warn("Stripe price has no tier mapping", "price_id", priceID, "subscription_id", sub.ID)
		return nil
	}

	status := types.SubscriptionStatusActive
	switch sub.Status {
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		status = types.SubscriptionStatusPastDue
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		status = types.SubscriptionStatusCanceled
	}

	// Only an active subscription grants the paid tier.
	userTier := billing.TierFree
	if status == types.SubscriptionStatusActive {
		userTier = tier
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, uErr := s.subscriptions.Upsert(ctx, tx, &types.Subscription{
			UserID:               user.ID,
			Tier:                 tier,
			Status:               status,
			StripeSubscriptionID: sub.ID,
			StripePriceID:        priceID,
			CurrentPeriodEnd:     time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
			CancelAtPeriodEnd:    sub.CancelAtPeriodEnd,
		})
		if uErr != nil {
			return fmt.Errorf("upsert subscription: %w", uErr)
		}
		if tErr := s.users.UpdateTier(ctx, tx, user.ID, userTier); tErr != nil {
			return fmt.Errorf("update user tier: %w", tErr)
		}
		s.log.Info("Applied subscription event",
			"user_id", user.ID,
			"tier", userTier,
			"status", status,
		)
		return nil
	})
}

// cancelSubscription downgrades the user to free when Stripe deletes the
// subscription.
func (s *billingService) cancelSubscription(ctx context.Context, sub *stripe.Subscription) error {
	if sub.Customer == nil {
		return fmt.Errorf("subscription event missing customer")
	}
	user, err := s.users.GetByStripeCustomerID(ctx, nil, sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("find user for stripe customer %s: %w", sub.Customer.ID, err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := s.subscriptions.GetByUserID(ctx, tx, user.ID)
		if gErr != nil && !errors.Is(gErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load subscription: %w", gErr)
		}
		if existing != nil {
			existing.Status = types.SubscriptionStatusCanceled
			if _, uErr := s.subscriptions.Upsert(ctx, tx, existing); uErr != nil {
				return fmt.Errorf("mark subscription canceled: %w", uErr)
			}
		}
		if tErr := s.users.UpdateTier(ctx, tx, user.ID, billing.TierFree); tErr != nil {
			return fmt.Errorf("downgrade user tier: %w", tErr)
		}
		s.log.Info("Canceled subscription", "user_id", user.ID)
		return nil
	})
}

func (s *billingService) Summary(ctx context.Context, userID uuid.UUID, tier string) (*BillingSummary, error) {
	summary := &BillingSummary{
		Tier:   tier,
		Limits: s.tiers.Limits(tier),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sub, err := s.subscriptions.GetByUserID(gctx, nil, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // free tier has no subscription row
		}
		if err != nil {
			return fmt.Errorf("load subscription: %w", err)
		}
		summary.Subscription = sub
		return nil
	})

	g.Go(func() error {
		snap, err := s.usage.Snapshot(gctx, userID, tier)
		if err != nil {
			return fmt.Errorf("load usage snapshot: %w", err)
		}
		summary.Usage = snap
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
