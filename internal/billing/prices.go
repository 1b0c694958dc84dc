package billing

import (
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"github.com/stembot/stembot-backend/internal/utils"
)

// PriceMap maps Stripe price IDs to internal tier names and back. Populated
// from the environment at boot; the free tier has no price.
type PriceMap struct {
	byPrice map[string]string
	byTier  map[string]string
}

func NewPriceMapFromEnv(log *logger.Logger) *PriceMap {
	pm := &PriceMap{
		byPrice: map[string]string{},
		byTier:  map[string]string{},
	}
	pm.register(TierStudentPro, utils.GetEnv("STRIPE_PRICE_STUDENT_PRO", "", log))
	pm.register(TierResearcher, utils.GetEnv("STRIPE_PRICE_RESEARCHER", "", log))
	return pm
}

func (pm *PriceMap) register(tier, priceID string) {
	if priceID == "" {
		return
	}
	pm.byPrice[priceID] = tier
	pm.byTier[tier] = priceID
}

func (pm *PriceMap) TierForPrice(priceID string) (string, bool) {
	tier, ok := pm.byPrice[priceID]
	return tier, ok
}

func (pm *PriceMap) PriceForTier(tier string) (string, bool) {
	priceID, ok := pm.byTier[tier]
	return priceID, ok
}
