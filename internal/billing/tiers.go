// Package billing holds the static subscription-tier configuration and the
// Stripe price mapping. Limits are immutable at runtime; a nil limit means
// unlimited.
package billing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	TierFree       = "free"
	TierStudentPro = "student_pro"
	TierResearcher = "researcher"
)

// TierLimits describes what a subscription tier is allowed to do per billing
// month. Nil pointers mean unlimited.
type TierLimits struct {
	AIInteractions *int     `yaml:"ai_interactions" json:"ai_interactions"`
	Projects       *int     `yaml:"projects" json:"projects"`
	PriceEUR       float64  `yaml:"price_eur" json:"price_eur"`
	Features       []string `yaml:"features" json:"features"`
}

func intPtr(v int) *int { return &v }

var defaultTiers = map[string]TierLimits{
	TierFree: {
		AIInteractions: intPtr(50),
		Projects:       intPtr(1),
		PriceEUR:       0,
		Features:       []string{"ai_mentoring", "methodology_checker"},
	},
	TierStudentPro: {
		AIInteractions: intPtr(500),
		Projects:       intPtr(10),
		PriceEUR:       10,
		Features:       []string{"ai_mentoring", "methodology_checker", "literature_tracking", "paper_outline"},
	},
	TierResearcher: {
		AIInteractions: nil,
		Projects:       nil,
		PriceEUR:       25,
		Features:       []string{"ai_mentoring", "methodology_checker", "literature_tracking", "paper_outline", "priority_support"},
	},
}

// Tiers is an immutable-at-runtime view over the tier table.
type Tiers struct {
	byName map[string]TierLimits
}

// LoadTiers returns the compiled-in defaults, optionally overridden by a YAML
// file (path from TIER_LIMITS_FILE or the path argument). Unknown tiers in the
// file are added; known tiers are replaced wholesale.
func LoadTiers(path string) (*Tiers, error) {
	tiers := make(map[string]TierLimits, len(defaultTiers))
	for name, limits := range defaultTiers {
		tiers[name] = limits
	}

	if path == "" {
		path = os.Getenv("TIER_LIMITS_FILE")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read tier limits file: %w", err)
		}
		var overrides map[string]TierLimits
		if err := yaml.Unmarshal(raw, &overrides); err != nil {
			return nil, fmt.Errorf("parse tier limits file: %w", err)
		}
		for name, limits := range overrides {
			tiers[name] = limits
		}
	}

	return &Tiers{byName: tiers}, nil
}

// Limits returns the limits for a tier name, falling back to the free tier
// for unknown names so a bad tier string never grants unlimited access.
func (t *Tiers) Limits(tier string) TierLimits {
	if limits, ok := t.byName[tier]; ok {
		return limits
	}
	return t.byName[TierFree]
}

// Known reports whether the tier name exists in the table.
func (t *Tiers) Known(tier string) bool {
	_, ok := t.byName[tier]
	return ok
}
