package billing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTiersDefaults(t *testing.T) {
	tiers, err := LoadTiers("")
	if err != nil {
		t.Fatalf("LoadTiers: %v", err)
	}

	free := tiers.Limits(TierFree)
	if free.AIInteractions == nil || *free.AIInteractions != 50 {
		t.Fatalf("free tier AI limit = %v, want 50", free.AIInteractions)
	}
	if free.Projects == nil || *free.Projects != 1 {
		t.Fatalf("free tier project limit = %v, want 1", free.Projects)
	}

	researcher := tiers.Limits(TierResearcher)
	if researcher.AIInteractions != nil {
		t.Fatalf("researcher tier should have unlimited AI interactions")
	}
	if researcher.Projects != nil {
		t.Fatalf("researcher tier should have unlimited projects")
	}
}

func TestLoadTiersUnknownFallsBackToFree(t *testing.T) {
	tiers, err := LoadTiers("")
	if err != nil {
		t.Fatalf("LoadTiers: %v", err)
	}
	limits := tiers.Limits("enterprise_mega")
	if limits.AIInteractions == nil || *limits.AIInteractions != 50 {
		t.Fatalf("unknown tier must fall back to free limits, got %+v", limits)
	}
	if tiers.Known("enterprise_mega") {
		t.Fatalf("Known should be false for unknown tier")
	}
}

func TestLoadTiersYAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	contents := []byte(`
student_pro:
  ai_interactions: 1000
  projects: 20
  price_eur: 12.5
  features: [ai_mentoring]
`)
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("write tmp file: %v", err)
	}

	tiers, err := LoadTiers(path)
	if err != nil {
		t.Fatalf("LoadTiers: %v", err)
	}
	pro := tiers.Limits(TierStudentPro)
	if pro.AIInteractions == nil || *pro.AIInteractions != 1000 {
		t.Fatalf("override AI limit = %v, want 1000", pro.AIInteractions)
	}
	if pro.PriceEUR != 12.5 {
		t.Fatalf("override price = %v, want 12.5", pro.PriceEUR)
	}

	// Tiers not present in the file keep their defaults.
	free := tiers.Limits(TierFree)
	if free.AIInteractions == nil || *free.AIInteractions != 50 {
		t.Fatalf("free tier should keep defaults, got %+v", free)
	}
}
