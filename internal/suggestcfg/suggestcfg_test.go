package suggestcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/huengine/internal/observation"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != observation.DefaultPolicyConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesAppliedOnTopOfDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.hcl")
	contents := `
policy {
  open_size_bb = 3
  pot_odds_threshold = 0.3
}
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenSizeBB != 3 {
		t.Fatalf("expected open_size_bb=3, got %v", cfg.OpenSizeBB)
	}
	if cfg.PotOddsThreshold != 0.3 {
		t.Fatalf("expected pot_odds_threshold=0.3, got %v", cfg.PotOddsThreshold)
	}
	def := observation.DefaultPolicyConfig()
	if cfg.CallThresholdBB != def.CallThresholdBB {
		t.Fatalf("expected call_threshold_bb untouched at default, got %v", cfg.CallThresholdBB)
	}
}

func TestLoadInvalidOverrideFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.hcl")
	contents := `
policy {
  pot_odds_threshold = 1.5
}
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if cfg != observation.DefaultPolicyConfig() {
		t.Fatalf("expected defaults on invalid override, got %+v", cfg)
	}
}
