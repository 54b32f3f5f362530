// Package suggestcfg loads an optional HCL override of the Suggest
// Service's tunable thresholds, falling back to the documented
// defaults when no override file is present.
package suggestcfg

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/huengine/internal/observation"
)

// Overrides is the HCL-decoded shape of an override file. Every field
// is optional; zero means "use the default".
type Overrides struct {
	Policy PolicyBlock `hcl:"policy,block"`
}

// PolicyBlock mirrors observation.PolicyConfig field for field.
type PolicyBlock struct {
	OpenSizeBB                float64 `hcl:"open_size_bb,optional"`
	CallThresholdBB           float64 `hcl:"call_threshold_bb,optional"`
	PotOddsThreshold          float64 `hcl:"pot_odds_threshold,optional"`
	PotOddsThresholdCallRange float64 `hcl:"pot_odds_threshold_call_range,optional"`
}

// Load reads an HCL override file and applies it on top of
// observation.DefaultPolicyConfig(). A missing file is not an error —
// it yields the defaults unchanged, matching the table loader's own
// missing-is-fallback behaviour.
func Load(filename string) (observation.PolicyConfig, error) {
	cfg := observation.DefaultPolicyConfig()

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("suggestcfg: parse %s: %s", filename, diags.Error())
	}

	var overrides Overrides
	if diags := gohcl.DecodeBody(file.Body, nil, &overrides); diags.HasErrors() {
		return cfg, fmt.Errorf("suggestcfg: decode %s: %s", filename, diags.Error())
	}

	if overrides.Policy.OpenSizeBB != 0 {
		cfg.OpenSizeBB = overrides.Policy.OpenSizeBB
	}
	if overrides.Policy.CallThresholdBB != 0 {
		cfg.CallThresholdBB = overrides.Policy.CallThresholdBB
	}
	if overrides.Policy.PotOddsThreshold != 0 {
		cfg.PotOddsThreshold = overrides.Policy.PotOddsThreshold
	}
	if overrides.Policy.PotOddsThresholdCallRange != 0 {
		cfg.PotOddsThresholdCallRange = overrides.Policy.PotOddsThresholdCallRange
	}

	if err := Validate(cfg); err != nil {
		return observation.DefaultPolicyConfig(), fmt.Errorf("suggestcfg: %s: %w", filename, err)
	}

	return cfg, nil
}

// Validate rejects a PolicyConfig with out-of-range thresholds, the
// way the teacher's ServerConfig.Validate rejects a malformed table.
func Validate(cfg observation.PolicyConfig) error {
	if cfg.OpenSizeBB <= 0 {
		return fmt.Errorf("open_size_bb must be positive, got %v", cfg.OpenSizeBB)
	}
	if cfg.CallThresholdBB <= 0 {
		return fmt.Errorf("call_threshold_bb must be positive, got %v", cfg.CallThresholdBB)
	}
	if cfg.PotOddsThreshold <= 0 || cfg.PotOddsThreshold >= 1 {
		return fmt.Errorf("pot_odds_threshold must be in (0,1), got %v", cfg.PotOddsThreshold)
	}
	if cfg.PotOddsThresholdCallRange <= 0 || cfg.PotOddsThresholdCallRange >= 1 {
		return fmt.Errorf("pot_odds_threshold_call_range must be in (0,1), got %v", cfg.PotOddsThresholdCallRange)
	}
	return nil
}
