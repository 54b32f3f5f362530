package preflopv1

import (
	"testing"

	"github.com/lox/huengine/internal/observation"
	"github.com/lox/huengine/internal/tables"
)

func intp(v int) *int { return &v }

func defaultConfig() Config {
	return Config{
		Open:        tables.OpenTable{SB: []string{"AA", "AKs", "AKo"}, Version: 1},
		OpenVersion: 1,
		Vs: tables.VsTable{
			BBvsSB: map[string]tables.BucketRange{
				"small": {Call: []string{"QQ"}, Reraise: []string{"QQ", "KK", "AA"}},
			},
			SBvsBB3bet: map[string]tables.BucketRange{
				"small": {Call: []string{"AKs"}, Fourbet: []string{"AA", "KK"}},
			},
			Version: 1,
		},
		Modes: tables.DefaultModes(),
	}
}

func TestScenarioS1SBOpenRaisesInRangeHand(t *testing.T) {
	obs := observation.Observation{
		Actor: 0, Button: 0, Street: "preflop",
		BB: 2, Pot: 3, PotNow: 3, ToCall: 1,
		Combo: "AKs", PotType: "limped",
		Acts: []observation.LegalAction{
			{Action: "fold"},
			{Action: "call", ToCall: intp(1)},
			{Action: "raise", Min: intp(4), Max: intp(200)},
		},
	}
	fn := New(defaultConfig())
	result := fn(obs, observation.DefaultPolicyConfig())

	if result.Action != "raise" {
		t.Fatalf("expected raise, got %s", result.Action)
	}
	if result.Amount == nil || *result.Amount != 5 {
		t.Fatalf("expected amount 5, got %v", result.Amount)
	}
	if len(result.Rationale) != 1 || result.Rationale[0].Code != "PF_OPEN_RANGE_HIT" {
		t.Fatalf("expected PF_OPEN_RANGE_HIT, got %v", result.Rationale)
	}
	if result.Meta["open_bb"] != 2.5 {
		t.Fatalf("expected meta.open_bb=2.5, got %v", result.Meta["open_bb"])
	}
}

func TestScenarioS2BBFoldsOutOfRangeVsSmallOpen(t *testing.T) {
	obs := observation.Observation{
		Actor: 1, Button: 0, Street: "preflop",
		BB: 2, Pot: 1, PotNow: 5, ToCall: 4,
		Combo: "72o", PotType: "single_raised", IP: true,
		Acts: []observation.LegalAction{
			{Action: "fold"},
			{Action: "call", ToCall: intp(4)},
			{Action: "raise", Min: intp(8), Max: intp(200)},
		},
	}
	fn := New(defaultConfig())
	result := fn(obs, observation.DefaultPolicyConfig())

	if result.Action != "fold" {
		t.Fatalf("expected fold, got %s", result.Action)
	}
	if len(result.Rationale) != 1 || result.Rationale[0].Code != "PF_DEFEND_PRICE_BAD" {
		t.Fatalf("expected PF_DEFEND_PRICE_BAD, got %v", result.Rationale)
	}
	if result.Rationale[0].Data["reason"] != "out_of_range" {
		t.Fatalf("expected reason=out_of_range, got %v", result.Rationale[0].Data)
	}
}

func TestScenarioS3BBThreebetsPremiumPair(t *testing.T) {
	obs := observation.Observation{
		Actor: 1, Button: 0, Street: "preflop",
		BB: 2, Pot: 1, PotNow: 5, ToCall: 3,
		Combo: "QQ", PotType: "single_raised", IP: true, SPRBucket: "mid",
		Acts: []observation.LegalAction{
			{Action: "fold"},
			{Action: "call", ToCall: intp(3)},
			{Action: "raise", Min: intp(12), Max: intp(200)},
		},
	}
	fn := New(defaultConfig())
	result := fn(obs, observation.DefaultPolicyConfig())

	if result.Action != "raise" {
		t.Fatalf("expected raise, got %s", result.Action)
	}
	if result.Amount == nil || *result.Amount < 12 {
		t.Fatalf("expected amount >= raise.min(12), got %v", result.Amount)
	}
	found := false
	for _, r := range result.Rationale {
		if r.Code == "PF_DEFEND_3BET" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected PF_DEFEND_3BET in rationale, got %v", result.Rationale)
	}
}
