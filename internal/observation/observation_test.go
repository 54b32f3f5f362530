package observation

import (
	"testing"

	"github.com/lox/huengine/poker"
)

func intp(v int) *int { return &v }

func TestBuildPreflopOpenRaiseObservation(t *testing.T) {
	gs := GameState{
		HandID: "hand-1",
		Street: "preflop",
		BB:     2,
		Pot:    3,
		Button: 0,
		Players: [2]Player{
			{Hole: []poker.Card{poker.MustParseCard("As"), poker.MustParseCard("Ks")}, Stack: 200},
			{Hole: []poker.Card{poker.MustParseCard("2c"), poker.MustParseCard("7d")}, Stack: 200},
		},
	}
	acts := []LegalAction{
		{Action: "fold"},
		{Action: "call", ToCall: intp(1)},
		{Action: "raise", Min: intp(4), Max: intp(200)},
	}

	obs, warnings := Build(gs, 0, acts)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if obs.Combo != "AKs" {
		t.Fatalf("expected combo AKs, got %q", obs.Combo)
	}
	if obs.ToCall != 1 {
		t.Fatalf("expected to_call=1, got %d", obs.ToCall)
	}
	if obs.PotType != "limped" {
		t.Fatalf("expected pot_type limped with no events, got %q", obs.PotType)
	}
}

func TestBuildFlopHandClass(t *testing.T) {
	gs := GameState{
		HandID: "hand-2",
		Street: "flop",
		BB:     2,
		Pot:    6,
		Button: 0,
		Board: []poker.Card{
			poker.MustParseCard("Kc"), poker.MustParseCard("7d"), poker.MustParseCard("2h"),
		},
		Players: [2]Player{
			{Hole: []poker.Card{poker.MustParseCard("Ah"), poker.MustParseCard("Ad")}, Stack: 190},
			{Hole: []poker.Card{poker.MustParseCard("9c"), poker.MustParseCard("9d")}, Stack: 190},
		},
		Events: []Event{
			{Street: "preflop", Actor: 0, Action: "raise"},
		},
	}
	acts := []LegalAction{{Action: "check"}, {Action: "bet", Min: intp(1), Max: intp(190)}}

	obs, _ := Build(gs, 0, acts)
	if obs.Role != "pfr" {
		t.Fatalf("expected role pfr, got %q", obs.Role)
	}
	if obs.BoardTexture != "dry" {
		t.Fatalf("expected dry board, got %q", obs.BoardTexture)
	}
	if obs.HandClass != "overpair_or_top_pair_strong_kicker" {
		t.Fatalf("expected overpair class, got %q", obs.HandClass)
	}
	if !obs.RangeAdv {
		t.Fatal("expected range advantage for PFR on dry board")
	}
}

func TestBuildMissingHoleCardsDegradesGracefully(t *testing.T) {
	gs := GameState{
		HandID:  "hand-3",
		Street:  "preflop",
		BB:      2,
		Pot:     3,
		Players: [2]Player{{Stack: 200}, {Stack: 200}},
	}
	obs, warnings := Build(gs, 0, []LegalAction{{Action: "check"}})
	if obs.HandClass != "unknown" {
		t.Fatalf("expected unknown hand_class, got %q", obs.HandClass)
	}
	if len(warnings) != 1 || warnings[0].Code != "W_ANALYSIS" {
		t.Fatalf("expected a single W_ANALYSIS warning, got %v", warnings)
	}
}

func TestPickBetLikePrefersBetOverRaise(t *testing.T) {
	acts := []LegalAction{{Action: "raise"}, {Action: "bet"}}
	if got := PickBetLike(acts); got != "bet" {
		t.Fatalf("expected bet preferred, got %q", got)
	}
	if got := PickBetLike([]LegalAction{{Action: "raise"}}); got != "raise" {
		t.Fatalf("expected raise when no bet, got %q", got)
	}
	if got := PickBetLike([]LegalAction{{Action: "fold"}}); got != "" {
		t.Fatalf("expected empty string when no bet-like action, got %q", got)
	}
}
