// Package observation builds the frozen, policy-facing view of a hand:
// the raw game state plus the acting seat, reduced to the tags,
// textures, and buckets every policy dispatches on. The builder never
// fails outright — an analysis failure degrades to a conservative
// "unknown" classification plus a warning rationale item instead.
package observation

import (
	"github.com/lox/huengine/internal/combo"
	"github.com/lox/huengine/internal/rationale"
	"github.com/lox/huengine/poker"
)

// LegalAction is an immutable descriptor of one action the hand engine
// currently offers. Min/Max are present for bet/raise/allin; ToCall is
// present for call.
type LegalAction struct {
	Action string `json:"action"`
	Min    *int   `json:"min,omitempty"`
	Max    *int   `json:"max,omitempty"`
	ToCall *int   `json:"to_call,omitempty"`
}

// Player is one seat's externally-observed state.
type Player struct {
	Hole           []poker.Card
	Stack          int
	InvestedStreet int
}

// Event is one entry of the hand's action history, used to infer the
// preflop aggressor and the pot type.
type Event struct {
	Street string
	Actor  int
	Action string
}

// GameState is the read-only surface the Suggest Service consumes from
// the (externally owned) hand engine: enough to build an Observation,
// nothing about how hands are dealt or settled.
type GameState struct {
	HandID  string
	Street  string
	BB      float64
	Pot     int
	Board   []poker.Card
	Button  int
	Players [2]Player
	Events  []Event
	LastBet int
}

// PolicyConfig holds the tunable thresholds every policy reads.
type PolicyConfig struct {
	OpenSizeBB               float64
	CallThresholdBB          float64
	PotOddsThreshold         float64
	PotOddsThresholdCallRange float64
}

// DefaultPolicyConfig returns the spec's documented defaults.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		OpenSizeBB:                2.5,
		CallThresholdBB:           3,
		PotOddsThreshold:          0.33,
		PotOddsThresholdCallRange: 0.40,
	}
}

// Observation is the frozen input every policy reads. Build it once
// per decision and pass it by value or pointer; nothing mutates it.
type Observation struct {
	HandID string
	Actor  int

	Street string
	BB     float64
	Pot    int
	PotNow int
	ToCall int

	TableMode string
	IP        bool
	Button    int

	Acts []LegalAction

	Tags      []string
	HandClass string
	Combo     string

	BoardTexture string
	SPRBucket    string

	PotType       string
	Role          string
	RangeAdv      bool
	NutAdv        bool
	FacingSizeTag string
}

// Build derives an Observation from a game state snapshot, the acting
// seat, and the legal actions the hand engine currently offers. It is
// pure and total: analysis failures degrade to a conservative
// classification instead of propagating an error, and any such
// degradation is reported through the returned warnings.
func Build(gs GameState, actor int, acts []LegalAction) (Observation, []rationale.Item) {
	var warnings []rationale.Item
	opponent := 1 - actor

	obs := Observation{
		HandID:    gs.HandID,
		Actor:     actor,
		Street:    gs.Street,
		BB:        gs.BB,
		Pot:       gs.Pot,
		TableMode: "HU",
		Button:    gs.Button,
		Acts:      acts,
	}

	hole := gs.Players[actor].Hole
	if len(hole) == 2 {
		obs.Tags = combo.Tags(hole[0], hole[1])
		obs.HandClass = string(poker.CategorizeHoleCards(hole[0], hole[1]))
		obs.Combo = combo.FromHole(hole[0], hole[1])
		if obs.HandClass == string(poker.CategoryUnknown) {
			warnings = append(warnings, rationale.Of(rationale.WarnAnalysis))
		}
	} else {
		obs.Tags = []string{"unknown"}
		obs.HandClass = "unknown"
		obs.Combo = ""
		warnings = append(warnings, rationale.Of(rationale.WarnAnalysis))
	}

	obs.PotNow = gs.Pot + gs.Players[0].InvestedStreet + gs.Players[1].InvestedStreet
	obs.ToCall = currentToCall(acts)

	minStack := gs.Players[actor].Stack
	if gs.Players[opponent].Stack < minStack {
		minStack = gs.Players[opponent].Stack
	}
	spr := 0.0
	if obs.PotNow > 0 {
		spr = float64(minStack) / float64(obs.PotNow)
	}
	obs.SPRBucket = combo.SPRBucket(spr)

	boardHand := poker.NewHand(gs.Board...)
	if gs.Street == "flop" {
		obs.BoardTexture = combo.ClassifyFlop(boardHand)
	} else {
		obs.BoardTexture = "na"
	}

	pfrSeat, raiseCount := inferPreflopAggression(gs.Events)
	if pfrSeat == actor {
		obs.Role = "pfr"
	} else if pfrSeat >= 0 {
		obs.Role = "caller"
	} else {
		obs.Role = "na"
	}

	broadwayHeavy := combo.BroadwayHeavy(boardHand)
	obs.RangeAdv = combo.RangeAdvantage(obs.BoardTexture, obs.Role)
	obs.NutAdv = combo.NutAdvantage(obs.BoardTexture, obs.Role, broadwayHeavy)

	obs.FacingSizeTag = combo.DeriveFacingSizeTag(obs.ToCall, obs.PotNow)

	switch {
	case raiseCount <= 0:
		obs.PotType = "limped"
	case raiseCount == 1:
		obs.PotType = "single_raised"
	default:
		obs.PotType = "threebet"
	}

	if gs.Street == "flop" && len(hole) == 2 {
		obs.HandClass = combo.HandClassFlop(poker.NewHand(hole...), boardHand)
	}

	obs.IP = combo.IsIP(actor, gs.Button, gs.Street)

	return obs, warnings
}

// currentToCall extracts the to_call amount from the legal action set,
// 0 when no call is on offer (checked around or first to act).
func currentToCall(acts []LegalAction) int {
	for _, a := range acts {
		if a.Action == "call" && a.ToCall != nil {
			return *a.ToCall
		}
	}
	return 0
}

// inferPreflopAggression walks the event log for the most recent
// preflop raise, returning its actor (-1 if none) and the number of
// preflop raises seen (0 = limped, 1 = single raised, 2+ = threebet+).
func inferPreflopAggression(events []Event) (pfrSeat int, raiseCount int) {
	pfrSeat = -1
	for _, e := range events {
		if e.Street != "preflop" {
			continue
		}
		switch e.Action {
		case "bet", "raise", "allin":
			pfrSeat = e.Actor
			raiseCount++
		}
	}
	return pfrSeat, raiseCount
}

// PickBetLike returns the first bet-like action (bet preferred over
// raise) present in acts, or "" if neither is legal.
func PickBetLike(acts []LegalAction) string {
	hasRaise := false
	for _, a := range acts {
		switch a.Action {
		case "bet":
			return "bet"
		case "raise":
			hasRaise = true
		}
	}
	if hasRaise {
		return "raise"
	}
	return ""
}

// Find returns the legal action with the given name, and whether it
// was present.
func Find(acts []LegalAction, action string) (LegalAction, bool) {
	for _, a := range acts {
		if a.Action == action {
			return a, true
		}
	}
	return LegalAction{}, false
}
