// Package v0 implements the baseline range-tag preflop policy and the
// v0.3 pot-odds postflop policy — the conservative fallback generation
// that predates the table-driven v1 policies.
package v0

import (
	"math"

	"github.com/lox/huengine/internal/combo"
	"github.com/lox/huengine/internal/observation"
	"github.com/lox/huengine/internal/policy"
	"github.com/lox/huengine/internal/rationale"
)

// Preflop implements the v0 baseline: bet/raise a fixed open size with
// a range-tag-eligible hand when first in, call cheap bets in range,
// fold or check otherwise.
func Preflop(obs observation.Observation, cfg observation.PolicyConfig) policy.Result {
	inRange := combo.OpenRangeEligible(obs.Tags)

	if obs.ToCall == 0 {
		if inRange {
			if betLike := observation.PickBetLike(obs.Acts); betLike != "" {
				code := rationale.PFOpenBet
				if betLike == "raise" {
					code = rationale.PFOpenRaise
				}
				return policy.Result{
					Action:    betLike,
					SizeTag:   "", // open size is a fixed BB multiple, not a pot-fraction tag
					Amount:    intPtr(int(math.Round(cfg.OpenSizeBB * obs.BB))),
					Rationale: []rationale.Item{rationale.Of(code)},
				}
			}
		}
		if _, ok := observation.Find(obs.Acts, "check"); ok {
			return policy.Result{Action: "check", Rationale: []rationale.Item{rationale.Of(rationale.PFCheckNotInRange)}}
		}
		return policy.Result{Action: "fold", Rationale: []rationale.Item{rationale.Of(rationale.PFFoldNoBet)}}
	}

	if inRange && float64(obs.ToCall) <= cfg.CallThresholdBB*obs.BB {
		if _, ok := observation.Find(obs.Acts, "call"); ok {
			return policy.Result{Action: "call", Rationale: []rationale.Item{rationale.Of(rationale.PFCallThreshold)}}
		}
	}
	if _, ok := observation.Find(obs.Acts, "fold"); ok {
		return policy.Result{Action: "fold", Rationale: []rationale.Item{rationale.Of(rationale.PFFoldExpensive)}}
	}
	return policy.Result{Action: "check", Rationale: []rationale.Item{rationale.Of(rationale.SafeCheck)}}
}

// Postflop implements the v0.3 pot-odds policy shared by flop, turn,
// and river when no table-driven policy applies.
func Postflop(obs observation.Observation, cfg observation.PolicyConfig) policy.Result {
	if obs.ToCall == 0 {
		return postflopNoBet(obs)
	}
	return postflopFacingBet(obs, cfg)
}

func postflopNoBet(obs observation.Observation) policy.Result {
	betLike := observation.PickBetLike(obs.Acts)
	if betLike == "" {
		return policy.Result{Action: "check", Rationale: []rationale.Item{rationale.Of(rationale.PLCheck)}}
	}

	if obs.Street == "flop" {
		act, _ := observation.Find(obs.Acts, betLike)
		amount := 1
		if act.Min != nil {
			amount = *act.Min
		}
		return policy.Result{Action: betLike, Amount: intPtr(amount), Rationale: []rationale.Item{rationale.Of(rationale.PLProbeBet)}}
	}

	// Turn/river: only continue betting with a pocket pair or Ax suited.
	if hasTag(obs.Tags, "pair") || hasTag(obs.Tags, "Ax_suited") {
		act, _ := observation.Find(obs.Acts, betLike)
		amount := 1
		if act.Min != nil {
			amount = *act.Min
		}
		return policy.Result{Action: betLike, Amount: intPtr(amount), Rationale: []rationale.Item{rationale.Of(rationale.PLProbeBet)}}
	}
	return policy.Result{Action: "check", Rationale: []rationale.Item{rationale.Of(rationale.PLCheck)}}
}

func postflopFacingBet(obs observation.Observation, cfg observation.PolicyConfig) policy.Result {
	_, hasCall := observation.Find(obs.Acts, "call")
	_, hasFold := observation.Find(obs.Acts, "fold")
	if !hasCall && !hasFold {
		if _, ok := observation.Find(obs.Acts, "allin"); ok {
			return policy.Result{Action: "allin", Rationale: []rationale.Item{rationale.Of(rationale.PLAllinOnly)}}
		}
		return policy.Result{Action: "check", Rationale: []rationale.Item{rationale.Of(rationale.PLCheck)}}
	}

	potOdds := float64(obs.ToCall) / float64(obs.Pot+obs.ToCall)
	threshold := cfg.PotOddsThreshold
	if combo.OpenRangeEligible(obs.Tags) {
		threshold = cfg.PotOddsThresholdCallRange
	}

	if potOdds <= threshold && hasCall {
		return policy.Result{Action: "call", Rationale: []rationale.Item{rationale.Of(rationale.PLCall)}}
	}
	if hasFold {
		return policy.Result{Action: "fold", Rationale: []rationale.Item{rationale.Of(rationale.PLFold)}}
	}
	return policy.Result{Action: "call", Rationale: []rationale.Item{rationale.Of(rationale.PLCall)}}
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func intPtr(v int) *int { return &v }
