// Package preflopv1 implements the table-driven preflop policy: SB
// raise-first-in, BB defense against an SB open (bucketed by size),
// and an optional SB 4-bet response to a BB 3-bet.
package preflopv1

import (
	"math"

	"github.com/lox/huengine/internal/combo"
	"github.com/lox/huengine/internal/observation"
	"github.com/lox/huengine/internal/policy"
	"github.com/lox/huengine/internal/rationale"
	"github.com/lox/huengine/internal/tables"
)

// Config bundles the loaded tables and runtime flags the preflop v1
// policy needs beyond the Observation itself.
type Config struct {
	Open        tables.OpenTable
	OpenVersion int
	Vs          tables.VsTable
	VsVersion   int
	Modes       tables.ModesHU
	Enable4Bet  bool
}

// New builds a policy.Func closed over the loaded tables.
func New(tc Config) policy.Func {
	return func(obs observation.Observation, cfg observation.PolicyConfig) policy.Result {
		return decide(obs, cfg, tc)
	}
}

func decide(obs observation.Observation, cfg observation.PolicyConfig, tc Config) policy.Result {
	isSB := obs.Actor == obs.Button
	effStackBB := effectiveStackBB(obs)

	// A threebet pot with SB back to act means BB re-raised SB's open:
	// this is the 4-bet decision point, never the RFI one.
	if isSB && obs.ToCall > 0 && obs.PotType == "threebet" {
		if tc.Enable4Bet {
			if result, ok := fourBetPath(obs, tc, effStackBB); ok {
				return result
			}
		}
		return fallbackCallFoldCheck(obs)
	}

	if isSB {
		return sbOpen(obs, cfg, tc)
	}

	return bbDefend(obs, tc, effStackBB)
}

func fallbackCallFoldCheck(obs observation.Observation) policy.Result {
	if _, ok := observation.Find(obs.Acts, "call"); ok {
		return policy.Result{Action: "call", Rationale: []rationale.Item{rationale.Of(rationale.PFDefendPriceOK)}}
	}
	if _, ok := observation.Find(obs.Acts, "fold"); ok {
		return policy.Result{Action: "fold", Rationale: []rationale.Item{rationale.Of(rationale.PFDefendPriceBad)}}
	}
	return policy.Result{Action: "check", Rationale: []rationale.Item{rationale.Of(rationale.SafeCheck)}}
}

func effectiveStackBB(obs observation.Observation) float64 {
	switch obs.SPRBucket {
	case "low":
		return 10
	case "high":
		return 40
	default:
		return 20
	}
}

func fourBetPath(obs observation.Observation, tc Config, effStackBB float64) (policy.Result, bool) {
	if tc.OpenVersion == tables.BadVersion || tc.VsVersion == tables.BadVersion {
		return policy.Result{}, false
	}

	iOpp := float64(obs.PotNow+obs.ToCall) / 2
	threebetToBB := iOpp / obs.BB
	bucket := combo.BucketFacingSize(threebetToBB, tc.Modes.ThreebetBucketSmallLE, tc.Modes.ThreebetBucketMidLE)

	node, ok := tc.Vs.SBvsBB3bet[bucket]
	if !ok {
		return policy.Result{}, false
	}

	if containsCombo(node.FourbetCombos(), obs.Combo) {
		if act, ok := observation.Find(obs.Acts, "raise"); ok {
			capBB4b := math.Floor(effStackBB * tc.Modes.CapRatio4B)
			targetBB := math.Min(capBB4b, math.Round(threebetToBB*tc.Modes.FourbetIPMult))
			amount := int(math.Round(targetBB * obs.BB))

			items := []rationale.Item{}
			if act.Min != nil && amount < *act.Min {
				amount = *act.Min
				items = append(items, rationale.Of(rationale.PFAttack4BetMinRaiseAdjusted))
			}
			items = append(items, rationale.Of(rationale.PFAttack4Bet))

			return policy.Result{
				Action:    "raise",
				Amount:    intPtr(amount),
				Rationale: items,
				Meta: map[string]any{
					"fourbet_to_bb": targetBB,
					"bucket":        bucket,
					"combo":         obs.Combo,
					"cap_bb":        capBB4b,
				},
			}, true
		}
	}

	if containsCombo(node.Call, obs.Combo) {
		if _, ok := observation.Find(obs.Acts, "call"); ok {
			return policy.Result{
				Action:    "call",
				Rationale: []rationale.Item{rationale.Of(rationale.PFDefendPriceOK)},
				Meta:      map[string]any{"bucket": bucket, "combo": obs.Combo},
			}, true
		}
	}

	return policy.Result{}, false
}

func sbOpen(obs observation.Observation, cfg observation.PolicyConfig, tc Config) policy.Result {
	if tc.OpenVersion == tables.BadVersion || len(tc.Open.SB) == 0 {
		return fallbackLimpCheckFold(obs, true)
	}

	inOpenRange := containsCombo(tc.Open.SB, obs.Combo)
	if inOpenRange {
		if betLike := observation.PickBetLike(obs.Acts); betLike != "" {
			amount := int(math.Round(tc.Modes.OpenBB * obs.BB))
			return policy.Result{
				Action:    betLike,
				Amount:    intPtr(amount),
				Rationale: []rationale.Item{rationale.Of(rationale.PFOpenRangeHit)},
				Meta:      map[string]any{"open_bb": tc.Modes.OpenBB, "combo": obs.Combo},
			}
		}
		result := fallbackLimpCheckFold(obs, false)
		result.Rationale = append([]rationale.Item{rationale.Of(rationale.PFNoLegalRaise)}, result.Rationale...)
		return result
	}

	return fallbackLimpCheckFold(obs, false)
}

func fallbackLimpCheckFold(obs observation.Observation, configFallback bool) policy.Result {
	var prefix []rationale.Item
	if configFallback {
		prefix = append(prefix, rationale.Of(rationale.CFGFallbackUsed))
	}

	if act, ok := observation.Find(obs.Acts, "call"); ok {
		toCall := 0
		if act.ToCall != nil {
			toCall = *act.ToCall
		}
		if float64(toCall) <= obs.BB {
			return policy.Result{
				Action:    "call",
				Rationale: append(prefix, rationale.Of(rationale.PFLimpCompleteBlind)),
			}
		}
	}
	if _, ok := observation.Find(obs.Acts, "check"); ok {
		return policy.Result{Action: "check", Rationale: append(prefix, rationale.Of(rationale.PFCheckNotInRange))}
	}
	return policy.Result{Action: "fold", Rationale: append(prefix, rationale.Of(rationale.PFFoldNoBet))}
}

func bbDefend(obs observation.Observation, tc Config, effStackBB float64) policy.Result {
	bucket := combo.BucketFacingSize(float64(obs.ToCall)/obs.BB, tc.Modes.ThreebetBucketSmallLE, tc.Modes.ThreebetBucketMidLE)

	if tc.VsVersion == tables.BadVersion {
		return fallbackFoldOrCheck(obs, []rationale.Item{rationale.Of(rationale.CFGFallbackUsed)})
	}

	node, ok := tc.Vs.BBvsSB[bucket]
	if !ok {
		return fallbackFoldOrCheck(obs, []rationale.Item{rationale.Of(rationale.CFGFallbackUsed)})
	}

	if containsCombo(node.Reraise, obs.Combo) {
		if act, ok := observation.Find(obs.Acts, "raise"); ok {
			openToBB := float64(obs.ToCall)/obs.BB + 1
			mult := tc.Modes.ReraiseOOPMult
			offset := tc.Modes.ReraiseOOPOffset
			if obs.IP {
				mult = tc.Modes.ReraiseIPMult
				offset = 0
			}
			targetBB := math.Round(openToBB*mult + offset)
			capBB := math.Floor(effStackBB * tc.Modes.CapRatio)
			reraiseToBB := math.Min(capBB, targetBB)
			amount := int(math.Round(reraiseToBB * obs.BB))

			items := []rationale.Item{}
			if act.Min != nil && amount < *act.Min {
				amount = *act.Min
				items = append(items, rationale.Of(rationale.PFDefend3BetMinRaiseAdjusted))
			}
			items = append(items, rationale.Of(rationale.PFDefend3Bet))

			return policy.Result{
				Action:    "raise",
				Amount:    intPtr(amount),
				Rationale: items,
				Meta: map[string]any{
					"reraise_to_bb": reraiseToBB,
					"bucket":        bucket,
					"cap_bb":        capBB,
					"combo":         obs.Combo,
				},
			}
		}
	}

	potOdds := 1.0
	if obs.ToCall > 0 {
		potOdds = float64(obs.ToCall) / float64(obs.PotNow+obs.ToCall)
	}

	if containsCombo(node.Call, obs.Combo) {
		if _, ok := observation.Find(obs.Acts, "call"); ok {
			threshold := tc.Modes.DefendThresholdOOP
			if obs.IP {
				threshold = tc.Modes.DefendThresholdIP
			}
			if potOdds <= threshold {
				return policy.Result{
					Action:    "call",
					Rationale: []rationale.Item{rationale.Of(rationale.PFDefendPriceOK)},
					Meta:      map[string]any{"bucket": bucket, "pot_odds": potOdds, "combo": obs.Combo},
				}
			}
			result := fallbackFoldOrCheck(obs, []rationale.Item{rationale.Of(rationale.PFDefendPriceBad)})
			result.Meta = map[string]any{"bucket": bucket, "pot_odds": potOdds, "combo": obs.Combo}
			return result
		}
	}

	result := fallbackFoldOrCheck(obs, []rationale.Item{
		rationale.New(rationale.PFDefendPriceBad, "", map[string]any{"reason": "out_of_range", "bucket": bucket}),
	})
	result.Meta = map[string]any{"bucket": bucket, "combo": obs.Combo}
	return result
}

func fallbackFoldOrCheck(obs observation.Observation, prefix []rationale.Item) policy.Result {
	if _, ok := observation.Find(obs.Acts, "fold"); ok {
		return policy.Result{Action: "fold", Rationale: prefix}
	}
	return policy.Result{Action: "check", Rationale: prefix}
}

func containsCombo(set []string, c string) bool {
	if c == "" {
		return false
	}
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

func intPtr(v int) *int { return &v }
