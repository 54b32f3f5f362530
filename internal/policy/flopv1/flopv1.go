// Package flopv1 implements the rule-tree driven flop policy: a
// nested lookup keyed by pot_type -> role -> position -> texture ->
// spr_bucket -> hand_class, with a JSON-driven value-raise shortcut
// and MDF-based defense when facing a bet.
package flopv1

import (
	"github.com/lox/huengine/internal/combo"
	"github.com/lox/huengine/internal/observation"
	"github.com/lox/huengine/internal/policy"
	"github.com/lox/huengine/internal/rationale"
	"github.com/lox/huengine/internal/tables"
)

// Config bundles the loaded strategy rule tree and runtime flags.
type Config struct {
	Rules             tables.FlopRules
	RulesVersion      int
	ValueRaiseEnabled bool
}

// New builds a policy.Func closed over the loaded flop rule tree.
func New(tc Config) policy.Func {
	return func(obs observation.Observation, cfg observation.PolicyConfig) policy.Result {
		var res policy.Result
		if obs.ToCall == 0 {
			res = noBetYet(obs, tc)
		} else {
			res = facingBet(obs, tc)
		}
		if tc.RulesVersion == tables.BadVersion {
			res.Rationale = append([]rationale.Item{rationale.Of(rationale.CFGFallbackUsed)}, res.Rationale...)
		}
		return res
	}
}

func matchPath(obs observation.Observation) []string {
	role := obs.Role
	if obs.PotType == "limped" {
		role = "na"
	}
	ipOop := "oop"
	if obs.IP {
		ipOop = "ip"
	}
	return []string{obs.PotType, "role", role, ipOop, obs.BoardTexture, obs.SPRBucket, obs.HandClass}
}

func noBetYet(obs observation.Observation, tc Config) policy.Result {
	leaf, found := tables.MatchRule(tc.Rules.Tree, matchPath(obs))

	if found && (leaf.Action == "bet" || leaf.Action == "raise") {
		if _, ok := observation.Find(obs.Acts, leaf.Action); ok {
			items := []rationale.Item{betRationale(obs, leaf.SizeTag)}
			if lowSPRValueUp(obs, leaf.SizeTag) {
				items = append(items, rationale.Of(rationale.FLLowSPRValueUp))
			}
			meta := map[string]any{"size_tag": leaf.SizeTag, "role": obs.Role, "texture": obs.BoardTexture, "spr_bucket": obs.SPRBucket}
			if leaf.Plan != "" {
				meta["plan"] = leaf.Plan
			}
			return policy.Result{Action: leaf.Action, SizeTag: leaf.SizeTag, Rationale: items, Meta: meta}
		}
	}

	if found && leaf.Action == "check" {
		items := []rationale.Item{rationale.Of(rationale.FLDelayedCbetPlan)}
		if highSPRControl(obs) {
			items = append(items, rationale.Of(rationale.FLHighSPRCtrl))
		}
		meta := map[string]any{}
		if leaf.Plan != "" {
			meta["plan"] = leaf.Plan
		}
		return policy.Result{Action: "check", Rationale: items, Meta: meta}
	}

	if obs.Role == "pfr" && obs.BoardTexture == "dry" {
		if _, ok := observation.Find(obs.Acts, "bet"); ok {
			return policy.Result{
				Action: "bet", SizeTag: "third",
				Rationale: []rationale.Item{betRationale(obs, "third")},
				Meta:      map[string]any{"size_tag": "third"},
			}
		}
	}
	return policy.Result{Action: "check", Rationale: []rationale.Item{rationale.Of(rationale.FLCheckRange)}}
}

func betRationale(obs observation.Observation, sizeTag string) rationale.Item {
	if obs.RangeAdv && sizeTag == "third" {
		return rationale.Of(rationale.FLRangeAdvSmallBet)
	}
	if obs.NutAdv && (sizeTag == "two_third" || sizeTag == "pot") {
		return rationale.Of(rationale.FLNutAdvPolar)
	}
	return rationale.Of(rationale.FLDryCbetThird)
}

func lowSPRValueUp(obs observation.Observation, sizeTag string) bool {
	if obs.SPRBucket != "low" || (sizeTag != "two_third" && sizeTag != "pot") {
		return false
	}
	return obs.HandClass == combo.ValueTwoPairPlus || obs.HandClass == combo.OverpairOrTopPairStrongKicker
}

func highSPRControl(obs observation.Observation) bool {
	if obs.SPRBucket != "high" {
		return false
	}
	return obs.HandClass == combo.MiddlePairOrThirdMinus || obs.HandClass == combo.WeakDrawOrAir
}

func facingBet(obs observation.Observation, tc Config) policy.Result {
	if tc.ValueRaiseEnabled && obs.HandClass == combo.ValueTwoPairPlus {
		if leaf, ok := valueRaiseLookup(obs, tc); ok {
			if _, ok := observation.Find(obs.Acts, leaf.Action); ok {
				if result := honorFacingLeaf(leaf); result != nil {
					return *result
				}
			}
		}
	}

	potOdds := 0.0
	if obs.ToCall > 0 {
		potOdds = float64(obs.ToCall) / float64(obs.PotNow+obs.ToCall)
	}
	mdf := 1 - potOdds
	mdfItem := rationale.New(rationale.FLMDFDefend, "", map[string]any{
		"mdf": mdf, "pot_odds": potOdds, "facing": obs.FacingSizeTag,
	})

	if obs.PotType == "threebet" {
		if (obs.FacingSizeTag == "third" || obs.FacingSizeTag == "half") && obs.HandClass == combo.ValueTwoPairPlus {
			if _, ok := observation.Find(obs.Acts, "raise"); ok {
				return policy.Result{
					Action: "raise", SizeTag: "two_third",
					Rationale: []rationale.Item{mdfItem, rationale.Of(rationale.FLRaiseValue)},
				}
			}
		}
		if obs.FacingSizeTag == "third" && obs.HandClass == combo.StrongDraw {
			if _, ok := observation.Find(obs.Acts, "raise"); ok {
				return policy.Result{
					Action: "raise", SizeTag: "half",
					Rationale: []rationale.Item{mdfItem, rationale.Of(rationale.FLRaiseSemiBluff)},
				}
			}
		}
	}

	if obs.FacingSizeTag == "third" || obs.FacingSizeTag == "half" {
		if _, ok := observation.Find(obs.Acts, "call"); ok {
			return policy.Result{Action: "call", Rationale: []rationale.Item{mdfItem}}
		}
	}

	if obs.FacingSizeTag == "two_third+" && obs.NutAdv {
		if _, ok := observation.Find(obs.Acts, "raise"); ok {
			return policy.Result{
				Action: "raise", SizeTag: "two_third",
				Rationale: []rationale.Item{mdfItem, rationale.Of(rationale.FLRaiseSemiBluff)},
				Meta:      map[string]any{"plan": "vs small/half → call; vs two_third+ → raise"},
			}
		}
	}

	if _, ok := observation.Find(obs.Acts, "call"); ok {
		return policy.Result{Action: "call", Rationale: []rationale.Item{mdfItem}}
	}
	if _, ok := observation.Find(obs.Acts, "fold"); ok {
		return policy.Result{Action: "fold", Rationale: []rationale.Item{mdfItem}}
	}
	return policy.Result{Action: "check", Rationale: []rationale.Item{mdfItem}}
}

func valueRaiseLookup(obs observation.Observation, tc Config) (tables.FlopLeaf, bool) {
	path := matchPath(obs)
	ipOop, texture, sprBucket, role := path[3], path[4], path[5], path[2]
	key := facingKey(obs.FacingSizeTag)

	fullPath := []string{obs.PotType, "role", role, ipOop, texture, sprBucket, combo.ValueTwoPairPlus, "facing", key}
	return tables.MatchRuleStrict(tc.Rules.Tree, fullPath)
}

func facingKey(tag string) string {
	if tag == "two_third+" {
		return "two_third_plus"
	}
	return tag
}

func honorFacingLeaf(leaf tables.FlopLeaf) *policy.Result {
	switch leaf.Action {
	case "raise":
		return &policy.Result{
			Action: "raise", SizeTag: leaf.SizeTag,
			Rationale: []rationale.Item{rationale.Of(rationale.FLRaiseValue)},
		}
	case "call":
		return &policy.Result{Action: "call", Rationale: []rationale.Item{rationale.Of(rationale.FLValueCallBigBet)}}
	case "fold":
		return &policy.Result{Action: "fold", Rationale: []rationale.Item{rationale.Of(rationale.FLValueFoldBigBet)}}
	}
	return nil
}
