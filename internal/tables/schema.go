package tables

import "encoding/json"

// OpenTable is preflop/open_HU.json: the SB's raw-first-in range.
type OpenTable struct {
	SB      []string `json:"SB"`
	Version int      `json:"version"`
}

// BucketRange is one bucket's call/reraise (or call/fourbet) combo sets
// in preflop/vs_HU.json.
type BucketRange struct {
	Call    []string `json:"call,omitempty"`
	Reraise []string `json:"reraise,omitempty"`
	Fourbet []string `json:"fourbet,omitempty"`
}

// FourbetCombos returns the 4-bet range for this bucket, accepting
// "reraise" as an alias for "fourbet" in the SB_vs_BB_3bet node (an
// explicitly tolerated alias; new documents should emit "fourbet").
func (b BucketRange) FourbetCombos() []string {
	if len(b.Fourbet) > 0 {
		return b.Fourbet
	}
	return b.Reraise
}

// VsTable is preflop/vs_HU.json.
type VsTable struct {
	BBvsSB     map[string]BucketRange `json:"BB_vs_SB"`
	SBvsBB3bet map[string]BucketRange `json:"SB_vs_BB_3bet"`
	Version    int                    `json:"version"`
}

// ModesHU holds the HU table-mode's numeric knobs.
type ModesHU struct {
	OpenBB                   float64 `json:"open_bb"`
	DefendThresholdIP        float64 `json:"defend_threshold_ip"`
	DefendThresholdOOP       float64 `json:"defend_threshold_oop"`
	ReraiseIPMult            float64 `json:"reraise_ip_mult"`
	ReraiseOOPMult           float64 `json:"reraise_oop_mult"`
	ReraiseOOPOffset         float64 `json:"reraise_oop_offset"`
	CapRatio                 float64 `json:"cap_ratio"`
	FourbetIPMult            float64 `json:"fourbet_ip_mult"`
	CapRatio4B               float64 `json:"cap_ratio_4b"`
	ThreebetBucketSmallLE    float64 `json:"threebet_bucket_small_le"`
	ThreebetBucketMidLE      float64 `json:"threebet_bucket_mid_le"`
	PostflopCapRatio         float64 `json:"postflop_cap_ratio"`
}

// ModesTable is preflop/modes.json.
type ModesTable struct {
	HU      ModesHU `json:"HU"`
	Version int     `json:"version"`
}

// DefaultModes returns the spec-documented HU defaults, used whenever
// modes.json is missing or fails to load. That fallback adds no
// CFG_FALLBACK_USED code to a suggestion.
func DefaultModes() ModesHU {
	return ModesHU{
		OpenBB:                2.5,
		DefendThresholdIP:     0.42,
		DefendThresholdOOP:    0.38,
		ReraiseIPMult:         3.0,
		ReraiseOOPMult:        3.5,
		ReraiseOOPOffset:      0.5,
		CapRatio:              0.9,
		FourbetIPMult:         2.2,
		CapRatio4B:            0.9,
		ThreebetBucketSmallLE: 9.0,
		ThreebetBucketMidLE:   11.0,
		PostflopCapRatio:      0.85,
	}
}

// FlopLeafFacing is a leaf's facing-a-bet sub-rule for one facing_size_tag.
type FlopLeafFacing struct {
	Action  string `json:"action"`
	SizeTag string `json:"size_tag,omitempty"`
	Plan    string `json:"plan,omitempty"`
}

// FlopLeaf is a terminal rule-tree node: what to do once pot_type,
// role, position, texture, spr_bucket, and hand_class have all matched.
type FlopLeaf struct {
	Action  string                    `json:"action"`
	SizeTag string                    `json:"size_tag,omitempty"`
	Plan    string                    `json:"plan,omitempty"`
	Facing  map[string]FlopLeafFacing `json:"facing,omitempty"`
}

// FlopRules is postflop/flop_rules_HU_<strategy>.json: a tree keyed
// pot_type -> role -> ip|oop -> texture -> spr_bucket -> hand_class,
// with "defaults" permitted at any level in place of a literal key.
type FlopRules struct {
	Tree    map[string]json.RawMessage `json:"-"`
	Version int                        `json:"version"`
}

// UnmarshalJSON captures "version" into the typed field and everything
// else into Tree, since the tree's depth and key set vary freely.
func (f *FlopRules) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &f.Version); err != nil {
			return err
		}
		delete(raw, "version")
	}
	f.Tree = raw
	return nil
}

const defaultsKey = "defaults"

// MatchRule descends the rule tree by keys in order, falling back to
// the "defaults" sibling at any level where the literal key is absent,
// and returns the leaf found at the end of the path (if any).
func MatchRule(tree map[string]json.RawMessage, keys []string) (FlopLeaf, bool) {
	node := tree
	for i, key := range keys {
		raw, ok := node[key]
		if !ok {
			raw, ok = node[defaultsKey]
			if !ok {
				return FlopLeaf{}, false
			}
		}

		if i == len(keys)-1 {
			var leaf FlopLeaf
			if err := json.Unmarshal(raw, &leaf); err != nil {
				return FlopLeaf{}, false
			}
			return leaf, true
		}

		var next map[string]json.RawMessage
		if err := json.Unmarshal(raw, &next); err != nil {
			return FlopLeaf{}, false
		}
		node = next
	}
	return FlopLeaf{}, false
}

// MatchRuleStrict is MatchRule without the "defaults" fallback, used
// by the flop policy's JSON-driven value-raise lookup which must match
// the literal path or not apply at all.
func MatchRuleStrict(tree map[string]json.RawMessage, keys []string) (FlopLeaf, bool) {
	node := tree
	for i, key := range keys {
		raw, ok := node[key]
		if !ok {
			return FlopLeaf{}, false
		}

		if i == len(keys)-1 {
			var leaf FlopLeaf
			if err := json.Unmarshal(raw, &leaf); err != nil {
				return FlopLeaf{}, false
			}
			return leaf, true
		}

		var next map[string]json.RawMessage
		if err := json.Unmarshal(raw, &next); err != nil {
			return FlopLeaf{}, false
		}
		node = next
	}
	return FlopLeaf{}, false
}
