package tables

import (
	"encoding/json"
	"fmt"
)

const (
	openPath  = "preflop/open_HU.json"
	vsPath    = "preflop/vs_HU.json"
	modesPath = "preflop/modes.json"
)

// NormalizeStrategy coerces an arbitrary strategy string to one of
// loose/medium/tight, defaulting (and coercing invalid input) to
// medium.
func NormalizeStrategy(s string) string {
	switch s {
	case "loose", "medium", "tight":
		return s
	default:
		return "medium"
	}
}

func flopRulesPath(strategy string) string {
	return fmt.Sprintf("postflop/flop_rules_HU_%s.json", NormalizeStrategy(strategy))
}

// OpenTable loads and decodes preflop/open_HU.json. version==BadVersion
// signals the caller should fall back and emit CFG_FALLBACK_USED.
func (c *Cache) OpenTable() (OpenTable, int) {
	data, version, err := c.Load("", openPath)
	if err != nil || version == BadVersion {
		return OpenTable{}, BadVersion
	}
	var t OpenTable
	if err := json.Unmarshal(data, &t); err != nil {
		return OpenTable{}, BadVersion
	}
	return t, version
}

// VsTable loads and decodes preflop/vs_HU.json.
func (c *Cache) VsTable() (VsTable, int) {
	data, version, err := c.Load("", vsPath)
	if err != nil || version == BadVersion {
		return VsTable{}, BadVersion
	}
	var t VsTable
	if err := json.Unmarshal(data, &t); err != nil {
		return VsTable{}, BadVersion
	}
	return t, version
}

// Modes loads preflop/modes.json, returning the spec's default knobs
// with BadVersion when the document is missing or malformed.
func (c *Cache) Modes() (ModesHU, int) {
	data, version, err := c.Load("", modesPath)
	if err != nil || version == BadVersion {
		return DefaultModes(), BadVersion
	}
	var t ModesTable
	if err := json.Unmarshal(data, &t); err != nil {
		return DefaultModes(), BadVersion
	}
	return t.HU, version
}

// FlopRules loads postflop/flop_rules_HU_<strategy>.json, coercing an
// unrecognised strategy to medium.
func (c *Cache) FlopRules(strategy string) (FlopRules, int) {
	strategy = NormalizeStrategy(strategy)
	data, version, err := c.Load(strategy, flopRulesPath(strategy))
	if err != nil || version == BadVersion {
		return FlopRules{}, BadVersion
	}
	var t FlopRules
	if err := json.Unmarshal(data, &t); err != nil {
		return FlopRules{}, BadVersion
	}
	return t, version
}
