// Package suggest implements the Suggest Service: the orchestrator
// that builds an Observation, dispatches to the right policy by
// (version, street), translates a size tag into a chip amount,
// enforces minimum re-open and the legal window, and assembles the
// final response with a confidence score and optional debug detail.
package suggest

import (
	"github.com/rs/zerolog"

	"github.com/lox/huengine/internal/observation"
	"github.com/lox/huengine/internal/policy"
	"github.com/lox/huengine/internal/policy/flopv1"
	"github.com/lox/huengine/internal/policy/preflopv1"
	"github.com/lox/huengine/internal/policy/v0"
	"github.com/lox/huengine/internal/rationale"
	"github.com/lox/huengine/internal/sizing"
	"github.com/lox/huengine/internal/tables"
)

// HandEngine is the read-only surface the service requires from the
// (externally owned) hand engine: whose turn it is, and what actions
// are currently legal for a seat.
type HandEngine interface {
	ToActIndex(gs observation.GameState) int
	LegalActions(gs observation.GameState, actor int) []observation.LegalAction
}

// Config holds the process-scoped knobs the spec documents as
// environment variables.
type Config struct {
	PolicyVersion  string // v0 | v1 | v1_preflop | auto
	RolloutPct     int    // 0-100, used when PolicyVersion == "auto"
	TableMode      string // HU
	Strategy       string // loose | medium | tight
	Debug          bool
	Enable4Bet     bool
	FlopValueRaise bool
}

// DefaultConfig returns the spec's documented environment defaults.
func DefaultConfig() Config {
	return Config{
		PolicyVersion:  "v0",
		RolloutPct:     0,
		TableMode:      "HU",
		Strategy:       "medium",
		Debug:          false,
		Enable4Bet:     false,
		FlopValueRaise: true,
	}
}

// Suggested is the {action, amount?} pair in the response body.
type Suggested struct {
	Action string `json:"action"`
	Amount *int   `json:"amount,omitempty"`
}

// Suggestion is the full response shape.
type Suggestion struct {
	HandID     string            `json:"hand_id"`
	Actor      int               `json:"actor"`
	Suggested  Suggested         `json:"suggested"`
	Rationale  []rationale.Item  `json:"rationale"`
	Policy     string            `json:"policy"`
	Confidence float64           `json:"confidence"`
	Meta       map[string]any    `json:"meta,omitempty"`
	Debug      map[string]any    `json:"debug,omitempty"`
}

// Service is the stateless Suggest Service: a frozen registry of
// policy functions closed over a snapshot of the loaded tables, plus
// the runtime config governing version selection and diagnostics.
type Service struct {
	registry  policy.Registry
	cfg       Config
	policyCfg observation.PolicyConfig
	logger    zerolog.Logger

	openVersion  int
	vsVersion    int
	flopVersion  int
	modes        tables.ModesHU
}

// New builds a Service by loading every table this process needs
// once, up front, and wiring the policy registry over the result. A
// table that fails to load falls back to its documented default. The
// preflop and flop policies emit CFG_FALLBACK_USED at decision time
// when the open, vs or flop-rules table failed; a modes.json that
// fails to load is replaced by tables.DefaultModes without any
// rationale code.
func New(tc *tables.Cache, cfg Config, policyCfg observation.PolicyConfig, logger zerolog.Logger) *Service {
	openTable, openVersion := tc.OpenTable()
	vsTable, vsVersion := tc.VsTable()
	modes, _ := tc.Modes()
	flopRules, flopVersion := tc.FlopRules(cfg.Strategy)

	registry := policy.Registry{}
	registry.Register("v0", "preflop", v0.Preflop)
	for _, street := range []string{"flop", "turn", "river"} {
		registry.Register("v0", street, v0.Postflop)
	}

	preflopV1 := preflopv1.New(preflopv1.Config{
		Open: openTable, OpenVersion: openVersion,
		Vs: vsTable, VsVersion: vsVersion,
		Modes: modes, Enable4Bet: cfg.Enable4Bet,
	})
	registry.Register("v1", "preflop", preflopV1)
	registry.Register("v1_preflop", "preflop", preflopV1)
	for _, street := range []string{"turn", "river"} {
		registry.Register("v1_preflop", street, v0.Postflop)
	}

	flopV1 := flopv1.New(flopv1.Config{
		Rules: flopRules, RulesVersion: flopVersion, ValueRaiseEnabled: cfg.FlopValueRaise,
	})
	registry.Register("v1", "flop", flopV1)
	registry.Register("v1_preflop", "flop", v0.Postflop)
	for _, street := range []string{"turn", "river"} {
		registry.Register("v1", street, v0.Postflop)
	}

	return &Service{
		registry: registry, cfg: cfg, policyCfg: policyCfg, logger: logger,
		openVersion: openVersion, vsVersion: vsVersion, flopVersion: flopVersion, modes: modes,
	}
}

// Suggest is the orchestrator's single entry point: build_suggestion
// from the spec's external interface.
func (s *Service) Suggest(gs observation.GameState, actor int, engine HandEngine) (Suggestion, error) {
	toAct := engine.ToActIndex(gs)
	if toAct != actor {
		return Suggestion{}, notActorsTurn(toAct, actor)
	}

	acts := engine.LegalActions(gs, actor)
	if len(acts) == 0 {
		return Suggestion{}, noLegalActions()
	}

	obs, warnings := observation.Build(gs, actor, acts)

	versionID, rolledToV1, roll := s.resolvePolicyVersion(obs.HandID)
	fn, ok := s.registry.Get(versionID, obs.Street)
	if !ok {
		fn, _ = s.registry.Get("v0", obs.Street)
		versionID = "v0"
	}

	result := fn(obs, s.policyCfg)
	items := append(append([]rationale.Item{}, warnings...), result.Rationale...)

	amount, clamped, clampItem, reopenItem := s.resolveAmount(result, acts, gs, obs)
	if reopenItem != nil {
		items = append(items, *reopenItem)
	}
	if clampItem != nil {
		items = append(items, *clampItem)
	}

	items = ensureLimpRationale(items, gs, obs, result.Action)

	if !actionIsLegal(acts, result.Action) {
		return Suggestion{}, illegalSuggestion(result.Action)
	}

	policyLabel := policyLabel(versionID, obs.Street)
	confidence := computeConfidence(items, result, obs, policyLabel, clamped)

	suggestion := Suggestion{
		HandID:     obs.HandID,
		Actor:      actor,
		Suggested:  Suggested{Action: result.Action, Amount: amount},
		Rationale:  items,
		Policy:     policyLabel,
		Confidence: confidence,
		Meta:       result.Meta,
	}

	if s.cfg.Debug {
		suggestion.Debug = s.debugMeta(obs, versionID, roll, rolledToV1, result)
	}

	if versionID != "v0" || s.cfg.Debug {
		s.logDecision(obs, policyLabel, result, suggestion)
	}

	return suggestion, nil
}

// resolvePolicyVersion picks the (version, street) registry key per
// the configured SUGGEST_POLICY_VERSION, resolving "auto" with a
// stable per-hand dice roll against SUGGEST_V1_ROLLOUT_PCT.
func (s *Service) resolvePolicyVersion(handID string) (versionID string, rolledToV1 bool, roll int) {
	if s.cfg.PolicyVersion != "auto" {
		return s.cfg.PolicyVersion, s.cfg.PolicyVersion != "v0", -1
	}
	roll = stableRoll(handID)
	if roll < s.cfg.RolloutPct {
		return "v1", true, roll
	}
	return "v0", false, roll
}

func policyLabel(versionID, street string) string {
	if versionID == "v1_preflop" {
		versionID = "v1"
	}
	return street + "_" + versionID
}

func actionIsLegal(acts []observation.LegalAction, action string) bool {
	_, ok := observation.Find(acts, action)
	return ok
}

// resolveAmount implements spec steps 3-5: translate a bare size tag
// into a chip amount when the policy didn't already compute one,
// enforce the minimum re-open on a raise, then clamp to [min,max].
func (s *Service) resolveAmount(result policy.Result, acts []observation.LegalAction, gs observation.GameState, obs observation.Observation) (amount *int, clamped bool, clampItem, reopenItem *rationale.Item) {
	if result.Action != "bet" && result.Action != "raise" && result.Action != "allin" {
		return nil, false, nil, nil
	}

	act, found := observation.Find(acts, result.Action)
	if !found {
		return result.Amount, false, nil, nil
	}

	chosen := 0
	if result.Amount != nil {
		chosen = *result.Amount
	} else if result.SizeTag != "" {
		effStack := effectiveStack(gs)
		if result.Action == "bet" {
			chosen = sizing.ToAmount(result.SizeTag, obs.PotNow, effStack)
		} else {
			chosen = sizing.RaiseToAmount(obs.PotNow, gs.LastBet, result.SizeTag, effStack, s.modes.PostflopCapRatio)
		}
	} else if act.Min != nil {
		chosen = *act.Min
	}

	if result.Action == "raise" && act.Min != nil && chosen < *act.Min {
		chosen = *act.Min
		item := rationale.Of(rationale.FLMinReopenAdjusted)
		reopenItem = &item
	}

	given := chosen
	min, max := 0, chosen
	if act.Min != nil {
		min = *act.Min
	}
	if act.Max != nil {
		max = *act.Max
	} else {
		max = chosen
	}
	if min > max {
		chosen = max
		clamped = true
	} else if chosen < min {
		chosen = min
		clamped = true
	} else if chosen > max {
		chosen = max
		clamped = true
	}

	if clamped {
		item := rationale.New(rationale.WarnClamped, "", map[string]any{
			"min": min, "max": max, "given": given, "chosen": chosen,
		})
		clampItem = &item
	}

	return &chosen, clamped, clampItem, reopenItem
}

// effectiveStack approximates the amount still behind for sizing
// purposes: the smaller of the two seats' remaining stacks.
func effectiveStack(gs observation.GameState) int {
	stack := gs.Players[0].Stack
	if gs.Players[1].Stack < stack {
		stack = gs.Players[1].Stack
	}
	return stack
}

// ensureLimpRationale guarantees PF_LIMP_COMPLETE_BLIND is present
// whenever the SB calls a cheap blind preflop, even if the policy
// that produced the call didn't attach it itself.
func ensureLimpRationale(items []rationale.Item, gs observation.GameState, obs observation.Observation, action string) []rationale.Item {
	isSB := obs.Actor == gs.Button
	if obs.Street != "preflop" || action != "call" || !isSB || float64(obs.ToCall) > obs.BB {
		return items
	}
	if rationale.HasCode(items, rationale.PFLimpCompleteBlind.Name) {
		return items
	}
	return append(items, rationale.Of(rationale.PFLimpCompleteBlind))
}

var rangeHitCodes = map[string]bool{
	"PF_OPEN_RANGE_HIT":      true,
	"PF_DEFEND_3BET":         true,
	"PF_ATTACK_4BET":         true,
	"FL_RAISE_VALUE":         true,
	"FL_RAISE_SEMI_BLUFF":    true,
	"FL_RANGE_ADV_SMALL_BET": true,
	"FL_NUT_ADV_POLAR":       true,
}

var priceOkCodes = map[string]bool{
	"PF_DEFEND_PRICE_OK":    true,
	"PF_CALL":               true,
	"FL_MDF_DEFEND":         true,
	"FL_VALUE_CALL_BIG_BET": true,
}

var fallbackCodes = map[string]bool{
	"CFG_FALLBACK_USED": true,
	"SAFE_CHECK":        true,
}

// computeConfidence implements spec step 8's scoring rules.
func computeConfidence(items []rationale.Item, result policy.Result, obs observation.Observation, policyLabel string, clamped bool) float64 {
	confidence := 0.5

	for _, it := range items {
		if rangeHitCodes[it.Code] {
			confidence += 0.30
			break
		}
	}
	for _, it := range items {
		if priceOkCodes[it.Code] {
			confidence += 0.20
			break
		}
	}
	if policyLabel == "flop_v1" && result.SizeTag != "" && obs.ToCall == 0 {
		confidence += 0.05
	}
	if plan, ok := result.Meta["plan"]; ok {
		if s, ok := plan.(string); ok && s != "" {
			confidence += 0.05
		}
	}
	if clamped {
		confidence -= 0.10
	}
	for _, it := range items {
		if fallbackCodes[it.Code] {
			confidence -= 0.10
			break
		}
	}

	if confidence < 0.5 {
		confidence = 0.5
	}
	if confidence > 0.9 {
		confidence = 0.9
	}
	return confidence
}

func (s *Service) debugMeta(obs observation.Observation, versionID string, roll int, rolledToV1 bool, result policy.Result) map[string]any {
	units := map[string]any{}
	for _, key := range []string{"open_bb", "reraise_to_bb", "fourbet_to_bb", "cap_bb", "bucket"} {
		if v, ok := result.Meta[key]; ok {
			units[key] = v
		}
	}
	if obs.ToCall > 0 && obs.BB > 0 {
		units["to_call_bb"] = float64(obs.ToCall) / obs.BB
	}
	if obs.ToCall > 0 {
		units["pot_odds"] = float64(obs.ToCall) / float64(obs.PotNow+obs.ToCall)
	}

	return map[string]any{
		"policy_version":       versionID,
		"table_mode":           s.cfg.TableMode,
		"spr_bucket":           obs.SPRBucket,
		"board_texture":        obs.BoardTexture,
		"pot_type":             obs.PotType,
		"rollout_pct":          s.cfg.RolloutPct,
		"roll":                 roll,
		"rolled_to_v1":         rolledToV1,
		"open_version":         s.openVersion,
		"vs_version":           s.vsVersion,
		"flop_version":         s.flopVersion,
		"strategy":             tables.NormalizeStrategy(s.cfg.Strategy),
		"units":                units,
		"role":                 obs.Role,
		"range_adv":            obs.RangeAdv,
		"nut_adv":              obs.NutAdv,
		"facing_size_tag":      obs.FacingSizeTag,
	}
}

func (s *Service) logDecision(obs observation.Observation, policyLabel string, result policy.Result, suggestion Suggestion) {
	s.logger.Info().
		Str("hand_id", obs.HandID).
		Int("actor", obs.Actor).
		Str("street", obs.Street).
		Str("policy", policyLabel).
		Str("action", suggestion.Suggested.Action).
		Float64("confidence", suggestion.Confidence).
		Msg("suggest_v1")
}
