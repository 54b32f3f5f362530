// Package rationale defines the closed catalogue of explanation codes a
// policy can attach to a suggestion, plus builders that turn a code and
// optional data into the wire-shaped item a response carries.
package rationale

// Severity classifies how a code should be treated by a caller that
// wants to distinguish plain teaching notes from warnings.
type Severity string

const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
)

// Code is one entry in the closed rationale enumeration. Every code a
// policy can emit is declared as a package-level Code value below;
// nothing constructs a Code outside this file.
type Code struct {
	Name           string
	Severity       Severity
	DefaultMessage string
}

var (
	// Analysis notes.
	EWeakHand        = Code{"E001", SeverityWarn, "Weak hand: consider folding in many preflop spots."}
	EVeryWeakHand    = Code{"E002", SeverityWarn, "Very weak offsuit/unconnected. Often a fold preflop."}
	NSuitedBroadway  = Code{"N101", SeverityInfo, "Suited broadway: good equity/realization potential."}
	NSuitedConnected = Code{"N101", SeverityInfo, "Suited & relatively connected. Potential for draws."}
	NPremiumPair     = Code{"N102", SeverityInfo, "Premium pair: raise or 3-bet in many spots."}

	// Preflop v0.
	PFOpenBet         = Code{"PF_OPEN_BET", SeverityInfo, "Unopened pot: opening with a bet."}
	PFOpenRaise       = Code{"PF_OPEN_RAISE", SeverityInfo, "Unopened pot: opening with a raise."}
	PFCheckNotInRange = Code{"PF_CHECK", SeverityInfo, "Not in the opening range; checking."}
	PFFoldNoBet       = Code{"PF_FOLD", SeverityInfo, "No better action available; folding as a fallback."}
	PFCallThreshold   = Code{"PF_CALL", SeverityInfo, "Facing a bet: in range and cheap enough to call."}
	PFFoldExpensive   = Code{"PF_FOLD_EXPENSIVE", SeverityInfo, "Facing a bet: out of range or too expensive; folding."}

	// Preflop v1.
	PFOpenRangeHit                 = Code{"PF_OPEN_RANGE_HIT", SeverityInfo, "Combo is in the SB open range."}
	PFDefend3Bet                   = Code{"PF_DEFEND_3BET", SeverityInfo, "Combo is in the 3-bet range; reraising."}
	PFDefend3BetMinRaiseAdjusted   = Code{"PF_DEFEND_3BET_MIN_RAISE_ADJUSTED", SeverityInfo, "3-bet size lifted to the minimum legal reopen."}
	PFDefendPriceOK                = Code{"PF_DEFEND_PRICE_OK", SeverityInfo, "Price is acceptable; calling."}
	PFDefendPriceBad               = Code{"PF_DEFEND_PRICE_BAD", SeverityInfo, "Price is not acceptable; folding."}
	PFLimpCompleteBlind            = Code{"PF_LIMP_COMPLETE_BLIND", SeverityInfo, "Completing the blind rather than raising."}
	PFNoLegalRaise                 = Code{"PF_NO_LEGAL_RAISE", SeverityInfo, "In range, but no bet-like action is legal."}
	PFAttack4Bet                   = Code{"PF_ATTACK_4BET", SeverityInfo, "Combo is in the 4-bet range; reraising."}
	PFAttack4BetMinRaiseAdjusted   = Code{"PF_ATTACK_4BET_MIN_RAISE_ADJUSTED", SeverityInfo, "4-bet size lifted to the minimum legal reopen."}

	// Postflop v0.3.
	PLHeader    = Code{"PL_HEADER", SeverityInfo, "Postflop v0.3: hand tags plus pot-odds thresholds and minimum bets."}
	PLProbeBet  = Code{"PL_PROBE_BET", SeverityInfo, "No bet yet on this street: probing with a minimum-size bet."}
	PLCheck     = Code{"PL_CHECK", SeverityInfo, "Betting isn't warranted here; checking."}
	PLCall      = Code{"PL_CALL", SeverityInfo, "Pot odds are acceptable; calling."}
	PLFold      = Code{"PL_FOLD", SeverityInfo, "Pot odds are unfavorable; folding."}
	PLAllinOnly = Code{"PL_ALLIN_ONLY", SeverityInfo, "All-in is the only action left."}

	// Flop v1.
	FLRangeAdvSmallBet       = Code{"FL_RANGE_ADV_SMALL_BET", SeverityInfo, "Range advantage on this texture; small bet."}
	FLNutAdvPolar            = Code{"FL_NUT_ADV_POLAR", SeverityInfo, "Nut advantage; betting polarized and large."}
	FLDryCbetThird           = Code{"FL_DRY_CBET_THIRD", SeverityInfo, "Dry board continuation bet, small size."}
	FLDelayedCbetPlan        = Code{"FL_DELAYED_CBET_PLAN", SeverityInfo, "Checking with a plan to bet a later street."}
	FLCheckRange             = Code{"FL_CHECK_RANGE", SeverityInfo, "No edge to bet; checking the whole range."}
	FLLowSPRValueUp          = Code{"FL_LOW_SPR_VALUE_UP", SeverityInfo, "Low SPR: sizing up for value."}
	FLHighSPRCtrl            = Code{"FL_HIGH_SPR_CTRL", SeverityInfo, "High SPR: controlling the pot with a marginal hand."}
	FLMDFDefend              = Code{"FL_MDF_DEFEND", SeverityInfo, "Defending at minimum frequency against this bet size."}
	FLRaiseValue             = Code{"FL_RAISE_VALUE", SeverityInfo, "Raising for value."}
	FLRaiseSemiBluff         = Code{"FL_RAISE_SEMI_BLUFF", SeverityInfo, "Raising as a semi-bluff with equity to improve."}
	FLMinReopenAdjusted      = Code{"FL_MIN_REOPEN_ADJUSTED", SeverityInfo, "Raise size lifted to the minimum legal reopen."}
	FLValueCallBigBet        = Code{"FL_VALUE_CALL_BIG_BET", SeverityInfo, "Value hand calling rather than raising a large bet."}
	FLValueFoldBigBet        = Code{"FL_VALUE_FOLD_BIG_BET", SeverityInfo, "Even this value hand can't profitably continue against this sizing; folding."}

	// Warnings.
	CFGFallbackUsed = Code{"CFG_FALLBACK_USED", SeverityWarn, "Configuration unavailable or invalid; using conservative fallback."}
	SafeCheck       = Code{"SAFE_CHECK", SeverityWarn, "Unusual situation: falling back to check."}
	WarnClamped     = Code{"WARN_CLAMPED", SeverityWarn, "Suggested amount was out of bounds; clamped to the legal window."}
	WarnAnalysis    = Code{"W_ANALYSIS", SeverityWarn, "Could not analyse the hand; using a conservative policy."}
)

// Item is the wire shape of one rationale entry: {code, msg, data?}.
type Item struct {
	Code string         `json:"code"`
	Msg  string         `json:"msg"`
	Data map[string]any `json:"data,omitempty"`
}

// New builds a rationale Item from a Code, optionally overriding its
// default message and attaching a data payload.
func New(c Code, msg string, data map[string]any) Item {
	if msg == "" {
		msg = c.DefaultMessage
	}
	return Item{Code: c.Name, Msg: msg, Data: data}
}

// Of is New without an overridden message, the common case.
func Of(c Code) Item {
	return New(c, "", nil)
}

// WithData is New without an overridden message but with a data payload.
func WithData(c Code, data map[string]any) Item {
	return New(c, "", data)
}

// HasCode reports whether items contains an entry with the given code
// name. Used by the service and by tests asserting a code is present.
func HasCode(items []Item, name string) bool {
	for _, it := range items {
		if it.Code == name {
			return true
		}
	}
	return false
}
