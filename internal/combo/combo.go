// Package combo turns raw hole cards and boards into the small,
// deterministic labels policies dispatch on: 169-grid combo tags, coarse
// preflop tags, board texture, SPR bucket, position, facing-size tag,
// and range/nut advantage. Nothing here runs a simulation or touches
// randomness — every function is a pure lookup over bit-packed cards.
package combo

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/huengine/poker"
)

// FromHole maps two hole cards to their 169-grid combo label, e.g.
// "AKs", "AKo", "AA". Returns "" if either card is invalid.
func FromHole(c1, c2 poker.Card) string {
	r1, r2 := c1.Rank(), c2.Rank()
	if r1 > 12 || r2 > 12 {
		return ""
	}
	if r1 < r2 {
		r1, r2 = r2, r1
	}
	const rankChars = "23456789TJQKA"
	high, low := rankChars[r1], rankChars[r2]
	if r1 == r2 {
		return fmt.Sprintf("%c%c", high, low)
	}
	if c1.Suit() == c2.Suit() {
		return fmt.Sprintf("%c%cs", high, low)
	}
	return fmt.Sprintf("%c%co", high, low)
}

// Tags returns the coarse preflop tag set the Observation Builder
// attaches to a hand, e.g. {"pair"}, {"Ax_suited"}. An unrecognised pair
// of cards yields {"unknown"}.
func Tags(c1, c2 poker.Card) []string {
	r1, r2 := c1.Rank(), c2.Rank()
	if r1 > 12 || r2 > 12 {
		return []string{"unknown"}
	}
	suited := c1.Suit() == c2.Suit()
	hi, lo := r1, r2
	if hi < lo {
		hi, lo = lo, hi
	}

	var tags []string
	switch {
	case r1 == r2:
		tags = append(tags, "pair")
	case suited && hi == poker.Ace:
		tags = append(tags, "Ax_suited")
	case suited && hi >= poker.Ten && lo >= poker.Ten:
		tags = append(tags, "suited_broadway")
	case !suited && hi >= poker.Ten && lo >= poker.Ten:
		tags = append(tags, "broadway_offsuit")
	}
	if len(tags) == 0 {
		tags = []string{"none"}
	}
	return tags
}

// OpenRangeEligible reports whether the v0 baseline preflop policy
// considers this hand part of its fixed opening range: a pair, a suited
// broadway, an ace suited, or a broadway offsuit hand.
func OpenRangeEligible(tags []string) bool {
	for _, t := range tags {
		switch t {
		case "pair", "suited_broadway", "Ax_suited", "broadway_offsuit":
			return true
		}
	}
	return false
}

// ClassifyFlop buckets a board's texture into dry/semi/wet, or "na" when
// fewer than three cards are present (i.e. not yet on the flop).
//
//   - paired, three-suited, or (connected and two-suited)    -> wet
//   - else two-suited, or connected on its own               -> semi
//   - else                                                    -> dry
//
// "connected" means every adjacent gap between the board's distinct
// sorted ranks is at most one, or exactly one gap is present and it is
// at most two (covers boards like 9-8-5 where two cards are adjacent
// and the third is a near-miss).
func ClassifyFlop(board poker.Hand) string {
	if board.CountCards() < 3 {
		return "na"
	}

	var rankCounts [13]int
	var suitCounts [4]int
	for suit := uint8(0); suit < 4; suit++ {
		mask := board.GetSuitMask(suit)
		for rank := uint8(0); rank < 13; rank++ {
			if mask&(1<<rank) != 0 {
				rankCounts[rank]++
				suitCounts[suit]++
			}
		}
	}

	paired := false
	var ranks []int
	for r, c := range rankCounts {
		if c >= 2 {
			paired = true
		}
		if c >= 1 {
			ranks = append(ranks, r)
		}
	}
	sort.Ints(ranks)

	maxSuit := 0
	for _, c := range suitCounts {
		if c > maxSuit {
			maxSuit = c
		}
	}
	threeSuited := maxSuit >= 3
	twoSuited := maxSuit == 2

	connected := isConnected(ranks)

	switch {
	case paired || threeSuited || (connected && twoSuited):
		return "wet"
	case twoSuited || connected:
		return "semi"
	default:
		return "dry"
	}
}

func isConnected(sortedRanks []int) bool {
	if len(sortedRanks) < 2 {
		return false
	}
	maxGap := 0
	nonZeroGaps := 0
	for i := 1; i < len(sortedRanks); i++ {
		gap := sortedRanks[i] - sortedRanks[i-1] - 1
		if gap > maxGap {
			maxGap = gap
		}
		if gap > 0 {
			nonZeroGaps++
		}
	}
	if maxGap <= 1 {
		return true
	}
	return nonZeroGaps <= 1 && maxGap <= 2
}

// SPRBucket discretizes a stack-to-pot ratio into low (<=3), mid
// (<=6), high (>6), or "na" for a non-finite or non-positive value.
func SPRBucket(spr float64) string {
	if math.IsNaN(spr) || math.IsInf(spr, 0) || spr <= 0 {
		return "na"
	}
	switch {
	case spr <= 3:
		return "low"
	case spr <= 6:
		return "mid"
	default:
		return "high"
	}
}

// IsIP reports whether actor is in position on the given street. In HU,
// the SB is the button and acts last postflop (in position); the BB
// acts first postflop (out of position). Preflop the action order is
// reversed: the button/SB acts first, so the BB is in position.
func IsIP(actor, button int, street string) bool {
	if street == "preflop" {
		return actor != button
	}
	return actor == button
}

// DeriveFacingSizeTag buckets a bet size, as a fraction of pot_now,
// into third (<=1/3), half (<=1/2), two_third+ (>1/2), or "na" when
// there is nothing to call or pot_now is not meaningful.
func DeriveFacingSizeTag(toCall, potNow int) string {
	if toCall <= 0 || potNow <= 0 {
		return "na"
	}
	ratio := float64(toCall) / float64(potNow)
	switch {
	case ratio <= 1.0/3.0:
		return "third"
	case ratio <= 0.5:
		return "half"
	default:
		return "two_third+"
	}
}

// BucketFacingSize discretizes an opponent's preflop raise size, in BB,
// into small/mid/large using the modes table's configured thresholds.
func BucketFacingSize(toCallBB, smallLE, midLE float64) string {
	switch {
	case toCallBB <= smallLE:
		return "small"
	case toCallBB <= midLE:
		return "mid"
	default:
		return "large"
	}
}

// RangeAdvantage is a deterministic heuristic: the preflop raiser has a
// range advantage on a dry board.
func RangeAdvantage(texture, role string) bool {
	return role == "pfr" && texture == "dry"
}

// NutAdvantage is a deterministic heuristic: the preflop raiser has a
// nut advantage on a semi-wet or wet, broadway-heavy board.
func NutAdvantage(texture, role string, broadwayHeavy bool) bool {
	return role == "pfr" && broadwayHeavy && (texture == "semi" || texture == "wet")
}

// BroadwayHeavy reports whether at least two of the board's cards are
// rank Ten or higher.
func BroadwayHeavy(board poker.Hand) bool {
	rankMask := board.GetRankMask()
	count := 0
	for rank := poker.Ten; rank <= poker.Ace; rank++ {
		if rankMask&(1<<rank) != 0 {
			count++
		}
	}
	return count >= 2
}
