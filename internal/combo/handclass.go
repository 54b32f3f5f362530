package combo

import "github.com/lox/huengine/poker"

// Flop hand-class buckets, used by the flop v1 policy to key into a
// strategy's rule tree.
const (
	ValueTwoPairPlus              = "value_two_pair_plus"
	OverpairOrTopPairStrongKicker = "overpair_or_top_pair_strong_kicker"
	TopPairWeakOrSecondPair       = "top_pair_weak_or_second_pair"
	MiddlePairOrThirdMinus        = "middle_pair_or_third_minus"
	StrongDraw                    = "strong_draw"
	WeakDrawOrAir                 = "weak_draw_or_air"
)

// HandClassFlop buckets a hole+board combination into the six classes
// the flop policy's rule tree is keyed on. hole must carry exactly two
// cards and board at least three; anything less returns WeakDrawOrAir.
func HandClassFlop(hole, board poker.Hand) string {
	if hole.CountCards() != 2 || board.CountCards() < 3 {
		return WeakDrawOrAir
	}

	combined := hole | board
	rank := poker.Evaluate(combined)

	switch {
	case rank.Type() >= poker.TwoPair:
		return ValueTwoPairPlus
	case rank.Type() == poker.Pair:
		return classifyPair(hole, board, rank)
	}

	draws := detectDraws(hole, board)
	if draws.hasStrongDraw() {
		return StrongDraw
	}
	return WeakDrawOrAir
}

// classifyPair distinguishes an overpair or top-pair-with-a-strong-kicker
// from a weaker top pair / second pair, and those from anything at
// third pair or below, by comparing the paired rank against the board's
// distinct ranks sorted high to low.
func classifyPair(hole, board poker.Hand, rank poker.HandRank) string {
	pairedRank := uint8((rank >> 24) & 0xF)
	boardRanks := distinctRanksDescending(board)
	if len(boardRanks) == 0 {
		return MiddlePairOrThirdMinus
	}

	isOverpair := pairedRank > boardRanks[0] && isHolePair(hole)
	isTopPair := !isOverpair && pairedRank == boardRanks[0]

	if isOverpair {
		return OverpairOrTopPairStrongKicker
	}
	if isTopPair {
		if strongKicker(hole, pairedRank) {
			return OverpairOrTopPairStrongKicker
		}
		return TopPairWeakOrSecondPair
	}
	if len(boardRanks) > 1 && pairedRank == boardRanks[1] {
		return TopPairWeakOrSecondPair
	}
	return MiddlePairOrThirdMinus
}

func isHolePair(hole poker.Hand) bool {
	cards := hole.Cards()
	if len(cards) != 2 {
		return false
	}
	return cards[0].Rank() == cards[1].Rank()
}

// strongKicker reports whether the hole card not involved in the pair
// (i.e. the board-paired card's partner) is King or better.
func strongKicker(hole poker.Hand, pairedRank uint8) bool {
	for _, c := range hole.Cards() {
		if c.Rank() != pairedRank {
			return c.Rank() >= poker.King
		}
	}
	return false
}

// distinctRanksDescending returns the board's distinct ranks, highest first.
func distinctRanksDescending(board poker.Hand) []uint8 {
	rankMask := board.GetRankMask()
	var ranks []uint8
	for r := int8(12); r >= 0; r-- {
		if rankMask&(1<<uint(r)) != 0 {
			ranks = append(ranks, uint8(r))
		}
	}
	return ranks
}
