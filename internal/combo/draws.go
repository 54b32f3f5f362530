package combo

import (
	"math/bits"

	"github.com/lox/huengine/poker"
)

// drawInfo mirrors the outs-bitmask approach used to avoid double
// counting a draw across multiple detectors: flush, open-ended
// straight, and gutshot outs are unioned before counting.
type drawInfo struct {
	hasFlushDraw  bool
	hasOESD       bool
	hasGutshot    bool
	hasOvercards  bool
	outs          int
}

func (d drawInfo) hasStrongDraw() bool {
	if d.hasFlushDraw || d.hasOESD {
		return true
	}
	return (d.hasGutshot && d.hasFlushDraw) || d.outs >= 12
}

// detectDraws analyses hole cards against a flop/turn board for flush
// and straight draw potential, unioning outs masks so a card counted as
// a flush out is never also counted as a straight out.
func detectDraws(hole, board poker.Hand) drawInfo {
	if board.CountCards() < 3 {
		return drawInfo{}
	}

	var info drawInfo
	var outsMask poker.Hand

	for suit := uint8(0); suit < 4; suit++ {
		holeMask := hole.GetSuitMask(suit)
		boardMask := board.GetSuitMask(suit)
		holeCount := bits.OnesCount16(holeMask)
		total := holeCount + bits.OnesCount16(boardMask)
		if total >= 4 && holeCount > 0 {
			info.hasFlushDraw = true
			available := uint16(poker.RankMask) &^ (holeMask | boardMask)
			outsMask |= poker.Hand(available) << (suit * 13)
		}
	}

	allCards := hole | board
	rankMask := allCards.GetRankMask()

	for start := 0; start <= 9; start++ {
		consecutive := 0
		for i := 0; i < 4; i++ {
			if rankMask&(1<<(start+i)) != 0 {
				consecutive++
			}
		}
		if consecutive != 4 {
			continue
		}
		lowRank, highRank := start-1, start+4
		if lowRank < 0 || highRank > 13 {
			continue
		}
		if rankMask&(1<<lowRank) == 0 && rankMask&(1<<highRank) == 0 {
			info.hasOESD = true
			for suit := uint8(0); suit < 4; suit++ {
				outsMask.AddCard(poker.NewCard(uint8(lowRank%13), suit))
				outsMask.AddCard(poker.NewCard(uint8(highRank%13), suit))
			}
		}
	}

	if !info.hasOESD {
		for start := 0; start <= 8; start++ {
			present := 0
			missing := -1
			for i := 0; i < 5; i++ {
				if rankMask&(1<<(start+i)) != 0 {
					present++
				} else if missing == -1 {
					missing = start + i
				}
			}
			if present == 4 && missing >= 0 && missing < 13 {
				info.hasGutshot = true
				for suit := uint8(0); suit < 4; suit++ {
					outsMask.AddCard(poker.NewCard(uint8(missing), suit))
				}
				break
			}
		}
	}

	if !info.hasFlushDraw && !info.hasOESD {
		boardRankMask := board.GetRankMask()
		highestBoard := uint8(0)
		for rank := uint8(12); ; rank-- {
			if boardRankMask&(1<<rank) != 0 {
				highestBoard = rank
				break
			}
			if rank == 0 {
				break
			}
		}
		holeRankMask := hole.GetRankMask()
		for rank := highestBoard + 1; rank <= 12; rank++ {
			if holeRankMask&(1<<rank) != 0 {
				info.hasOvercards = true
				for suit := uint8(0); suit < 4; suit++ {
					card := poker.NewCard(rank, suit)
					if !allCards.HasCard(card) {
						outsMask.AddCard(card)
					}
				}
			}
		}
	}

	info.outs = outsMask.CountCards()
	return info
}
