// Package sizing converts the coarse size tags a policy emits (third,
// half, two_third, pot, all_in) into concrete chip amounts, for both a
// plain bet against an empty pot and a raise-to against an existing bet.
package sizing

import "math"

// multiplier is the fraction of pot_now a size tag represents. all_in
// has no fixed fraction; ToAmount and RaiseToAmount resolve it against
// the effective stack.
var multiplier = map[string]float64{
	"third":     1.0 / 3.0,
	"half":      1.0 / 2.0,
	"two_third": 2.0 / 3.0,
	"pot":       1.0,
}

// ToAmount converts a bet-sizing tag into a chip amount against potNow,
// a plain bet into an empty pot. all_in resolves to effStack. The
// result is rounded to the nearest integer and floored at 1.
func ToAmount(sizeTag string, potNow, effStack int) int {
	if sizeTag == "all_in" {
		return max(effStack, 1)
	}
	mult, ok := multiplier[sizeTag]
	if !ok {
		mult = multiplier["half"]
	}
	amount := int(math.Round(float64(potNow) * mult))
	return max(amount, 1)
}

// RaiseToAmount computes a raise-to amount: lastBet plus potNow scaled
// by the size tag's multiplier, capped at capRatio*effStack when
// effStack is known (> 0). all_in raises straight to effStack.
func RaiseToAmount(potNow, lastBet int, sizeTag string, effStack int, capRatio float64) int {
	if sizeTag == "all_in" {
		if effStack > 0 {
			return effStack
		}
		return lastBet + potNow
	}

	mult, ok := multiplier[sizeTag]
	if !ok {
		mult = multiplier["half"]
	}
	target := lastBet + int(math.Round(float64(potNow)*mult))

	if effStack > 0 {
		cap := int(math.Round(capRatio * float64(effStack)))
		if target > cap {
			target = cap
		}
	}
	return max(target, 1)
}
