package sizing

import "testing"

func TestToAmount(t *testing.T) {
	cases := []struct {
		tag        string
		pot, stack int
		want       int
	}{
		{"third", 30, 0, 10},
		{"half", 30, 0, 15},
		{"two_third", 30, 0, 20},
		{"pot", 30, 0, 30},
		{"all_in", 30, 500, 500},
		{"third", 1, 0, 1},
	}
	for _, tc := range cases {
		if got := ToAmount(tc.tag, tc.pot, tc.stack); got != tc.want {
			t.Errorf("ToAmount(%q,%d,%d) = %d, want %d", tc.tag, tc.pot, tc.stack, got, tc.want)
		}
	}
}

func TestRaiseToAmountUncapped(t *testing.T) {
	got := RaiseToAmount(10, 5, "two_third", 0, 0.9)
	want := 12 // lastBet 5 + round(10 * 2/3) = 5 + 7
	if got != want {
		t.Fatalf("RaiseToAmount uncapped = %d, want %d", got, want)
	}
}

func TestRaiseToAmountCappedByStack(t *testing.T) {
	got := RaiseToAmount(100, 50, "pot", 120, 0.9)
	if got != 108 {
		t.Fatalf("RaiseToAmount capped = %d, want 108", got)
	}
}

func TestRaiseToAmountAllIn(t *testing.T) {
	if got := RaiseToAmount(100, 50, "all_in", 300, 0.9); got != 300 {
		t.Fatalf("RaiseToAmount all_in = %d, want 300", got)
	}
}
