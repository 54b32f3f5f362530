package rationale

import "testing"

func TestNewUsesDefaultMessageWhenOverrideEmpty(t *testing.T) {
	item := Of(PFOpenRangeHit)
	if item.Code != "PF_OPEN_RANGE_HIT" {
		t.Fatalf("expected code PF_OPEN_RANGE_HIT, got %s", item.Code)
	}
	if item.Msg != PFOpenRangeHit.DefaultMessage {
		t.Fatalf("expected default message, got %q", item.Msg)
	}
	if item.Data != nil {
		t.Fatalf("expected nil data, got %v", item.Data)
	}
}

func TestNewOverridesMessage(t *testing.T) {
	item := New(PFFoldExpensive, "custom message", nil)
	if item.Msg != "custom message" {
		t.Fatalf("expected overridden message, got %q", item.Msg)
	}
}

func TestWithDataAttachesPayload(t *testing.T) {
	item := WithData(WarnClamped, map[string]any{"min": 50, "max": 200, "given": 10000, "chosen": 200})
	if item.Data["chosen"] != 200 {
		t.Fatalf("expected chosen=200 in data, got %v", item.Data["chosen"])
	}
}

func TestHasCode(t *testing.T) {
	items := []Item{Of(PFDefend3Bet), Of(WarnClamped)}
	if !HasCode(items, "WARN_CLAMPED") {
		t.Fatal("expected WARN_CLAMPED to be present")
	}
	if HasCode(items, "PF_OPEN_RANGE_HIT") {
		t.Fatal("did not expect PF_OPEN_RANGE_HIT to be present")
	}
}
