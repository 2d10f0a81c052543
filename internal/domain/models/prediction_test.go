package models

import "testing"

func TestTierForScoreBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.0, TierLow},
		{0.39, TierLow},
		{0.4, TierMedium},
		{0.59, TierMedium},
		{0.6, TierHigh},
		{0.79, TierHigh},
		{0.8, TierCritical},
		{1.0, TierCritical},
	}
	for _, c := range cases {
		if got := TierForScore(c.score); got != c.want {
			t.Errorf("TierForScore(%v) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestTiersAtLeast(t *testing.T) {
	got := TiersAtLeast(TierHigh)
	if len(got) != 2 || got[0] != TierHigh || got[1] != TierCritical {
		t.Errorf("TiersAtLeast(HIGH) = %v", got)
	}
	if all := TiersAtLeast(TierLow); len(all) != 4 {
		t.Errorf("TiersAtLeast(LOW) = %v", all)
	}
}

func TestFactorMapRoundTrip(t *testing.T) {
	m := FactorMap{"recency": 0.7, "frequency": -0.2}
	raw, err := m.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var back FactorMap
	if err := back.Scan(raw); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if back["recency"] != 0.7 || back["frequency"] != -0.2 {
		t.Errorf("round trip = %v", back)
	}
}

func TestFactorMapScanNil(t *testing.T) {
	var m FactorMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if m == nil {
		t.Error("nil scan should yield empty map")
	}
}
