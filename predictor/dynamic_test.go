package predictor

import "testing"

func TestDynamicDataPredictor_ContractCompliance(t *testing.T) {
	t.Parallel()

	p := NewDynamicDataPredictor([]Key{5, 10, -5})
	result := p.Likelihoods(10, nil)
	if len(result) == 0 {
		t.Fatal("expected non-empty predictions")
	}
	for k, v := range result {
		if v <= 0 {
			t.Fatalf("key %d: score %f must be positive", k, v)
		}
	}
}

func TestDynamicDataPredictor_EmptyAndSingleItemHistory(t *testing.T) {
	t.Parallel()

	p := NewDynamicDataPredictor([]Key{5, 10})
	if len(p.Likelihoods(5, nil)) == 0 {
		t.Fatal("expected predictions with empty history")
	}
	if len(p.Likelihoods(5, []Key{3})) == 0 {
		t.Fatal("expected predictions with single-item history")
	}
}

func TestDynamicDataPredictor_JumpTargetsGetBoost(t *testing.T) {
	t.Parallel()

	p := NewDynamicDataPredictor([]Key{5, 10}, JumpBoost(10.0), ForwardBias(1.0))
	result := p.Likelihoods(0, nil)

	jump5 := result[5]
	jump10 := result[10]
	regularForward := result[1]

	if jump5 <= regularForward {
		t.Fatalf("jump target 5 (%f) should exceed a regular forward position (%f)", jump5, regularForward)
	}
	if jump10 <= regularForward {
		t.Fatalf("jump target 10 (%f) should exceed a regular forward position (%f)", jump10, regularForward)
	}
}

func TestDynamicDataPredictor_ProximityBoostAroundJumpTargets(t *testing.T) {
	t.Parallel()

	p := NewDynamicDataPredictor([]Key{10}, ProximityBoost(2.0), ProximityRange(2))
	result := p.Likelihoods(0, nil)

	if result[8] <= 0 {
		t.Fatal("expected a score for position 8 (10-2, within proximity range)")
	}
	if result[12] <= 0 {
		t.Fatal("expected a score for position 12 (10+2, within proximity range)")
	}
}

func TestDynamicDataPredictor_HistoryBoostWithForwardStreak(t *testing.T) {
	t.Parallel()

	p := NewDynamicDataPredictor(nil, HistoryBoost(2.0), ForwardBias(1.0))

	withStreak := p.Likelihoods(8, []Key{5, 6, 7, 8})
	withoutStreak := p.Likelihoods(8, []Key{5, 3, 7, 6})

	const forwardPos = 9
	if withStreak[forwardPos] <= withoutStreak[forwardPos] {
		t.Fatalf("forward-streak score (%f) should exceed non-streak score (%f) at %d",
			withStreak[forwardPos], withoutStreak[forwardPos], forwardPos)
	}
}

func TestDynamicDataPredictor_LengthClipping(t *testing.T) {
	t.Parallel()

	p := NewDynamicDataPredictor([]Key{50}, Length(20), MaxSpan(30))
	result := p.Likelihoods(10, nil)

	for k := range result {
		if k < 0 || k >= 20 {
			t.Fatalf("key %d escaped clipping to [0, 20)", k)
		}
	}
}

func TestDynamicDataPredictor_NegativeCurrent(t *testing.T) {
	t.Parallel()

	p := NewDynamicDataPredictor([]Key{5, 10})
	result := p.Likelihoods(-5, nil)
	if len(result) == 0 {
		t.Fatal("expected predictions even with a negative current")
	}
	for k := range result {
		if k < 0 {
			t.Fatalf("key %d should have been clipped to >= 0", k)
		}
	}
}

func TestDynamicDataPredictor_BoundaryCurrentZero(t *testing.T) {
	t.Parallel()

	p := NewDynamicDataPredictor([]Key{5, 10})
	result := p.Likelihoods(0, nil)
	if len(result) == 0 {
		t.Fatal("expected predictions at current=0")
	}
	hasPositive := false
	for k := range result {
		if k < 0 {
			t.Fatalf("key %d should never be negative", k)
		}
		if k > 0 {
			hasPositive = true
		}
	}
	if !hasPositive {
		t.Fatal("expected at least one forward prediction")
	}
}

func TestDynamicDataPredictor_BoundaryNearLength(t *testing.T) {
	t.Parallel()

	p := NewDynamicDataPredictor([]Key{5}, Length(10), MaxSpan(20))
	result := p.Likelihoods(8, nil)
	if len(result) == 0 {
		t.Fatal("expected predictions near the length boundary")
	}
	for k := range result {
		if k >= 10 {
			t.Fatalf("key %d should have been clipped below length 10", k)
		}
	}
}

func TestDynamicDataPredictor_EmptyPossibleJumps(t *testing.T) {
	t.Parallel()

	p := NewDynamicDataPredictor(nil)
	result := p.Likelihoods(5, nil)
	if len(result) == 0 {
		t.Fatal("expected forward/backward predictions with no jump targets")
	}
	hasForward := false
	for k := range result {
		if k > 5 {
			hasForward = true
		}
	}
	if !hasForward {
		t.Fatal("expected at least one forward prediction beyond current")
	}
}

func TestDynamicDataPredictor_ParameterEdgeCases(t *testing.T) {
	t.Parallel()

	p1 := NewDynamicDataPredictor([]Key{1}, MaxSpan(1))
	if len(p1.Likelihoods(5, nil)) == 0 {
		t.Fatal("expected predictions with max_span=1")
	}

	p2 := NewDynamicDataPredictor([]Key{5}, ProximityRange(0))
	if len(p2.Likelihoods(0, nil)) == 0 {
		t.Fatal("expected predictions with proximity_range=0")
	}
}

func TestNop_AlwaysEmpty(t *testing.T) {
	t.Parallel()

	if got := (Nop{}).Likelihoods(42, []Key{1, 2, 3}); len(got) != 0 {
		t.Fatalf("Nop.Likelihoods = %v, want empty", got)
	}
}
