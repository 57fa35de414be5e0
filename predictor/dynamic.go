package predictor

// DynamicDataPredictorOption configures a DynamicDataPredictor at
// construction. The pattern mirrors the functional-option style used
// elsewhere in the Go caching ecosystem (e.g. go-pkgz/lcw's cache
// options) rather than a struct literal, since most callers only need to
// override one or two of the many tunables below.
type DynamicDataPredictorOption func(*DynamicDataPredictor)

// ForwardBias sets the per-step score for positions ahead of current.
// Default 1.0.
func ForwardBias(v float64) DynamicDataPredictorOption {
	return func(p *DynamicDataPredictor) { p.forwardBias = v }
}

// BackwardBias sets the per-step score for positions behind current.
// Default 0.3 (backward accesses are less likely in a forward-scanning
// dataset, but not impossible — e.g. the user rewound).
func BackwardBias(v float64) DynamicDataPredictorOption {
	return func(p *DynamicDataPredictor) { p.backwardBias = v }
}

// JumpBoost adds a flat bonus to the score of each exact possible-jump
// target. Default 0 (jump targets score like any other position).
func JumpBoost(v float64) DynamicDataPredictorOption {
	return func(p *DynamicDataPredictor) { p.jumpBoost = v }
}

// ProximityBoost adds a distance-decayed bonus to positions within
// ProximityRange of a jump target, on top of whatever forward/backward
// score they already carry. Default 0.
func ProximityBoost(v float64) DynamicDataPredictorOption {
	return func(p *DynamicDataPredictor) { p.proximityBoost = v }
}

// ProximityRange sets how many positions on either side of a jump target
// receive ProximityBoost. Default 0 (no proximity spread).
func ProximityRange(v int) DynamicDataPredictorOption {
	return func(p *DynamicDataPredictor) { p.proximityRange = v }
}

// HistoryBoost scales the bonus applied to near-forward positions when
// the recent history shows a forward streak (consecutive +1 steps).
// Default 0.
func HistoryBoost(v float64) DynamicDataPredictorOption {
	return func(p *DynamicDataPredictor) { p.historyBoost = v }
}

// MaxSpan bounds how many steps forward/backward of current are scanned
// for the distance-decay prior. Default 30.
func MaxSpan(v int) DynamicDataPredictorOption {
	return func(p *DynamicDataPredictor) { p.maxSpan = v }
}

// Length, if positive, clips every predicted key to [0, Length). Zero
// (the default) leaves the upper bound unbounded; the lower bound of 0
// is always enforced regardless of Length.
func Length(v int) DynamicDataPredictorOption {
	return func(p *DynamicDataPredictor) { p.length = v }
}

// DynamicDataPredictor combines a distance-decay prior with a jump-target
// boost, a proximity boost around jump targets, and a forward-streak
// history boost, all as additive score adjustments — the reference
// predictor described in spec.md §9. Implementers of alternative
// predictors only need to preserve the output map's relative ordering.
type DynamicDataPredictor struct {
	possibleJumps []Key

	forwardBias    float64
	backwardBias   float64
	jumpBoost      float64
	proximityBoost float64
	proximityRange int
	historyBoost   float64
	maxSpan        int
	length         int
}

// NewDynamicDataPredictor builds a DynamicDataPredictor. possibleJumps are
// candidate "hard cut" targets (e.g. scene boundaries) that receive
// JumpBoost and, within ProximityRange, ProximityBoost.
func NewDynamicDataPredictor(possibleJumps []Key, opts ...DynamicDataPredictorOption) *DynamicDataPredictor {
	p := &DynamicDataPredictor{
		possibleJumps: append([]Key(nil), possibleJumps...),
		forwardBias:   1.0,
		backwardBias:  0.3,
		maxSpan:       30,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Likelihoods implements Predictor.
func (p *DynamicDataPredictor) Likelihoods(current Key, history []Key) map[Key]float64 {
	scores := make(map[Key]float64)

	for d := 1; d <= p.maxSpan; d++ {
		if p.forwardBias > 0 {
			p.add(scores, current+Key(d), p.forwardBias/float64(d))
		}
		if p.backwardBias > 0 {
			p.add(scores, current-Key(d), p.backwardBias/float64(d))
		}
	}

	for _, jt := range p.possibleJumps {
		if p.jumpBoost > 0 {
			p.add(scores, jt, p.jumpBoost)
		}
		for off := 1; off <= p.proximityRange; off++ {
			if p.proximityBoost <= 0 {
				continue
			}
			boost := p.proximityBoost / float64(off)
			p.add(scores, jt-Key(off), boost)
			p.add(scores, jt+Key(off), boost)
		}
	}

	if streak := forwardStreak(history); streak > 0 && p.historyBoost > 0 {
		bonus := p.historyBoost * float64(streak)
		for d := 1; d <= minInt(p.maxSpan, streak+1); d++ {
			p.add(scores, current+Key(d), bonus)
		}
	}

	for k := range scores {
		if k < 0 || (p.length > 0 && k >= Key(p.length)) {
			delete(scores, k)
		}
	}
	return scores
}

// add accumulates delta into scores[k], creating the entry if absent.
func (p *DynamicDataPredictor) add(scores map[Key]float64, k Key, delta float64) {
	scores[k] += delta
}

// forwardStreak counts the trailing run of history entries that each
// increase by exactly 1 over the previous one (e.g. [5,6,7,8] -> 3).
func forwardStreak(history []Key) int {
	streak := 0
	for i := len(history) - 1; i > 0; i-- {
		if history[i] == history[i-1]+1 {
			streak++
			continue
		}
		break
	}
	return streak
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
