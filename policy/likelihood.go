package policy

// LikelihoodAware wraps a base Policy and restricts its candidate pool to
// the keys with the minimal likelihood score before delegating to the base
// policy for tie-breaking. This is the default path the scheduler invokes
// on a synchronous miss, right after it has recomputed likelihoods (spec
// §4.2, §4.5 step 4): a key the predictor thinks is about to be reused
// again is the last one the cache should throw away.
//
// If likelihoods is empty, or all candidates share the same score, the
// entire contents map falls through to the base policy unchanged.
type LikelihoodAware struct {
	Base Policy
}

// PickVictim implements Policy.
func (p LikelihoodAware) PickVictim(contents map[Key]Entry, likelihoods Likelihoods) Key {
	base := p.Base
	if base == nil {
		base = Oldest{}
	}
	if len(contents) == 1 {
		for k := range contents {
			return k
		}
	}

	minScore := 0.0
	first := true
	for k := range contents {
		score := likelihoods[k]
		if first || score < minScore {
			minScore, first = score, false
		}
		_ = k
	}

	pool := make(map[Key]Entry, len(contents))
	for k, e := range contents {
		if likelihoods[k] == minScore {
			pool[k] = e
		}
	}
	return base.PickVictim(pool, likelihoods)
}
