package policy

// Largest evicts the key whose value has the greatest size estimate.
// Ties resolve to the lowest key.
type Largest struct{}

// PickVictim implements Policy.
func (Largest) PickVictim(contents map[Key]Entry, _ Likelihoods) Key {
	var victim Key
	var victimSize int
	first := true
	for k, e := range contents {
		if first || e.Size > victimSize || (e.Size == victimSize && k < victim) {
			victim, victimSize, first = k, e.Size, false
		}
	}
	return victim
}

// Smallest is symmetric to Largest: it evicts the key with the smallest
// size estimate, ties resolving to the lowest key.
type Smallest struct{}

// PickVictim implements Policy.
func (Smallest) PickVictim(contents map[Key]Entry, _ Likelihoods) Key {
	var victim Key
	var victimSize int
	first := true
	for k, e := range contents {
		if first || e.Size < victimSize || (e.Size == victimSize && k < victim) {
			victim, victimSize, first = k, e.Size, false
		}
	}
	return victim
}
