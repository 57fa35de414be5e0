package policy

// Oldest evicts the key with the smallest InsertedAt timestamp. It ignores
// likelihoods entirely. Ties (equal timestamps) resolve to the lowest key.
type Oldest struct{}

// PickVictim implements Policy.
func (Oldest) PickVictim(contents map[Key]Entry, _ Likelihoods) Key {
	var victim Key
	var victimAt int64
	first := true
	for k, e := range contents {
		if first || e.InsertedAt < victimAt || (e.InsertedAt == victimAt && k < victim) {
			victim, victimAt, first = k, e.InsertedAt, false
		}
	}
	return victim
}
