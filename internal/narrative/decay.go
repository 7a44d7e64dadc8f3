package narrative

// computeMemoryStrength models how "alive" a narrative is as three
// independent additive terms: reinforcement by repetition (item count plus
// lifespan), a bonus for returning, and decay after three silent years.
// A narrative that exists never scores below 1.
func computeMemoryStrength(count, lifespan, lastSeen int, resurfacing bool, nowYear int) int {
	strength := count + lifespan

	if resurfacing {
		strength += 5
	}
	if lastSeen != 0 && nowYear-lastSeen >= 3 {
		strength -= 3
	}

	if strength < 1 {
		return 1
	}
	return strength
}
