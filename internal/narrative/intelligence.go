package narrative

import (
	"sort"

	"github.com/satyalabs/trustmem/internal/model"
)

// mutationPrefixLen is how many leading characters of a claim count as
// "the same phrasing" when estimating mutation
const mutationPrefixLen = 60

// Intelligence computes per-narrative statistics. Every computation is a
// pure function of the item set and the caller-supplied reference year;
// nothing is persisted and repeated calls yield identical results.
type Intelligence struct {
	threat model.ThreatConfig
}

// NewIntelligence creates the engine with the given threat band boundaries
func NewIntelligence(threat model.ThreatConfig) *Intelligence {
	return &Intelligence{threat: threat}
}

// ComputeStats derives the full statistics bundle for one narrative's items.
// nowYear anchors the decay and lifecycle computations; tests pass a fixed
// year, live callers pass the current one.
func (e *Intelligence) ComputeStats(items []model.Item, nowYear int) model.NarrativeStats {
	var years []int
	sourceSet := make(map[string]bool)
	modalitySet := make(map[string]bool)
	phrasings := make(map[string]bool)

	for _, it := range items {
		if it.Year != 0 {
			years = append(years, it.Year)
		}
		if it.Source != "" {
			sourceSet[it.Source] = true
		}
		if it.Modality != "" {
			modalitySet[string(it.Modality)] = true
		}
		if it.Claim != "" {
			phrasings[claimPrefix(it.Claim)] = true
		}
	}

	var firstSeen, lastSeen int
	if len(years) > 0 {
		firstSeen, lastSeen = years[0], years[0]
		for _, y := range years[1:] {
			if y < firstSeen {
				firstSeen = y
			}
			if y > lastSeen {
				lastSeen = y
			}
		}
	}
	lifespan := 0
	if firstSeen != 0 {
		lifespan = lastSeen - firstSeen
	}

	resurfacing := lifespan >= 1 && len(items) >= 3

	stats := model.NarrativeStats{
		FirstSeen:     firstSeen,
		LastSeen:      lastSeen,
		Lifespan:      lifespan,
		Sources:       sortedKeys(sourceSet),
		Modalities:    sortedKeys(modalitySet),
		MutationScore: len(phrasings),
		Resurfacing:   resurfacing,
		Temporal:      computeTemporalPatterns(items),
	}

	stats.MemoryStrength = computeMemoryStrength(len(items), lifespan, lastSeen, resurfacing, nowYear)
	stats.State = computeState(len(items), lastSeen, resurfacing, nowYear)
	stats.ThreatScore, stats.ThreatLevel = e.computeThreat(stats)
	stats.Strength = computeStrength(len(items), len(stats.Sources), lifespan, resurfacing)
	return stats
}

// computeThreat accumulates the independent weighted threat signals and
// bands the total. The weights model spread (sources), evolution
// (mutation), persistence (lifespan) and return (resurfacing).
func (e *Intelligence) computeThreat(stats model.NarrativeStats) (int, model.ThreatLevel) {
	score := 0

	if stats.Resurfacing {
		score += 30
	}

	switch sources := len(stats.Sources); {
	case sources >= 4:
		score += 30
	case sources == 3:
		score += 20
	case sources == 2:
		score += 10
	}

	switch {
	case stats.MutationScore >= 5:
		score += 25
	case stats.MutationScore >= 3:
		score += 15
	}

	switch {
	case stats.Lifespan >= 3:
		score += 25
	case stats.Lifespan >= 2:
		score += 15
	case stats.Lifespan >= 1:
		score += 10
	}

	switch {
	case score >= e.threat.Critical:
		return score, model.ThreatCritical
	case score >= e.threat.High:
		return score, model.ThreatHigh
	case score >= e.threat.Medium:
		return score, model.ThreatMedium
	default:
		return score, model.ThreatLow
	}
}

// computeStrength is the separate 0-100 popularity composite used for
// ranking. It shares inputs with the threat score but weights them
// differently; the two must not be conflated.
func computeStrength(count, sources, lifespan int, resurfacing bool) int {
	strength := count*10 + sources*15 + lifespan*10
	if resurfacing {
		strength += 30
	}
	if strength > 100 {
		strength = 100
	}
	return strength
}

func claimPrefix(claim string) string {
	runes := []rune(claim)
	if len(runes) > mutationPrefixLen {
		return string(runes[:mutationPrefixLen])
	}
	return claim
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
