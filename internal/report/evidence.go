package report

import "github.com/satyalabs/trustmem/internal/model"

// EvidenceStrength condenses a stats bundle into a 0-100 display score:
// source spread and modality spread weigh heaviest, longevity and rephrasing
// add on top, with a flat bonus for resurfacing. Display only; it never feeds
// back into threat scoring.
func EvidenceStrength(stats model.NarrativeStats) int {
	score := len(stats.Sources)*10 +
		len(stats.Modalities)*15 +
		stats.Lifespan*5 +
		stats.MutationScore*4
	if stats.Resurfacing {
		score += 15
	}
	if score > 100 {
		return 100
	}
	return score
}
