// Package insight generates optional natural-language summaries of trust
// reports. Summaries are produced after all scoring and constrained to the
// evidence the report already contains; they never feed back into any score.
package insight

import (
	"fmt"
	"strings"

	"github.com/satyalabs/trustmem/internal/model"
)

// BuildPrompt constructs the summarization prompt in strict evidence mode:
// the model may only restate what the report observed, never assert whether
// the underlying claim is true.
func BuildPrompt(report model.TrustReport) string {
	var b strings.Builder

	b.WriteString(`You are summarizing the observed history of a claim. The system tracks where and when claims were seen - it NEVER determines whether a claim is true.

RULES:
1. Only describe occurrences listed below. Do not infer or speculate beyond them.
2. Never say the claim is true or false - only describe its observed spread.
3. If the history is thin, say so explicitly.

Observed history:
`)

	fmt.Fprintf(&b, "- Narrative: %s\n", report.NarrativeID)
	fmt.Fprintf(&b, "- Occurrences: %d\n", report.OccurrenceCount)
	if report.FirstSeen != 0 {
		fmt.Fprintf(&b, "- First seen: %d, last seen: %d\n", report.FirstSeen, report.LastSeen)
	}
	fmt.Fprintf(&b, "- Platforms: %s\n", strings.Join(report.Sources, ", "))
	if report.Stats != nil {
		fmt.Fprintf(&b, "- Threat level: %s, state: %s\n", report.Stats.ThreatLevel, report.Stats.State)
	}

	b.WriteString("\nOccurrences:\n")
	for i, e := range report.Timeline {
		if i >= 10 {
			fmt.Fprintf(&b, "... and %d more\n", len(report.Timeline)-10)
			break
		}
		year := "unknown year"
		if e.Year != 0 {
			year = fmt.Sprintf("%d", e.Year)
		}
		fmt.Fprintf(&b, "- [%s, %s] %s\n", year, e.Source, e.Claim)
	}

	b.WriteString("\nProvide a 3-4 sentence summary of this claim's observed spread over time.")
	return b.String()
}
