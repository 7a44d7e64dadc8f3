package model

// NarrativeState is the derived lifecycle classification of a narrative.
// It is recomputed from the item set on every evaluation, never persisted.
type NarrativeState string

const (
	StateNew        NarrativeState = "NEW"
	StateActive     NarrativeState = "ACTIVE"
	StateDormant    NarrativeState = "DORMANT"
	StateResurfaced NarrativeState = "RESURFACED"
)

// ThreatLevel bands the threat score for alerting
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "LOW"
	ThreatMedium   ThreatLevel = "MEDIUM"
	ThreatHigh     ThreatLevel = "HIGH"
	ThreatCritical ThreatLevel = "CRITICAL"
)

// TemporalPatterns describes when a narrative has been active
type TemporalPatterns struct {
	ActivityYears   []int `json:"activity_years"`   // sorted distinct years
	ResurfacingGaps []int `json:"resurfacing_gaps"` // consecutive year gaps
	Seasonal        bool  `json:"seasonal"`         // any gap >= 1 year
}

// NarrativeStats is a pure function of a narrative's item set at query time.
// Nothing here is stored; two computations over the same items and reference
// year yield identical results.
type NarrativeStats struct {
	FirstSeen      int              `json:"first_seen,omitempty"`
	LastSeen       int              `json:"last_seen,omitempty"`
	Lifespan       int              `json:"lifespan"`
	Sources        []string         `json:"sources"`
	Modalities     []string         `json:"modalities"`
	MutationScore  int              `json:"mutation_score"`
	Resurfacing    bool             `json:"resurfacing"`
	Temporal       TemporalPatterns `json:"temporal_patterns"`
	MemoryStrength int              `json:"memory_strength"`
	State          NarrativeState   `json:"state"`
	ThreatScore    int              `json:"threat_score"`
	ThreatLevel    ThreatLevel      `json:"threat_level"`
	Strength       int              `json:"strength"`
}

// NarrativeSummary is the compact per-narrative view returned by listings
type NarrativeSummary struct {
	NarrativeID string   `json:"narrative_id"`
	MemoryCount int      `json:"memory_count"`
	FirstSeen   int      `json:"first_seen,omitempty"`
	LastSeen    int      `json:"last_seen,omitempty"`
	Sources     []string `json:"sources"`
	Modalities  []string `json:"modalities"`
}
