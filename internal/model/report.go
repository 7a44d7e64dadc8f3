package model

// ReportStatus distinguishes a real report from the empty-history sentinel
type ReportStatus string

const (
	StatusHistoryFound ReportStatus = "history_found"
	StatusNoHistory    ReportStatus = "no_history"
)

// TimelineEntry is one occurrence in a trust report timeline. Entries keep
// their own narrative id: the timeline deliberately includes related claims
// from neighboring narratives, and consumers can filter on it.
type TimelineEntry struct {
	Year        int     `json:"year,omitempty"`
	Source      string  `json:"source,omitempty"`
	Claim       string  `json:"claim,omitempty"`
	NarrativeID string  `json:"narrative_id"`
	Score       float64 `json:"score"`
}

// RiskAssessment is the occurrence-times-spread risk band of a report
type RiskAssessment struct {
	Score int    `json:"risk_score"`
	Level string `json:"risk_level"`
}

// ResurgenceAssessment scores how likely a narrative is to keep returning
type ResurgenceAssessment struct {
	Score int    `json:"resurgence_score"`
	Risk  string `json:"resurgence_risk"`
}

// Responsibility carries the human-review guidance attached to every report
type Responsibility struct {
	EvidenceStrength string `json:"evidence_strength"`
	HumanReview      string `json:"human_review"`
	PrivacyNote      string `json:"privacy_note"`
}

// InsightSummary is an optional LLM-generated narrative summary. It is
// produced after all scoring and never feeds back into any score.
type InsightSummary struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Summary  string `json:"summary"`
}

// TrustReport is the consolidated answer to "have we seen this claim before".
// When Status is StatusNoHistory only Message is populated; that is a normal
// outcome, not a failure.
type TrustReport struct {
	Status  ReportStatus `json:"status"`
	Message string       `json:"message,omitempty"`

	NarrativeID      string               `json:"narrative_id,omitempty"`
	OccurrenceCount  int                  `json:"occurrence_count,omitempty"`
	FirstSeen        int                  `json:"first_seen,omitempty"`
	LastSeen         int                  `json:"last_seen,omitempty"`
	Sources          []string             `json:"sources_seen,omitempty"`
	Timeline         []TimelineEntry      `json:"timeline,omitempty"`
	Stats            *NarrativeStats      `json:"stats,omitempty"`
	EvidenceStrength int                  `json:"evidence_strength,omitempty"`
	Risk             *RiskAssessment      `json:"risk,omitempty"`
	Resurgence       *ResurgenceAssessment `json:"resurgence,omitempty"`
	Responsibility   *Responsibility      `json:"responsibility,omitempty"`
	Insight          string               `json:"insight,omitempty"`
	LLM              *InsightSummary      `json:"llm,omitempty"`
}

// ClusterSummary describes the whole narrative ecosystem at a glance
type ClusterSummary struct {
	TotalNarratives      int            `json:"total_narratives"`
	TotalMemories        int            `json:"total_memories"`
	AvgNarrativeSize     float64        `json:"avg_narrative_size"`
	LargestNarrative     int            `json:"largest_narrative"`
	ModalityDistribution map[string]int `json:"modality_distribution"`
	YearlyActivity       map[int]int    `json:"yearly_activity"`
}

// ViralNarrative is one entry in the viral detection ranking
type ViralNarrative struct {
	NarrativeID    string  `json:"narrative_id"`
	RecentMentions int     `json:"recent_mentions"`
	TotalMentions  int     `json:"total_mentions"`
	Velocity       float64 `json:"velocity"`
	Platforms      int     `json:"platforms"`
	RiskScore      float64 `json:"risk_score"`
}

// PlatformRisk aggregates narrative exposure for a single platform
type PlatformRisk struct {
	Platform         string `json:"platform"`
	UniqueNarratives int    `json:"unique_narratives"`
	TotalMentions    int    `json:"total_mentions"`
	HighRiskCount    int    `json:"high_risk_count"`
	RiskScore        int    `json:"risk_score"`
	RiskLevel        string `json:"risk_level"`
}

// Campaign is a potential coordinated push: several distinct narratives
// appearing on the same platform in the same year.
type Campaign struct {
	Year              int      `json:"year"`
	Platform          string   `json:"platform"`
	NarrativeCount    int      `json:"narrative_count"`
	NarrativeIDs      []string `json:"narrative_ids"`
	CoordinationScore int      `json:"coordination_score"`
}
