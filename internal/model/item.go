package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Modality identifies which kind of content an item carries
type Modality string

const (
	ModalityText       Modality = "text"
	ModalityImage      Modality = "image"
	ModalityVideoFrame Modality = "video_frame"
)

// Embedding dimensions per modality. Text uses a MiniLM-class model,
// images and video frames share a CLIP-class model.
const (
	TextDim  = 384
	ImageDim = 512
	VideoDim = 512
)

// Dim returns the expected embedding dimension for the modality
func (m Modality) Dim() int {
	if m == ModalityText {
		return TextDim
	}
	return ImageDim
}

// Valid reports whether the modality is one of the supported kinds
func (m Modality) Valid() bool {
	switch m {
	case ModalityText, ModalityImage, ModalityVideoFrame:
		return true
	}
	return false
}

// Item is one observed occurrence of a claim: the atomic memory record.
// Items are created once at ingestion and never mutated afterwards.
type Item struct {
	ID          string   `json:"id"`
	Modality    Modality `json:"type"`
	Claim       string   `json:"claim,omitempty"`      // text claims
	ContentRef  string   `json:"path,omitempty"`       // image / frame reference
	Year        int      `json:"year,omitempty"`       // 0 means unknown
	Source      string   `json:"source,omitempty"`     // normalized platform label
	NarrativeID string   `json:"narrative_id"`
	Reinforced  bool     `json:"reinforced"`
	Timestamp   int64    `json:"timestamp,omitempty"`  // ingestion time, unix seconds
}

// Content returns the claim text for text items, the content reference otherwise
func (it Item) Content() string {
	if it.Modality == ModalityText {
		return it.Claim
	}
	return it.ContentRef
}

// Payload converts the item to the flat map stored alongside its vector
func (it Item) Payload() map[string]interface{} {
	p := map[string]interface{}{
		"id":           it.ID,
		"type":         string(it.Modality),
		"narrative_id": it.NarrativeID,
		"reinforced":   it.Reinforced,
	}
	if it.Claim != "" {
		p["claim"] = it.Claim
	}
	if it.ContentRef != "" {
		p["path"] = it.ContentRef
	}
	if it.Year != 0 {
		p["year"] = it.Year
	}
	if it.Source != "" {
		p["source"] = it.Source
		p["platform"] = it.Source // kept separate for future use
	}
	if it.Timestamp != 0 {
		p["timestamp"] = it.Timestamp
	}
	return p
}

// ItemFromPayload rebuilds an item from a stored payload, normalizing the
// loosely typed values that round-trip through the vector store. It returns
// an error when the payload lacks a narrative_id so aggregation can skip
// malformed points; the best-effort item is still returned for callers that
// only need display fields.
func ItemFromPayload(p map[string]interface{}) (Item, error) {
	nid := payloadString(p, "narrative_id")

	it := Item{
		ID:          payloadString(p, "id"),
		Modality:    Modality(payloadString(p, "type")),
		Claim:       payloadString(p, "claim"),
		ContentRef:  payloadString(p, "path"),
		Year:        payloadYear(p),
		Source:      payloadString(p, "source"),
		NarrativeID: nid,
	}
	if b, ok := p["reinforced"].(bool); ok {
		it.Reinforced = b
	}
	switch ts := p["timestamp"].(type) {
	case int64:
		it.Timestamp = ts
	case float64:
		it.Timestamp = int64(ts)
	}

	if nid == "" {
		return it, fmt.Errorf("payload has no narrative_id")
	}
	return it, nil
}

func payloadString(p map[string]interface{}, key string) string {
	if s, ok := p[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// payloadYear tolerates the numeric representations a JSON round-trip can
// produce; anything non-numeric degrades to 0 (unknown year).
func payloadYear(p map[string]interface{}) int {
	switch y := p["year"].(type) {
	case int:
		return y
	case int64:
		return int(y)
	case float64:
		return int(y)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(y)); err == nil {
			return n
		}
	}
	return 0
}

// SearchResult is one similarity hit returned by a memory search
type SearchResult struct {
	Score       float64  `json:"score"`
	NarrativeID string   `json:"narrative_id"`
	Claim       string   `json:"claim,omitempty"`
	ContentRef  string   `json:"path,omitempty"`
	Year        int      `json:"year,omitempty"`
	Source      string   `json:"source,omitempty"`
	Modality    Modality `json:"type"`
}

// LinkResult is the caller-visible outcome of a linking call
type LinkResult struct {
	NarrativeID string `json:"narrative_id"`
	Reinforced  bool   `json:"reinforced"`
}
