package insight

import (
	"fmt"
	"strings"

	"github.com/satyalabs/trustmem/internal/model"
	"github.com/satyalabs/trustmem/internal/report"
)

// NewSummarizer creates a summarizer from configuration. An empty provider
// name disables insight generation and returns nil, which callers must treat
// as "no summarizer" rather than an error.
func NewSummarizer(cfg model.InsightConfig) (report.Summarizer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown insight provider: %s (supported: openai)", cfg.Provider)
	}
}
