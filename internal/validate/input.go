// Package validate rejects malformed ingestion input before any embedding
// or store call is made. Validation failures are the caller's fault and are
// surfaced as *ValidationError, distinct from backend failures.
package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// MinYear is the earliest plausible occurrence year
	MinYear = 1900

	// Claim text length bounds
	MinClaimLen = 10
	MaxClaimLen = 5000

	// MaxSourceLen caps the normalized platform label
	MaxSourceLen = 100
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".jfif": true,
}

var sourceSanitizer = regexp.MustCompile(`[^\w\s.-]`)

// ValidationError describes rejected input with a human-readable reason
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Year checks that a year is within the plausible range
// [MinYear, current year + 1].
func Year(year int) error {
	max := time.Now().Year() + 1
	if year < MinYear || year > max {
		return &ValidationError{
			Field:  "year",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinYear, max, year),
		}
	}
	return nil
}

// ClaimText trims and checks claim text length bounds
func ClaimText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ValidationError{Field: "claim", Reason: "cannot be empty"}
	}
	if len(text) < MinClaimLen {
		return "", &ValidationError{
			Field:  "claim",
			Reason: fmt.Sprintf("too short (minimum %d characters)", MinClaimLen),
		}
	}
	if len(text) > MaxClaimLen {
		return "", &ValidationError{
			Field:  "claim",
			Reason: fmt.Sprintf("too long (maximum %d characters)", MaxClaimLen),
		}
	}
	return text, nil
}

// Source normalizes a platform label: special characters stripped,
// lowercased, capped at MaxSourceLen. An empty label becomes "unknown"
// rather than an error.
func Source(source string) string {
	source = sourceSanitizer.ReplaceAllString(source, "")
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		return "unknown"
	}
	if len(source) > MaxSourceLen {
		source = source[:MaxSourceLen]
	}
	return source
}

// ImageRef checks that an image reference carries a supported extension
func ImageRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return &ValidationError{Field: "image", Reason: "reference cannot be empty"}
	}
	ext := strings.ToLower(filepath.Ext(ref))
	if !allowedImageExts[ext] {
		return &ValidationError{
			Field:  "image",
			Reason: fmt.Sprintf("unsupported extension %q", ext),
		}
	}
	return nil
}
