// Package model holds the validated per-file analysis result and its
// classification taxonomy.
package model

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError reports a CodeSummary field that failed construction-time
// validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid code summary: %s: %s", e.Field, e.Reason)
}

// CodeSummary is one file's analysis result. It lives only long enough to be
// flattened into a graph node's property map; the node is the durable
// representation.
type CodeSummary struct {
	Filename string
	Filepath string
	Summary  string
	Language string

	// CreatedAt is set once at construction and never mutated.
	CreatedAt time.Time

	// ConfidenceScore, when present, lies in [0.0, 1.0].
	ConfidenceScore *float64

	// Classification is the hard enum value; SuggestedClassification is the
	// oracle's own free-text label. They are deliberately independent.
	Classification          Classification
	SuggestedClassification string
}

// NewCodeSummary builds a validated summary with CreatedAt defaulted to now.
// Optional fields can be set afterwards; call Validate again if they are.
func NewCodeSummary(filename, path, summary string) (*CodeSummary, error) {
	s := &CodeSummary{
		Filename:  filename,
		Filepath:  path,
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate enforces the construction invariants: required fields non-empty,
// confidence score in the closed unit interval, classification in the enum.
func (s *CodeSummary) Validate() error {
	if s.Filename == "" {
		return &ValidationError{Field: "filename", Reason: "must not be empty"}
	}
	if s.Filepath == "" {
		return &ValidationError{Field: "filepath", Reason: "must not be empty"}
	}
	if s.Summary == "" {
		return &ValidationError{Field: "summary", Reason: "must not be empty"}
	}
	if s.ConfidenceScore != nil && (*s.ConfidenceScore < 0.0 || *s.ConfidenceScore > 1.0) {
		return &ValidationError{
			Field:  "confidence_score",
			Reason: fmt.Sprintf("%v is outside [0.0, 1.0]", *s.ConfidenceScore),
		}
	}
	if s.Classification != "" && !s.Classification.Valid() {
		return &ValidationError{
			Field:  "classification",
			Reason: fmt.Sprintf("unknown value %q", s.Classification),
		}
	}
	return nil
}

// Properties flattens the summary into the property map persisted on the
// graph node. Optional fields are omitted when unset.
func (s *CodeSummary) Properties() map[string]any {
	props := map[string]any{
		"filename":   s.Filename,
		"filepath":   s.Filepath,
		"summary":    s.Summary,
		"created_at": s.CreatedAt.Format(time.RFC3339),
	}
	if s.Language != "" {
		props["language"] = s.Language
	}
	if s.ConfidenceScore != nil {
		props["confidence_score"] = *s.ConfidenceScore
	}
	if s.Classification != "" {
		props["classification"] = s.Classification.String()
	}
	if s.SuggestedClassification != "" {
		props["suggested_classification"] = s.SuggestedClassification
	}
	return props
}

func (s *CodeSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CodeSummary(filename=%q, filepath=%q, summary_length=%d", s.Filename, s.Filepath, len(s.Summary))
	if s.Language != "" {
		fmt.Fprintf(&b, ", language=%q", s.Language)
	}
	fmt.Fprintf(&b, ", created_at=%s", s.CreatedAt.Format(time.RFC3339))
	if s.ConfidenceScore != nil {
		fmt.Fprintf(&b, ", confidence_score=%.2f", *s.ConfidenceScore)
	}
	if s.Classification != "" {
		fmt.Fprintf(&b, ", classification=%s", s.Classification)
	}
	if s.SuggestedClassification != "" {
		fmt.Fprintf(&b, ", suggested_classification=%q", s.SuggestedClassification)
	}
	b.WriteString(")")
	return b.String()
}
