package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestNewCodeSummary(t *testing.T) {
	s, err := NewCodeSummary("main.cbl", "/src/main.cbl", "Batch billing program.")
	require.NoError(t, err)

	assert.Equal(t, "main.cbl", s.Filename)
	assert.Equal(t, "/src/main.cbl", s.Filepath)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestNewCodeSummary_EmptyFields(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		path     string
		summary  string
		field    string
	}{
		{"empty filename", "", "/src/a.cbl", "summary", "filename"},
		{"empty filepath", "a.cbl", "", "summary", "filepath"},
		{"empty summary", "a.cbl", "/src/a.cbl", "", "summary"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCodeSummary(tc.filename, tc.path, tc.summary)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestValidate_ConfidenceScoreRange(t *testing.T) {
	s, err := NewCodeSummary("a.cbl", "/src/a.cbl", "summary")
	require.NoError(t, err)

	s.ConfidenceScore = floatPtr(0.85)
	assert.NoError(t, s.Validate())

	s.ConfidenceScore = floatPtr(0.0)
	assert.NoError(t, s.Validate())
	s.ConfidenceScore = floatPtr(1.0)
	assert.NoError(t, s.Validate())

	s.ConfidenceScore = floatPtr(1.5)
	var vErr *ValidationError
	require.ErrorAs(t, s.Validate(), &vErr)
	assert.Equal(t, "confidence_score", vErr.Field)

	s.ConfidenceScore = floatPtr(-0.1)
	assert.Error(t, s.Validate())
}

func TestValidate_Classification(t *testing.T) {
	s, err := NewCodeSummary("a.cbl", "/src/a.cbl", "summary")
	require.NoError(t, err)

	s.Classification = ClassificationJobControl
	assert.NoError(t, s.Validate())

	s.Classification = Classification("Mainframe")
	var vErr *ValidationError
	require.ErrorAs(t, s.Validate(), &vErr)
	assert.Equal(t, "classification", vErr.Field)
}

func TestSuggestedClassificationIsIndependent(t *testing.T) {
	// Free-text oracle labels are never checked against the enum.
	s, err := NewCodeSummary("a.cbl", "/src/a.cbl", "summary")
	require.NoError(t, err)

	s.SuggestedClassification = "CICS Screen Handler"
	assert.NoError(t, s.Validate())
}

func TestProperties(t *testing.T) {
	s, err := NewCodeSummary("a.cbl", "/src/a.cbl", "Batch billing program.")
	require.NoError(t, err)
	s.Language = "cobol"
	s.ConfidenceScore = floatPtr(0.9)
	s.Classification = ClassificationBusinessLogic
	s.SuggestedClassification = "BusinessLogic"

	props := s.Properties()
	assert.Equal(t, "a.cbl", props["filename"])
	assert.Equal(t, "/src/a.cbl", props["filepath"])
	assert.Equal(t, "Batch billing program.", props["summary"])
	assert.Equal(t, "cobol", props["language"])
	assert.Equal(t, 0.9, props["confidence_score"])
	assert.Equal(t, "BusinessLogic", props["classification"])
	assert.Contains(t, props, "created_at")
}

func TestProperties_OmitsUnsetOptionals(t *testing.T) {
	s, err := NewCodeSummary("a.cbl", "/src/a.cbl", "summary")
	require.NoError(t, err)

	props := s.Properties()
	assert.NotContains(t, props, "language")
	assert.NotContains(t, props, "confidence_score")
	assert.NotContains(t, props, "classification")
	assert.NotContains(t, props, "suggested_classification")
}

func TestString_ListsFields(t *testing.T) {
	s, err := NewCodeSummary("a.cbl", "/src/a.cbl", "summary text")
	require.NoError(t, err)
	s.Classification = ClassificationScreen

	out := s.String()
	assert.Contains(t, out, `filename="a.cbl"`)
	assert.Contains(t, out, "classification=Screen")
}

func TestParseClassification(t *testing.T) {
	for _, valid := range []string{"Screen", "DataModel", "API", "BusinessLogic", "Database", "JobControl"} {
		c, err := ParseClassification(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, c.String())
	}

	_, err := ParseClassification("screen")
	assert.Error(t, err)
	_, err = ParseClassification("")
	assert.Error(t, err)
}
