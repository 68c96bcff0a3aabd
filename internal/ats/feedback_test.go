package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackForEmptyResume(t *testing.T) {
	res := Analyze("", "")

	require.NotEmpty(t, res.Suggestions)
	assert.Contains(t, res.Suggestions[0], "contact details")
	assert.Contains(t, res.Suggestions, "Mirror the wording of the job description to include more relevant keywords, for example: managed, developed, implemented, created, designed")

	fb := res.SpecificFeedback
	assert.Equal(t, []string{"Contact Information", "Summary", "Education", "Skills"}, fb.MissingSections)
	assert.Empty(t, fb.Strengths)
	assert.Contains(t, fb.Weaknesses, "Contact information is incomplete")
	assert.Contains(t, fb.Weaknesses, "Formatting may confuse ATS parsers")
	assert.Len(t, fb.FormattingIssues, 3)
}

func TestFeedbackForStrongResume(t *testing.T) {
	res := Analyze(strongResume()+strings.Join(BaseKeywords(), " "), "")

	assert.Equal(t, 100, res.ScoreBreakdown.KeywordMatch)
	assert.Equal(t, []string{"Tailor the resume to each job description to keep the ATS score high"}, res.Suggestions)

	fb := res.SpecificFeedback
	assert.Len(t, fb.Strengths, len(thresholdRules))
	assert.Empty(t, fb.Weaknesses)
	assert.Empty(t, fb.MissingSections)
	assert.Empty(t, fb.FormattingIssues)
	assert.NotNil(t, fb.FormattingIssues)
}

func TestSuggestionsForMetricsAndVerbs(t *testing.T) {
	res := Analyze("Jane Smith wrote code", "")
	assert.Contains(t, res.Suggestions, "Quantify achievements with numbers such as percentages, amounts or team sizes")
	assert.Contains(t, res.Suggestions, "Start bullet points with action verbs such as developed, led or improved")

	res = Analyze("Jane Smith developed code for 12 clients", "")
	for _, s := range res.Suggestions {
		assert.NotContains(t, s, "Quantify")
		assert.NotContains(t, s, "action verbs")
	}
}
