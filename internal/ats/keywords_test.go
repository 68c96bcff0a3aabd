package ats

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseKeywordsShape(t *testing.T) {
	base := BaseKeywords()
	require.Len(t, base, 51)
	assert.Equal(t, "managed", base[0])
	assert.Equal(t, "javascript", base[24])
	assert.Equal(t, "salesforce", base[50])

	base[0] = "mutated"
	assert.Equal(t, "managed", BaseKeywords()[0])
}

func TestActionVerbsLeadActionKeywords(t *testing.T) {
	require.Len(t, actionVerbs, 19)
	require.Len(t, actionKeywords, 24)
	assert.Equal(t, actionVerbs, actionKeywords[:len(actionVerbs)])
	assert.Equal(t, "team", actionKeywords[len(actionKeywords)-1])
}

func TestExtractJobKeywords(t *testing.T) {
	cases := []struct {
		name string
		jd   string
		want []string
	}{
		{name: "empty", jd: "", want: nil},
		{name: "no phrases", jd: "We are a friendly company.", want: nil},
		{
			name: "experience and skills",
			jd:   "Skills: Go, Rust & TypeScript; Experience with gRPC.",
			want: []string{"grpc", "rust", "typescript"},
		},
		{
			name: "stopwords and short tokens",
			jd:   "Experience with the cloud and an api",
			want: []string{"cloud", "api"},
		},
		{
			name: "dedup case insensitive",
			jd:   "Required: python, Python, PYTHON",
			want: []string{"python"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractJobKeywords(tc.jd))
		})
	}
}

func TestExtractJobKeywordsCapsAtTwenty(t *testing.T) {
	terms := make([]string, 30)
	for i := range terms {
		terms[i] = fmt.Sprintf("alpha%02d", i+1)
	}
	got := ExtractJobKeywords("Required: " + strings.Join(terms, ", "))
	require.Len(t, got, 20)
	assert.Equal(t, "alpha01", got[0])
	assert.Equal(t, "alpha20", got[19])
}

func TestCandidateKeywordsUnion(t *testing.T) {
	// Every required term is already part of the baseline.
	assert.Len(t, CandidateKeywords("Required: Python, Docker, Kubernetes"), 51)

	got := CandidateKeywords("Experience with Terraform and Helm.\nRequired: Python, Docker, Kubernetes")
	require.Len(t, got, 53)
	assert.Equal(t, []string{"terraform", "helm"}, got[51:])
}

func TestAnalyzeKeywordsEmptyResume(t *testing.T) {
	res := AnalyzeKeywords("", "")
	assert.Equal(t, 0, res.Score)
	assert.Empty(t, res.Found)
	assert.Len(t, res.Missing, 10)
	assert.Equal(t, "managed", res.Missing[0])
}

func TestAnalyzeKeywordsSubstringMatching(t *testing.T) {
	res := AnalyzeKeywords("Managed a team. Developed APIs in Java.", "")
	assert.Equal(t, []string{"managed", "developed", "team", "java", "api"}, res.Found)
	assert.Equal(t, 10, res.Score)
}

func TestAnalyzeKeywordsCaps(t *testing.T) {
	res := AnalyzeKeywords(strings.Join(BaseKeywords(), " "), "")
	assert.Equal(t, 100, res.Score)
	assert.Len(t, res.Found, 15)
	assert.Empty(t, res.Missing)
}

func TestMatchKeywordsEmptyCandidates(t *testing.T) {
	res := matchKeywords("anything", nil)
	assert.Equal(t, 80, res.Score)
	assert.Empty(t, res.Found)
	assert.Empty(t, res.Missing)
}

func TestJobDescriptionLowersKeywordScore(t *testing.T) {
	resume := "Managed a team. Developed APIs in Java."
	without := AnalyzeKeywords(resume, "")
	with := AnalyzeKeywords(resume, "Experience with Terraform and Helm.\nRequired: Python, Docker, Kubernetes")
	require.Greater(t, without.Score, 0)
	assert.Less(t, with.Score, without.Score)
	assert.Equal(t, without.Found, with.Found)
}

func TestKeywordScoreIsMonotonic(t *testing.T) {
	candidates := CandidateKeywords("")
	text := "Profile"
	prev := AnalyzeKeywords(text, "").Score
	for _, kw := range candidates {
		text += " " + kw
		score := AnalyzeKeywords(text, "").Score
		assert.GreaterOrEqual(t, score, prev, "adding %q", kw)
		prev = score
	}
	assert.Equal(t, 100, prev)
}
