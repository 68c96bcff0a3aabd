package ats

// SectionScores holds per-section heuristic scores in [0,100].
type SectionScores struct {
	ContactInfo int `json:"contact_info" yaml:"contact_info"`
	Summary     int `json:"summary" yaml:"summary"`
	Education   int `json:"education" yaml:"education"`
	Skills      int `json:"skills" yaml:"skills"`
	Formatting  int `json:"formatting" yaml:"formatting"`
}

// ScoreBreakdown holds the four weighted dimensions in [0,100].
type ScoreBreakdown struct {
	KeywordMatch           int `json:"keyword_match" yaml:"keyword_match"`
	SectionMatch           int `json:"section_match" yaml:"section_match"`
	FormattingScore        int `json:"formatting_score" yaml:"formatting_score"`
	ReadabilityConsistency int `json:"readability_consistency" yaml:"readability_consistency"`
}

// SpecificFeedback groups the human-readable findings of an analysis.
type SpecificFeedback struct {
	Strengths        []string `json:"strengths" yaml:"strengths"`
	Weaknesses       []string `json:"weaknesses" yaml:"weaknesses"`
	MissingSections  []string `json:"missing_sections" yaml:"missing_sections"`
	FormattingIssues []string `json:"formatting_issues" yaml:"formatting_issues"`
}

// ResumeAnalysis is the result of scoring one resume.
type ResumeAnalysis struct {
	ATSScore         int              `json:"ats_score" yaml:"ats_score"`
	KeywordsFound    []string         `json:"keywords_found" yaml:"keywords_found"`
	KeywordsMissing  []string         `json:"keywords_missing" yaml:"keywords_missing"`
	SectionScores    SectionScores    `json:"section_scores" yaml:"section_scores"`
	ScoreBreakdown   ScoreBreakdown   `json:"score_breakdown" yaml:"score_breakdown"`
	Suggestions      []string         `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	SpecificFeedback SpecificFeedback `json:"specific_feedback" yaml:"specific_feedback"`
}

// KeywordResult is the output of AnalyzeKeywords.
type KeywordResult struct {
	Score int
	// Candidates is the full keyword set the score was computed against.
	Candidates []string
	Found      []string
	Missing    []string
}

// SectionResult is the output of AnalyzeSections.
type SectionResult struct {
	Score    int
	Sections SectionScores
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundDiv returns num/den rounded half up. Both operands must be non-negative.
func roundDiv(num, den int) int {
	return (2*num + den) / (2 * den)
}
