package ats

import (
	"regexp"
	"strings"
)

const (
	strengthThreshold = 80
	weaknessThreshold = 60
	maxSuggestedTerms = 5
)

var quantifiedPattern = regexp.MustCompile(`(?i)\d+%|\$\d|\b\d+\+?\s+(?:years|users|clients|projects|people|team members)\b`)

type feedbackInput struct {
	text       string
	keywords   KeywordResult
	sections   SectionScores
	signals    sectionSignals
	breakdown  ScoreBreakdown
	formatting formattingFindings
}

type thresholdRule struct {
	score    func(in feedbackInput) int
	strength string
	weakness string
}

var thresholdRules = []thresholdRule{
	{
		score:    func(in feedbackInput) int { return in.breakdown.KeywordMatch },
		strength: "Strong keyword coverage for ATS filters",
		weakness: "Low keyword coverage; many relevant terms are missing",
	},
	{
		score:    func(in feedbackInput) int { return in.sections.ContactInfo },
		strength: "Complete contact information",
		weakness: "Contact information is incomplete",
	},
	{
		score:    func(in feedbackInput) int { return in.sections.Summary },
		strength: "Detailed professional summary",
		weakness: "No professional summary section",
	},
	{
		score:    func(in feedbackInput) int { return in.sections.Education },
		strength: "Education section includes dates",
		weakness: "Education section is missing",
	},
	{
		score:    func(in feedbackInput) int { return in.sections.Skills },
		strength: "Well-populated skills section",
		weakness: "Skills section is missing",
	},
	{
		score:    func(in feedbackInput) int { return in.breakdown.FormattingScore },
		strength: "Clean, ATS-friendly formatting",
		weakness: "Formatting may confuse ATS parsers",
	},
	{
		score:    func(in feedbackInput) int { return in.breakdown.ReadabilityConsistency },
		strength: "Consistent, readable writing",
		weakness: "Readability and consistency need work",
	},
}

func (in feedbackInput) suggestions() []string {
	out := []string{}
	if in.sections.ContactInfo < 70 {
		out = append(out, "Add complete contact details: a professional email, a phone number and your LinkedIn profile")
	}
	if in.sections.Summary < 70 {
		out = append(out, "Add a professional summary at the top that highlights your experience and goals")
	}
	if in.sections.Education < 75 {
		out = append(out, "Include an education section with your degree, institution and graduation year")
	}
	if in.sections.Skills < 75 {
		out = append(out, "Add a dedicated skills section listing the technologies and tools you use")
	}
	if in.breakdown.KeywordMatch < 60 {
		msg := "Mirror the wording of the job description to include more relevant keywords"
		if terms := in.keywords.Missing; len(terms) > 0 {
			if len(terms) > maxSuggestedTerms {
				terms = terms[:maxSuggestedTerms]
			}
			msg += ", for example: " + strings.Join(terms, ", ")
		}
		out = append(out, msg)
	}
	if in.breakdown.FormattingScore < 70 {
		out = append(out, "Simplify formatting: avoid tables and special characters, and use standard bullet points")
	}
	if in.breakdown.ReadabilityConsistency < 70 {
		out = append(out, "Shorten long sentences and fix spelling mistakes")
	}
	if !quantifiedPattern.MatchString(in.text) {
		out = append(out, "Quantify achievements with numbers such as percentages, amounts or team sizes")
	}
	if !containsAny(strings.ToLower(in.text), actionVerbs) {
		out = append(out, "Start bullet points with action verbs such as developed, led or improved")
	}
	if len(out) == 0 {
		out = append(out, "Tailor the resume to each job description to keep the ATS score high")
	}
	return out
}

func (in feedbackInput) specificFeedback() SpecificFeedback {
	fb := SpecificFeedback{
		Strengths:        []string{},
		Weaknesses:       []string{},
		MissingSections:  in.missingSections(),
		FormattingIssues: in.formatting.issues(),
	}
	for _, rule := range thresholdRules {
		score := rule.score(in)
		switch {
		case score >= strengthThreshold:
			fb.Strengths = append(fb.Strengths, rule.strength)
		case score < weaknessThreshold:
			fb.Weaknesses = append(fb.Weaknesses, rule.weakness)
		}
	}
	if fb.FormattingIssues == nil {
		fb.FormattingIssues = []string{}
	}
	return fb
}

func (in feedbackInput) missingSections() []string {
	out := []string{}
	if !in.signals.hasEmail && !in.signals.hasPhone {
		out = append(out, "Contact Information")
	}
	if !in.signals.hasSummary {
		out = append(out, "Summary")
	}
	if !in.signals.hasEducation {
		out = append(out, "Education")
	}
	if !in.signals.hasSkills {
		out = append(out, "Skills")
	}
	return out
}

func containsAny(textLower string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(textLower, t) {
			return true
		}
	}
	return false
}
