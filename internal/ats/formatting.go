package ats

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	formattingBase  = 90
	formattingFloor = 40
)

var (
	namePattern   = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)
	bulletPattern = regexp.MustCompile(`[•\-*]\s+`)
	datePattern   = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{4}\b`)
)

type formattingFindings struct {
	garbled    bool
	hasTabs    bool
	fewLines   bool
	tooShort   bool
	noName     bool
	hasBullets bool
	hasDates   bool
	score      int
}

func inspectFormatting(resumeText string) formattingFindings {
	f := formattingFindings{
		garbled:    strings.ContainsRune(resumeText, '�') || strings.ContainsRune(resumeText, '□'),
		hasTabs:    strings.Contains(resumeText, "\t"),
		fewLines:   len(strings.Split(resumeText, "\n")) < 5,
		tooShort:   utf8.RuneCountInString(resumeText) < 200,
		noName:     !namePattern.MatchString(resumeText),
		hasBullets: bulletPattern.MatchString(resumeText),
		hasDates:   datePattern.MatchString(resumeText),
	}

	score := formattingBase
	if f.garbled {
		score -= 20
	}
	if f.hasTabs {
		score -= 10
	}
	if f.fewLines {
		score -= 15
	}
	if f.tooShort {
		score -= 25
	}
	if f.noName {
		score -= 15
	}
	if f.hasBullets {
		score += 5
	}
	if f.hasDates {
		score += 5
	}
	f.score = clamp(score, formattingFloor, 100)
	return f
}

// issues lists one message per deduction that fired, most severe first.
func (f formattingFindings) issues() []string {
	var out []string
	if f.tooShort {
		out = append(out, "Resume text is very short; extraction may have failed or content is missing")
	}
	if f.garbled {
		out = append(out, "Unreadable characters detected; the file may not parse cleanly in ATS systems")
	}
	if f.fewLines {
		out = append(out, "Very few line breaks; content may be laid out in columns or text boxes")
	}
	if f.noName {
		out = append(out, "No full name detected; put your name on its own line at the top")
	}
	if f.hasTabs {
		out = append(out, "Tab characters detected; tables and tab alignment are often misread by ATS systems")
	}
	return out
}

// AnalyzeFormatting estimates how cleanly the resume text was extracted and laid
// out. The result is always within [40,100].
func AnalyzeFormatting(resumeText string) int {
	return inspectFormatting(resumeText).score
}
