package ats

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	readabilityBase  = 80
	readabilityFloor = 50
	longSentence     = 25
)

var (
	bulletLinePattern  = regexp.MustCompile(`(?m)^\s*[•\-*]\s+`)
	misspellingPattern = regexp.MustCompile(`(?i)\b(?:teh|recieve|seperate|occured|accomodate)\b`)
	sentenceSplit      = regexp.MustCompile(`[.!?]+`)
	leadingUpper       = regexp.MustCompile(`^[A-Z]`)
)

type readabilityFindings struct {
	bulletLines     int
	dates           int
	avgSentenceLen  float64
	startsLowercase bool
	doubleSpaces    bool
	misspellings    int
	score           int
}

func inspectReadability(resumeText string) readabilityFindings {
	f := readabilityFindings{
		bulletLines:     len(bulletLinePattern.FindAllStringIndex(resumeText, -1)),
		dates:           len(datePattern.FindAllStringIndex(resumeText, -1)),
		avgSentenceLen:  averageSentenceLength(resumeText),
		startsLowercase: !leadingUpper.MatchString(strings.TrimSpace(resumeText)),
		doubleSpaces:    strings.Contains(resumeText, "  "),
		misspellings:    len(misspellingPattern.FindAllStringIndex(resumeText, -1)),
	}

	score := readabilityBase
	if f.bulletLines > 5 {
		score += 10
	}
	if f.dates > 2 {
		score += 5
	}
	if f.avgSentenceLen > longSentence {
		score -= 10
	}
	if f.startsLowercase {
		score -= 10
	}
	if f.doubleSpaces {
		score -= 5
	}
	score -= 5 * f.misspellings
	f.score = clamp(score, readabilityFloor, 100)
	return f
}

// averageSentenceLength counts space-separated words over sentences longer than
// ten characters. It returns 0 when no sentence qualifies.
func averageSentenceLength(text string) float64 {
	words, sentences := 0, 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(s)) <= 10 {
			continue
		}
		sentences++
		words += len(strings.Split(s, " "))
	}
	if sentences == 0 {
		return 0
	}
	return float64(words) / float64(sentences)
}

// AnalyzeReadability scores consistency and readability of the resume prose.
// The result is always within [50,100].
func AnalyzeReadability(resumeText string) int {
	return inspectReadability(resumeText).score
}
