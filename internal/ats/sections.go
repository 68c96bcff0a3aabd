package ats

import (
	"regexp"
	"strings"
)

// formattingPlaceholder fills SectionScores.Formatting; the real formatting score
// comes from AnalyzeFormatting and is never blended into the section score.
const formattingPlaceholder = 85

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`\+91[-.\s]?\d{10}|(?:\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	summaryHeading  = regexp.MustCompile(`\b(?:summary|objective|profile|about)\b`)
	educationMarker = regexp.MustCompile(`\b(?:education|degree|university|college|bachelor|master|phd)\b`)
	yearPattern     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	skillsHeading   = regexp.MustCompile(`\b(?:skills|technical skills|core competencies|technologies)\b`)
	skillVocabulary = regexp.MustCompile(`\b(?:javascript|python|java|react|sql|excel|leadership|communication)\b`)
)

type sectionSignals struct {
	hasEmail      bool
	hasPhone      bool
	hasLinkedIn   bool
	hasSummary    bool
	wordCount     int
	hasEducation  bool
	hasYear       bool
	hasSkills     bool
	skillMentions int
}

func detectSections(resumeText string) sectionSignals {
	lower := strings.ToLower(resumeText)
	return sectionSignals{
		hasEmail:      emailPattern.MatchString(resumeText),
		hasPhone:      phonePattern.MatchString(resumeText),
		hasLinkedIn:   strings.Contains(lower, "linkedin"),
		hasSummary:    summaryHeading.MatchString(lower),
		wordCount:     len(strings.Fields(lower)),
		hasEducation:  educationMarker.MatchString(lower),
		hasYear:       yearPattern.MatchString(lower),
		hasSkills:     skillsHeading.MatchString(lower),
		skillMentions: len(skillVocabulary.FindAllStringIndex(lower, -1)),
	}
}

func (s sectionSignals) contactScore() int {
	score := 0
	if s.hasEmail {
		score += 40
	}
	if s.hasPhone {
		score += 40
	}
	if s.hasLinkedIn {
		score += 20
	}
	return clamp(score, 0, 100)
}

func (s sectionSignals) summaryScore() int {
	switch {
	case !s.hasSummary:
		return 30
	case s.wordCount > 300:
		return 85
	default:
		return 70
	}
}

func (s sectionSignals) educationScore() int {
	switch {
	case !s.hasEducation:
		return 40
	case s.hasYear:
		return 90
	default:
		return 75
	}
}

func (s sectionSignals) skillsScore() int {
	switch {
	case !s.hasSkills:
		return 40
	case s.skillMentions > 8:
		return 90
	case s.skillMentions > 4:
		return 75
	default:
		return 60
	}
}

// AnalyzeSections scores the structural sections of a resume.
func AnalyzeSections(resumeText string) SectionResult {
	return sectionResultFrom(detectSections(resumeText))
}

func sectionResultFrom(signals sectionSignals) SectionResult {
	sections := SectionScores{
		ContactInfo: signals.contactScore(),
		Summary:     signals.summaryScore(),
		Education:   signals.educationScore(),
		Skills:      signals.skillsScore(),
		Formatting:  formattingPlaceholder,
	}
	return SectionResult{
		Score:    boostedSectionScore(sections),
		Sections: sections,
	}
}

// boostedSectionScore is round(mean(contact, summary, education, skills) * 1.1),
// capped at 100. Computed in integers: sum/4*11/10 == sum*11/40.
func boostedSectionScore(s SectionScores) int {
	sum := s.ContactInfo + s.Summary + s.Education + s.Skills
	return clamp(roundDiv(sum*11, 40), 0, 100)
}
