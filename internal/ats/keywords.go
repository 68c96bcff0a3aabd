package ats

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxFoundKeywords   = 15
	maxMissingKeywords = 10
	maxJobKeywords     = 20

	// defaultKeywordScore applies when there is nothing to match against.
	defaultKeywordScore = 80
)

// actionVerbs lead the action keyword set; feedback also checks them for the
// weak-verbs suggestion.
var actionVerbs = []string{
	"managed", "developed", "implemented", "created", "designed", "led", "achieved",
	"improved", "increased", "reduced", "optimized", "collaborated", "coordinated",
	"supervised", "established", "maintained", "analyzed", "executed", "delivered",
}

var actionKeywords = append(append([]string(nil), actionVerbs...),
	"strategic", "leadership", "communication", "problem-solving", "team",
)

var techKeywords = []string{
	"javascript", "python", "java", "react", "angular", "vue", "node.js", "sql",
	"aws", "azure", "docker", "kubernetes", "git", "agile", "scrum", "api",
	"html", "css", "typescript", "mongodb", "postgresql", "machine learning",
	"data analysis", "project management", "excel", "powerpoint", "salesforce",
}

var (
	jobKeywordPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:experience with|proficient in|knowledge of|familiar with)\s+([^.,\n]+)`),
		regexp.MustCompile(`\b(?:skills?|technologies?|tools?):?\s*([^.;\n]+)`),
		regexp.MustCompile(`\b(?:required|preferred|must have|should have):\s*([^.;\n]+)`),
	}
	jobKeywordSeparator = regexp.MustCompile(`[,&\s]+`)
	jobKeywordStopword  = regexp.MustCompile(`\b(?:and|or|with|in|of|the|a|an)\b`)
)

// BaseKeywords returns a copy of the baseline keyword set in scoring order.
func BaseKeywords() []string {
	out := make([]string, 0, len(actionKeywords)+len(techKeywords))
	out = append(out, actionKeywords...)
	return append(out, techKeywords...)
}

// ExtractJobKeywords pulls candidate terms out of a job description. The result is
// lowercase, deduplicated and holds at most 20 terms.
func ExtractJobKeywords(jobDescription string) []string {
	if strings.TrimSpace(jobDescription) == "" {
		return nil
	}
	lower := strings.ToLower(jobDescription)

	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range jobKeywordPatterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			for _, token := range jobKeywordSeparator.Split(match[1], -1) {
				if utf8.RuneCountInString(token) <= 2 || jobKeywordStopword.MatchString(token) {
					continue
				}
				if _, dup := seen[token]; dup {
					continue
				}
				seen[token] = struct{}{}
				out = append(out, token)
			}
		}
	}
	if len(out) > maxJobKeywords {
		out = out[:maxJobKeywords]
	}
	return out
}

// CandidateKeywords returns the baseline set unioned with the job description terms.
func CandidateKeywords(jobDescription string) []string {
	base := BaseKeywords()
	extra := ExtractJobKeywords(jobDescription)
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, kw := range list {
			key := strings.ToLower(kw)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}

// AnalyzeKeywords scores how many candidate keywords appear in the resume text.
// Matching is a case-insensitive substring test over the whole text.
func AnalyzeKeywords(resumeText, jobDescription string) KeywordResult {
	candidates := CandidateKeywords(jobDescription)
	return matchKeywords(resumeText, candidates)
}

func matchKeywords(resumeText string, candidates []string) KeywordResult {
	if len(candidates) == 0 {
		return KeywordResult{Score: defaultKeywordScore, Found: []string{}, Missing: []string{}}
	}

	textLower := strings.ToLower(resumeText)
	found := make([]string, 0, maxFoundKeywords)
	missing := make([]string, 0, maxMissingKeywords)
	foundCount := 0
	for _, kw := range candidates {
		if strings.Contains(textLower, strings.ToLower(kw)) {
			foundCount++
			if len(found) < maxFoundKeywords {
				found = append(found, kw)
			}
			continue
		}
		if len(missing) < maxMissingKeywords {
			missing = append(missing, kw)
		}
	}

	return KeywordResult{
		Score:      clamp(roundDiv(100*foundCount, len(candidates)), 0, 100),
		Candidates: candidates,
		Found:      found,
		Missing:    missing,
	}
}
