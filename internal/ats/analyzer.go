package ats

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidWeights is returned when a weighting scheme does not sum to 100.
var ErrInvalidWeights = errors.New("invalid scoring weights")

// Weights are integer percentages applied to the four score dimensions.
type Weights struct {
	Keyword     int `json:"keyword" yaml:"keyword"`
	Section     int `json:"section" yaml:"section"`
	Formatting  int `json:"formatting" yaml:"formatting"`
	Readability int `json:"readability" yaml:"readability"`
}

var (
	// DefaultWeights is the canonical 20/25/30/25 scheme.
	DefaultWeights = Weights{Keyword: 20, Section: 25, Formatting: 30, Readability: 25}
	// LegacyWeights is the keyword-heavy 50/15/20/15 scheme kept for comparison runs.
	LegacyWeights = Weights{Keyword: 50, Section: 15, Formatting: 20, Readability: 15}
)

func (w Weights) Validate() error {
	if w.Keyword < 0 || w.Section < 0 || w.Formatting < 0 || w.Readability < 0 {
		return fmt.Errorf("%w: negative weight", ErrInvalidWeights)
	}
	if sum := w.Keyword + w.Section + w.Formatting + w.Readability; sum != 100 {
		return fmt.Errorf("%w: weights sum to %d", ErrInvalidWeights, sum)
	}
	return nil
}

// ParseWeights resolves a scheme name ("canonical" or "legacy").
func ParseWeights(name string) (Weights, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "canonical", "default":
		return DefaultWeights, nil
	case "legacy":
		return LegacyWeights, nil
	default:
		return Weights{}, fmt.Errorf("%w: unknown scheme %q", ErrInvalidWeights, name)
	}
}

// Combine returns the weighted overall score, rounded half up and clamped to [0,100].
func (w Weights) Combine(b ScoreBreakdown) int {
	total := w.Keyword*b.KeywordMatch +
		w.Section*b.SectionMatch +
		w.Formatting*b.FormattingScore +
		w.Readability*b.ReadabilityConsistency
	return clamp(roundDiv(total, 100), 0, 100)
}

// Engine scores resumes with a fixed weighting scheme. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	weights Weights
}

func NewEngine(weights Weights) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: weights}, nil
}

func (e *Engine) Weights() Weights {
	return e.weights
}

var defaultEngine = &Engine{weights: DefaultWeights}

// Analyze scores resumeText with the canonical weights. jobDescription may be empty.
func Analyze(resumeText, jobDescription string) ResumeAnalysis {
	return defaultEngine.Analyze(resumeText, jobDescription)
}

func (e *Engine) Analyze(resumeText, jobDescription string) ResumeAnalysis {
	keywords := AnalyzeKeywords(resumeText, jobDescription)
	signals := detectSections(resumeText)
	sections := sectionResultFrom(signals)
	formatting := inspectFormatting(resumeText)
	readability := AnalyzeReadability(resumeText)

	breakdown := ScoreBreakdown{
		KeywordMatch:           keywords.Score,
		SectionMatch:           sections.Score,
		FormattingScore:        formatting.score,
		ReadabilityConsistency: readability,
	}

	fb := feedbackInput{
		text:       resumeText,
		keywords:   keywords,
		sections:   sections.Sections,
		signals:    signals,
		breakdown:  breakdown,
		formatting: formatting,
	}

	return ResumeAnalysis{
		ATSScore:         e.weights.Combine(breakdown),
		KeywordsFound:    keywords.Found,
		KeywordsMissing:  keywords.Missing,
		SectionScores:    sections.Sections,
		ScoreBreakdown:   breakdown,
		Suggestions:      fb.suggestions(),
		SpecificFeedback: fb.specificFeedback(),
	}
}
