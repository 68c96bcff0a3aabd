// Package report renders scoring results for terminals and files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"resume-ats/internal/ats"
)

// Format selects an output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	Text Format = "text"
)

// ParseFormat accepts json, yaml/yml and text/txt, case-insensitively.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml or text)", raw)
}

// Entry is the outcome of scoring one source file.
type Entry struct {
	File     string              `json:"file" yaml:"file"`
	Analysis *ats.ResumeAnalysis `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Error    string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// Write renders entries in the given format. JSON and YAML emit a list even
// for a single entry so batch output stays machine-readable.
func Write(w io.Writer, format Format, entries []Entry) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case Text:
		for i, e := range entries {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err := writeText(w, e); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeText(w io.Writer, e Entry) error {
	var b strings.Builder
	if e.File != "" {
		fmt.Fprintf(&b, "== %s ==\n", e.File)
	}
	if e.Error != "" {
		fmt.Fprintf(&b, "error: %s\n", e.Error)
		_, err := io.WriteString(w, b.String())
		return err
	}
	if e.Analysis == nil {
		b.WriteString("no result\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	a := e.Analysis
	bd := a.ScoreBreakdown
	sec := a.SectionScores
	fmt.Fprintf(&b, "ATS score: %d/100\n", a.ATSScore)
	fmt.Fprintf(&b, "Breakdown: keywords %d | sections %d | formatting %d | readability %d\n",
		bd.KeywordMatch, bd.SectionMatch, bd.FormattingScore, bd.ReadabilityConsistency)
	fmt.Fprintf(&b, "Sections:  contact %d | summary %d | education %d | skills %d | formatting %d\n",
		sec.ContactInfo, sec.Summary, sec.Education, sec.Skills, sec.Formatting)
	fmt.Fprintf(&b, "Keywords found (%d): %s\n", len(a.KeywordsFound), joinOrNone(a.KeywordsFound))
	fmt.Fprintf(&b, "Keywords missing (%d): %s\n", len(a.KeywordsMissing), joinOrNone(a.KeywordsMissing))

	fb := a.SpecificFeedback
	writeList(&b, "Strengths", fb.Strengths)
	writeList(&b, "Weaknesses", fb.Weaknesses)
	writeList(&b, "Missing sections", fb.MissingSections)
	writeList(&b, "Formatting issues", fb.FormattingIssues)
	writeList(&b, "Suggestions", a.Suggestions)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
