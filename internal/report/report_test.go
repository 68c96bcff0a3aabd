package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"resume-ats/internal/ats"
)

func sampleEntries() []Entry {
	analysis := ats.Analyze("Jane Doe\njane@example.com\n\nSkills\nPython, SQL, AWS\n\nEducation\nB.S. Computer Science", "Experience with Terraform and Helm.\nRequired: Python, Docker, Kubernetes")
	return []Entry{
		{File: "jane.txt", Analysis: &analysis},
		{File: "broken.pdf", Error: "text extraction failed"},
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"": Text, "TXT": Text, "json": JSON, " yml ": YAML, "yaml": YAML} {
		got, err := ParseFormat(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteJSONUsesSnakeCaseKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, sampleEntries()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	analysis, ok := decoded[0]["analysis"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, analysis, "ats_score")
	assert.Contains(t, analysis, "score_breakdown")
	assert.Equal(t, "text extraction failed", decoded[1]["error"])
	assert.NotContains(t, decoded[1], "analysis")
}

func TestWriteYAMLRoundTripsScore(t *testing.T) {
	entries := sampleEntries()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, entries))

	var decoded []Entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	require.NotNil(t, decoded[0].Analysis)
	assert.Equal(t, entries[0].Analysis.ATSScore, decoded[0].Analysis.ATSScore)
	assert.Contains(t, buf.String(), "keywords_missing:")
}

func TestWriteText(t *testing.T) {
	entries := sampleEntries()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Text, entries))

	out := buf.String()
	assert.Contains(t, out, "== jane.txt ==")
	assert.Contains(t, out, "ATS score: ")
	assert.Contains(t, out, "terraform")
	assert.Contains(t, out, "== broken.pdf ==\nerror: text extraction failed")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestWriteUnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, Format("xml"), nil))
}
