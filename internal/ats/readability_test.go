package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageSentenceLength(t *testing.T) {
	assert.Equal(t, 0.0, averageSentenceLength(""))
	assert.Equal(t, 0.0, averageSentenceLength("Short. Tiny!"))
	assert.Equal(t, 6.0, averageSentenceLength("This is a sentence here. Short. Another one that is long enough!"))
}

func TestAnalyzeReadability(t *testing.T) {
	bullets := "Jane Smith\n- Built services Jan 2020\n- Led migrations Feb 2021\n- Improved latency Mar 2022\n- Reduced costs\n- Mentored engineers\n- Wrote docs"

	cases := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 70},
		{name: "plain", text: "Jane Smith", want: 80},
		{name: "bullets and dates", text: bullets, want: 95},
		{name: "double space", text: "Jane  Smith", want: 75},
		{name: "misspelling", text: "Jane will recieve mail", want: 75},
		{name: "floor", text: "teh teh teh teh teh teh teh", want: 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AnalyzeReadability(tc.text))
		})
	}
}

func TestReadabilityLongSentences(t *testing.T) {
	long := "Jane wrote"
	for i := 0; i < 30; i++ {
		long += " more"
	}
	assert.Equal(t, 70, AnalyzeReadability(long+"."))
}
