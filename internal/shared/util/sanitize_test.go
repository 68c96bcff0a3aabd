package util

import (
	"errors"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: " a/b\\c.docx ", want: "a_b_c.docx"},
		{in: "cv\x00\n.txt", want: "cv.txt"},
		{in: "../secret", err: true},
		{in: "   ", err: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.err {
			if !errors.Is(err, ErrInvalidFileName) {
				t.Fatalf("SanitizeFileName(%q) expected ErrInvalidFileName, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("héllo", 2); got != "hé" {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("Truncate = %q", got)
	}
}
