package util

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidFileName is returned for names that are empty or attempt traversal.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName removes path separators and control characters and rejects
// traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}

// Truncate shortens s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
