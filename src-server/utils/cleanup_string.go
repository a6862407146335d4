package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// strips surrounding spaces, NFC-normalizes, collapses inner runs of whitespace on single-line input
func CleanupString(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	if !strings.ContainsAny(s, "\r\n") {
		s = strings.Join(strings.Fields(s), " ")
	}
	return s
}

// uppercase first letter of every word
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
