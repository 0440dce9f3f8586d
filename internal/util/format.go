package util

import (
	"unicode/utf8"
)

// TruncateContent shortens s to maxLength runes, marking the cut with "...".
func TruncateContent(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	
	runes := []rune(s)
	return string(runes[:maxLength]) + "..."
}

func StringPointer(s string) *string {
	return &s
}

// OptionalString returns nil for an empty string.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func DerefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
