package envelope

import (
	"regexp"
	"strings"
)

var (
	lineBreakPattern = regexp.MustCompile(`\r\n|\r|\n`)
	bracketReplacer  = strings.NewReplacer("[", "(", "]", ")")
)

// SanitizeHeaderPart makes free-form metadata safe for the bracketed header:
// line breaks become spaces, brackets become parentheses, whitespace runs
// (including Unicode separators) collapse to one space, and the result is trimmed.
func SanitizeHeaderPart(value string) string {
	value = lineBreakPattern.ReplaceAllString(value, " ")
	value = bracketReplacer.Replace(value)
	return strings.Join(strings.Fields(value), " ")
}
