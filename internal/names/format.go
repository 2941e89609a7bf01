// Package names builds scorer display names, telling apart teammates who share a last name.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// chars splits s into user-perceived characters: a base rune plus any combining marks after it.
func chars(s string) []string {
	var out []string
	for _, r := range s {
		if len(out) > 0 && isMark(r) {
			out[len(out)-1] += string(r)
			continue
		}
		out = append(out, string(r))
	}
	return out
}

func isMark(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me)
}

// capitalize upper-cases the first character and lower-cases the rest.
func capitalize(cs []string) string {
	if len(cs) == 0 {
		return ""
	}
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	return upper.String(cs[0]) + lower.String(strings.Join(cs[1:], ""))
}

// FormatLastName keeps the last whitespace-separated token, capitalized.
func FormatLastName(lastName string) string {
	fields := strings.Fields(norm.NFC.String(lastName))
	if len(fields) == 0 {
		return ""
	}
	return capitalize(chars(fields[len(fields)-1]))
}

// firstToken returns the leading part of a first name up to a space, hyphen or apostrophe.
func firstToken(firstName string) string {
	s := strings.TrimSpace(norm.NFC.String(firstName))
	if i := strings.IndexAny(s, " \t-'’"); i >= 0 {
		return s[:i]
	}
	return s
}

// FirstInitial is the upper-cased first letter of the first name's leading token, or "" when the token
// does not start with a letter.
func FirstInitial(firstName string) string {
	cs := chars(firstToken(firstName))
	if len(cs) == 0 {
		return ""
	}
	first := []rune(cs[0])[0]
	if !unicode.IsLetter(first) {
		return ""
	}
	return cases.Upper(language.Und).String(cs[0])
}

// Prefix returns up to n characters of the first name's leading token, capitalized.
// It returns "" when the token does not start with a letter.
func Prefix(firstName string, n int) string {
	if n <= 0 || FirstInitial(firstName) == "" {
		return ""
	}
	cs := chars(firstToken(firstName))
	if len(cs) > n {
		cs = cs[:n]
	}
	return capitalize(cs)
}

// Fold is the case-insensitive comparison key for a name fragment.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
