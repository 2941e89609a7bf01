package layout

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"liiga-teletext/internal/domain/games"
)

// DisplayWidth counts terminal cells: wide and fullwidth runes take two, combining marks none.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || r == '\u200d' {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// Truncate cuts s to at most n cells.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if DisplayWidth(s) <= n {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := runeWidth(r)
		if used+w > n {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String()
}

// PadRight truncates or space-pads s to exactly n cells.
func PadRight(s string, n int) string {
	s = Truncate(s, n)
	if pad := n - DisplayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// PadLeft right-aligns s in n cells.
func PadLeft(s string, n int) string {
	s = Truncate(s, n)
	if pad := n - DisplayWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// FitGoalTypes joins tags with spaces, dropping tags from the right until the result fits limit cells.
// The first tag is always kept.
func FitGoalTypes(types []games.GoalType, limit int) string {
	for n := len(types); n > 1; n-- {
		if s := games.JoinGoalTypes(types[:n]); DisplayWidth(s) <= limit {
			return s
		}
	}
	if len(types) == 0 {
		return ""
	}
	return types[0].String()
}
