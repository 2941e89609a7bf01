package teams

import (
	"strings"
	"unicode"
)

// abbreviations maps normalized team names, including common long forms, to teletext identifiers.
var abbreviations = map[string]string{
	"tappara":          "TAP",
	"hifk":             "IFK",
	"ifk":              "IFK",
	"tps":              "TPS",
	"jyp":              "JYP",
	"jyp jyväskylä":    "JYP",
	"ilves":            "ILV",
	"kalpa":            "KAL",
	"kärpät":           "KÄR",
	"oulun kärpät":     "KÄR",
	"lukko":            "LUK",
	"rauman lukko":     "LUK",
	"pelicans":         "PEL",
	"lahti pelicans":   "PEL",
	"saipa":            "SAI",
	"sport":            "SPO",
	"vaasan sport":     "SPO",
	"hpk":              "HPK",
	"jukurit":          "JUK",
	"mikkelin jukurit": "JUK",
	"ässät":            "ÄSS",
	"porin ässät":      "ÄSS",
	"kookoo":           "KOO",
	"k-espoo":          "KES",
	"kiekko-espoo":     "KES",
}

// Abbreviation returns the compact-mode identifier for a team display name.
// Unknown teams use their first three uppercase letters, falling back to the whole name.
func Abbreviation(name string) string {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if abbr, ok := abbreviations[key]; ok {
		return abbr
	}

	var b strings.Builder
	count := 0
	for _, r := range name {
		if unicode.IsUpper(r) && unicode.IsLetter(r) {
			b.WriteRune(r)
			count++
			if count == 3 {
				return b.String()
			}
		}
	}
	return name
}
