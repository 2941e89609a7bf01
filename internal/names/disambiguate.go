package names

import (
	"fmt"
	"sort"

	"liiga-teletext/internal/domain/players"
)

const maxPrefixLen = 3

// Fallback is the display name of a scorer missing from the roster.
func Fallback(id int) string {
	return fmt.Sprintf("Pelaaja %d", id)
}

// Disambiguate maps player id to display name for one team. Teammates sharing a last name get
// the shortest unique first-name prefix; everyone else gets the last name alone.
func Disambiguate(roster []players.Player) map[int]string {
	out := make(map[int]string, len(roster))
	groups := make(map[string][]players.Player)
	for _, p := range roster {
		key := Fold(FormatLastName(p.LastName))
		groups[key] = append(groups[key], p)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		group := groups[k]
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		if len(group) == 1 {
			out[group[0].ID] = FormatLastName(group[0].LastName)
			continue
		}
		disambiguateGroup(group, out)
	}
	return out
}

func disambiguateGroup(group []players.Player, out map[int]string) {
	byInitial := make(map[string][]players.Player)
	var initials []string
	for _, p := range group {
		initial := FirstInitial(p.FirstName)
		if initial == "" {
			out[p.ID] = FormatLastName(p.LastName)
			continue
		}
		key := Fold(initial)
		if _, ok := byInitial[key]; !ok {
			initials = append(initials, key)
		}
		byInitial[key] = append(byInitial[key], p)
	}
	sort.Strings(initials)

	for _, key := range initials {
		members := byInitial[key]
		if len(members) == 1 {
			out[members[0].ID] = withSuffix(members[0], FirstInitial(members[0].FirstName))
			continue
		}
		extend(members, 2, out)
	}
}

// extend resolves members sharing a prefix of n-1 characters by trying n characters.
// Players still colliding after maxPrefixLen fall back to the initial.
func extend(members []players.Player, n int, out map[int]string) {
	if n > maxPrefixLen {
		for _, p := range members {
			out[p.ID] = withSuffix(p, FirstInitial(p.FirstName))
		}
		return
	}

	byPrefix := make(map[string][]players.Player)
	var prefixes []string
	for _, p := range members {
		key := Fold(Prefix(p.FirstName, n))
		if _, ok := byPrefix[key]; !ok {
			prefixes = append(prefixes, key)
		}
		byPrefix[key] = append(byPrefix[key], p)
	}
	sort.Strings(prefixes)

	for _, key := range prefixes {
		sub := byPrefix[key]
		if len(sub) == 1 {
			out[sub[0].ID] = withSuffix(sub[0], Prefix(sub[0].FirstName, n))
			continue
		}
		extend(sub, n+1, out)
	}
}

func withSuffix(p players.Player, prefix string) string {
	return FormatLastName(p.LastName) + " " + prefix + "."
}
