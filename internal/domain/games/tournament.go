package games

import (
	"encoding/json"
	"strings"
)

// Tournament is the competition phase tag (the API calls it "serie").
type Tournament string

const (
	TournamentRegular        Tournament = "runkosarja"
	TournamentPlayoffs       Tournament = "playoffs"
	TournamentPlayout        Tournament = "playout"
	TournamentQualifications Tournament = "qualifications"
	TournamentPreseason      Tournament = "valmistavat_ottelut"
)

var tournamentAliases = map[string]Tournament{
	"runkosarja":          TournamentRegular,
	"regular":             TournamentRegular,
	"playoffs":            TournamentPlayoffs,
	"playout":             TournamentPlayout,
	"qualifications":      TournamentQualifications,
	"liigakarsinta":       TournamentQualifications,
	"valmistavat_ottelut": TournamentPreseason,
	"preseason":           TournamentPreseason,
	"practice":            TournamentPreseason,
}

// ParseTournament normalizes any casing or alias; unknown tags are kept lowercased.
func ParseTournament(raw string) Tournament {
	key := strings.ToLower(strings.TrimSpace(raw))
	if t, ok := tournamentAliases[key]; ok {
		return t
	}
	return Tournament(key)
}

// UnmarshalJSON accepts the upper-case tags served by the games endpoint.
func (t *Tournament) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = ParseTournament(raw)
	return nil
}

// Label is the user-facing subheader text.
func (t Tournament) Label() string {
	switch t {
	case TournamentRegular:
		return "RUNKOSARJA"
	case TournamentPlayoffs:
		return "PLAYOFFS"
	case TournamentPlayout:
		return "PLAYOUT-OTTELUT"
	case TournamentQualifications:
		return "LIIGAKARSINTA"
	case TournamentPreseason:
		return "HARJOITUSOTTELUT"
	default:
		return strings.ToUpper(string(t))
	}
}

// FinishedType tells how a completed game was decided.
type FinishedType string

const (
	FinishedRegulation FinishedType = "ENDED_DURING_REGULAR_GAME_TIME"
	FinishedOvertime   FinishedType = "ENDED_DURING_EXTENDED_GAME_TIME"
	FinishedShootout   FinishedType = "ENDED_DURING_WINNING_SHOT_COMPETITION"
)

// UnmarshalJSON also accepts the short tags regulation/overtime/shootout.
func (f *FinishedType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch strings.ToLower(raw) {
	case "regulation":
		*f = FinishedRegulation
	case "overtime":
		*f = FinishedOvertime
	case "shootout":
		*f = FinishedShootout
	default:
		*f = FinishedType(raw)
	}
	return nil
}
