package teletext

import "liiga-teletext/internal/domain/games"

// RowKind is the closed set of content rows.
type RowKind int

const (
	RowGame RowKind = iota
	RowError
	RowFutureGamesHeader
)

// Row is one content row: a game result, an error message or the future-games heading.
type Row struct {
	Kind    RowKind
	Game    games.GameData
	Message string
}

// GameRow wraps a game.
func GameRow(g games.GameData) Row {
	return Row{Kind: RowGame, Game: g}
}

// ErrorRow wraps a user-facing error message.
func ErrorRow(msg string) Row {
	return Row{Kind: RowError, Message: msg}
}

// FutureGamesRow is the heading shown above upcoming games.
func FutureGamesRow(msg string) Row {
	return Row{Kind: RowFutureGamesHeader, Message: msg}
}

// goalLines is the number of scorer lines a game needs.
func goalLines(g games.GameData) int {
	home, away := 0, 0
	for _, e := range g.GoalEvents {
		if e.IsHomeTeam {
			home++
		} else {
			away++
		}
	}
	return max(home, away)
}
