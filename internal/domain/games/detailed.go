package games

import (
	"time"

	"liiga-teletext/internal/domain/players"
)

// DetailedGame is the game record of the game-detail endpoint.
type DetailedGame struct {
	ID           int          `json:"id"`
	Season       int          `json:"season"`
	Start        time.Time    `json:"start"`
	End          *time.Time   `json:"end,omitempty"`
	HomeTeam     ScheduleTeam `json:"homeTeam"`
	AwayTeam     ScheduleTeam `json:"awayTeam"`
	FinishedType FinishedType `json:"finishedType,omitempty"`
	Started      bool         `json:"started"`
	Ended        bool         `json:"ended"`
	GameTime     int          `json:"gameTime"`
	Serie        Tournament   `json:"serie"`
}

// DetailedGameResponse carries the game together with both rosters.
type DetailedGameResponse struct {
	Game            DetailedGame   `json:"game"`
	HomeTeamPlayers players.Roster `json:"homeTeamPlayers"`
	AwayTeamPlayers players.Roster `json:"awayTeamPlayers"`
}

// IsLive reports started and not ended.
func (g DetailedGame) IsLive() bool {
	return g.Started && !g.Ended
}

// Clone returns a deep copy of the response.
func (r DetailedGameResponse) Clone() DetailedGameResponse {
	out := r
	if r.Game.End != nil {
		end := *r.Game.End
		out.Game.End = &end
	}
	out.Game.HomeTeam = r.Game.HomeTeam.Clone()
	out.Game.AwayTeam = r.Game.AwayTeam.Clone()
	out.HomeTeamPlayers = r.HomeTeamPlayers.Clone()
	out.AwayTeamPlayers = r.AwayTeamPlayers.Clone()
	return out
}
