package games

import (
	"errors"
	"time"

	"liiga-teletext/internal/domain/players"
)

// ScheduleResponse is the payload of the games-by-date endpoint.
type ScheduleResponse struct {
	Games            []ScheduleGame `json:"games"`
	PreviousGameDate string         `json:"previousGameDate,omitempty"`
	NextGameDate     string         `json:"nextGameDate,omitempty"`
}

// ScheduleGame is one game as returned by the listing endpoints.
type ScheduleGame struct {
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

// ScheduleTeam is the home or away side of a game.
type ScheduleTeam struct {
	TeamID               string      `json:"teamId,omitempty"`
	TeamPlaceholder      string      `json:"teamPlaceholder,omitempty"`
	TeamName             string      `json:"teamName,omitempty"`
	Goals                int         `json:"goals"`
	GoalEvents           []GoalEvent `json:"goalEvents"`
	Ranking              *int        `json:"ranking,omitempty"`
	PowerplayInstances   int         `json:"powerplayInstances"`
	PowerplayGoals       int         `json:"powerplayGoals"`
	ShortHandedInstances int         `json:"shortHandedInstances"`
	ShortHandedGoals     int         `json:"shortHandedGoals"`
}

// GoalEvent is one scoring event as served by the API.
type GoalEvent struct {
	ScorerPlayerID     int             `json:"scorerPlayerId"`
	LogTime            string          `json:"logTime"`
	GameTime           int             `json:"gameTime"`
	Period             int             `json:"period"`
	EventID            int             `json:"eventId"`
	HomeTeamScore      int             `json:"homeTeamScore"`
	AwayTeamScore      int             `json:"awayTeamScore"`
	WinningGoal        bool            `json:"winningGoal"`
	GoalTypes          []string        `json:"goalTypes"`
	AssistantPlayerIDs []int           `json:"assistantPlayerIds"`
	VideoClipURL       string          `json:"videoClipUrl,omitempty"`
	ScorerPlayer       *players.Player `json:"scorerPlayer,omitempty"`
}

// ErrInvalidGame reports a game violating the started/ended invariants.
var ErrInvalidGame = errors.New("invalid game state")

// Validate checks ended => started and ended => end is set.
func (g ScheduleGame) Validate() error {
	if g.Ended && !g.Started {
		return ErrInvalidGame
	}
	if g.Ended && g.End == nil {
		return ErrInvalidGame
	}
	return nil
}

// IsLive reports started and not ended.
func (g ScheduleGame) IsLive() bool {
	return g.Started && !g.Ended
}

// ScoreType derives the display state of the game.
func (g ScheduleGame) ScoreType() ScoreType {
	switch {
	case g.Ended:
		return ScoreFinal
	case g.Started:
		return ScoreOngoing
	default:
		return ScoreScheduled
	}
}

// DisplayName falls back from the team name to the placeholder and then the id.
func (t ScheduleTeam) DisplayName() string {
	switch {
	case t.TeamName != "":
		return t.TeamName
	case t.TeamPlaceholder != "":
		return t.TeamPlaceholder
	default:
		return t.TeamID
	}
}

// HasGoalEvents reports whether either side has scoring events.
func (g ScheduleGame) HasGoalEvents() bool {
	return len(g.HomeTeam.GoalEvents) > 0 || len(g.AwayTeam.GoalEvents) > 0
}

// Clone returns a deep copy of the response.
func (r ScheduleResponse) Clone() ScheduleResponse {
	out := r
	if r.Games != nil {
		out.Games = make([]ScheduleGame, len(r.Games))
		for i, g := range r.Games {
			out.Games[i] = g.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the game.
func (g ScheduleGame) Clone() ScheduleGame {
	out := g
	if g.End != nil {
		end := *g.End
		out.End = &end
	}
	out.HomeTeam = g.HomeTeam.Clone()
	out.AwayTeam = g.AwayTeam.Clone()
	return out
}

// Clone returns a deep copy of the team.
func (t ScheduleTeam) Clone() ScheduleTeam {
	out := t
	if t.Ranking != nil {
		ranking := *t.Ranking
		out.Ranking = &ranking
	}
	if t.GoalEvents != nil {
		out.GoalEvents = make([]GoalEvent, len(t.GoalEvents))
		for i, e := range t.GoalEvents {
			out.GoalEvents[i] = e.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the event.
func (e GoalEvent) Clone() GoalEvent {
	out := e
	if e.GoalTypes != nil {
		out.GoalTypes = append([]string(nil), e.GoalTypes...)
	}
	if e.AssistantPlayerIDs != nil {
		out.AssistantPlayerIDs = append([]int(nil), e.AssistantPlayerIDs...)
	}
	if e.ScorerPlayer != nil {
		p := e.ScorerPlayer.Clone()
		out.ScorerPlayer = &p
	}
	return out
}
