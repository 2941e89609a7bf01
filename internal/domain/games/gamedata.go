package games

import (
	"strings"
	"time"
)

// ScoreType is the display state of a game.
type ScoreType int

const (
	ScoreScheduled ScoreType = iota
	ScoreOngoing
	ScoreFinal
)

func (s ScoreType) String() string {
	switch s {
	case ScoreOngoing:
		return "ongoing"
	case ScoreFinal:
		return "final"
	default:
		return "scheduled"
	}
}

// GoalType is a goal tag the page knows how to render.
type GoalType int

const (
	GoalPowerPlay GoalType = iota + 1
	GoalPowerPlay2
	GoalShortHanded
	GoalEmptyNet
	GoalPenaltyShot
	GoalOwnGoal
)

var goalTypeTags = map[string]GoalType{
	"YV":  GoalPowerPlay,
	"YV2": GoalPowerPlay2,
	"AV":  GoalShortHanded,
	"IM":  GoalEmptyNet,
	"VT":  GoalPenaltyShot,
	"TM":  GoalOwnGoal,
}

// ParseGoalType recognizes YV, YV2, AV, IM, VT and TM; other tags (EV, MV, RV, RL, ...) are not displayed.
func ParseGoalType(tag string) (GoalType, bool) {
	gt, ok := goalTypeTags[strings.ToUpper(strings.TrimSpace(tag))]
	return gt, ok
}

func (g GoalType) String() string {
	switch g {
	case GoalPowerPlay:
		return "YV"
	case GoalPowerPlay2:
		return "YV2"
	case GoalShortHanded:
		return "AV"
	case GoalEmptyNet:
		return "IM"
	case GoalPenaltyShot:
		return "VT"
	case GoalOwnGoal:
		return "TM"
	default:
		return ""
	}
}

// FilterGoalTypes keeps recognized tags in their original order, dropping duplicates.
func FilterGoalTypes(tags []string) []GoalType {
	var out []GoalType
	seen := make(map[GoalType]bool, len(tags))
	for _, tag := range tags {
		gt, ok := ParseGoalType(tag)
		if !ok || seen[gt] {
			continue
		}
		seen[gt] = true
		out = append(out, gt)
	}
	return out
}

// JoinGoalTypes renders tags separated by single spaces.
func JoinGoalTypes(types []GoalType) string {
	parts := make([]string, 0, len(types))
	for _, gt := range types {
		parts = append(parts, gt.String())
	}
	return strings.Join(parts, " ")
}

// GoalEventData is a goal ready for display.
type GoalEventData struct {
	ScorerPlayerID int
	ScorerName     string
	Minute         int
	Period         int
	GameTime       int
	EventID        int
	HomeTeamScore  int
	AwayTeamScore  int
	IsWinningGoal  bool
	GoalTypes      []GoalType
	IsHomeTeam     bool
	VideoClipURL   string
}

// GameData is one game as shown on a page.
type GameData struct {
	ID         int
	Season     int
	HomeTeam   string
	AwayTeam   string
	Time       string
	Result     string
	ScoreType  ScoreType
	IsOvertime bool
	IsShootout bool
	Serie      Tournament
	GoalEvents []GoalEventData
	PlayedTime int
	Start      time.Time
}

// HomeGoals returns the home team's events in display order.
func (g GameData) HomeGoals() []GoalEventData {
	return g.goalsFor(true)
}

// AwayGoals returns the away team's events in display order.
func (g GameData) AwayGoals() []GoalEventData {
	return g.goalsFor(false)
}

func (g GameData) goalsFor(home bool) []GoalEventData {
	var out []GoalEventData
	for _, e := range g.GoalEvents {
		if e.IsHomeTeam == home {
			out = append(out, e)
		}
	}
	return out
}

// CloneGoalEvents returns a deep copy of a display event list.
func CloneGoalEvents(events []GoalEventData) []GoalEventData {
	if events == nil {
		return nil
	}
	out := make([]GoalEventData, len(events))
	for i, e := range events {
		out[i] = e
		if e.GoalTypes != nil {
			out[i].GoalTypes = append([]GoalType(nil), e.GoalTypes...)
		}
	}
	return out
}
