// Package layout computes the column positions of a teletext page for a terminal width.
//
// Columns are zero-based offsets from the start of the line, or from the column origin in wide mode.
// A game occupies one result line followed by goal lines: home scorers start at HomeNameStart and
// away scorers at AwayGoalColumn. Each goal line is "time name", the play icon at a fixed column,
// then the goal-type tags one cell after the icon.
package layout

import (
	"liiga-teletext/internal/domain/games"
)

const (
	ContentMargin = 2

	MinWidth      = 40
	NormalWidth   = 80
	StandardWidth = 100
	ExtendedWidth = 120

	WideMinWidth    = 128
	WideColumnWidth = 60
	WideGap         = 8

	TeamWidth         = 20
	MinTeamWidth      = 6
	MaxPlayIconColumn = 43

	TimeFieldWidth  = 5
	ScoreFieldWidth = 8

	minGoalTypesWidth = 3
)

// Mode selects the page rendering style.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCompact
	ModeWide
)

func (m Mode) String() string {
	switch m {
	case ModeCompact:
		return "compact"
	case ModeWide:
		return "wide"
	default:
		return "normal"
	}
}

// DetailLevel controls annotation density.
type DetailLevel int

const (
	DetailMinimal DetailLevel = iota
	DetailStandard
	DetailExtended
)

func (d DetailLevel) String() string {
	switch d {
	case DetailStandard:
		return "standard"
	case DetailExtended:
		return "extended"
	default:
		return "minimal"
	}
}

// DetailFor maps a terminal width to its detail level.
func DetailFor(width int) DetailLevel {
	switch {
	case width >= ExtendedWidth:
		return DetailExtended
	case width >= StandardWidth:
		return DetailStandard
	default:
		return DetailMinimal
	}
}

// NameCap is the longest scorer name shown at a detail level.
func (d DetailLevel) NameCap() int {
	switch d {
	case DetailExtended:
		return 17
	case DetailStandard:
		return 15
	default:
		return 12
	}
}

// Config is the computed layout for one column of games.
type Config struct {
	Width  int
	Right  int
	Detail DetailLevel

	HomeNameStart  int
	HomeTeamWidth  int
	SeparatorWidth int
	AwayNameStart  int
	AwayTeamWidth  int

	GoalTimeWidth      int
	MaxPlayerNameWidth int
	MaxGoalTypesWidth  int
	PlayIconColumn     int
	AwayGoalColumn     int
	AwayPlayIconColumn int

	TimeColumn  int
	ScoreColumn int

	ShowPlayedTime bool
}

// HomeNameColumn is where home scorer names start.
func (c Config) HomeNameColumn() int {
	return c.HomeNameStart + c.GoalTimeWidth + 1
}

// AwayNameColumn is where away scorer names start.
func (c Config) AwayNameColumn() int {
	return c.AwayGoalColumn + c.GoalTimeWidth + 1
}

// GoalTypesColumn is where the tags of a goal line start for the given side.
func (c Config) GoalTypesColumn(home bool) int {
	if home {
		return c.PlayIconColumn + 2
	}
	return c.AwayPlayIconColumn + 2
}

type profile struct {
	nameCap  int
	typesCap int
	teamCap  int
}

// Compute lays out a single column of games for width. Widths below NormalWidth use the fallback profile
// with a three cell separator and shrunken team fields.
func Compute(width int, list []games.GameData) Config {
	detail := DetailFor(width)
	return compute(width, list, detail, profile{nameCap: detail.NameCap(), typesCap: 6, teamCap: TeamWidth})
}

// Wide is the two column layout used at WideMinWidth and above.
type Wide struct {
	Left        Config
	Right       Config
	RightOrigin int
	Split       int
}

// ComputeWide lays out two columns side by side; the left column receives ceil(n/2) games.
// ok is false when width is too narrow for wide mode.
func ComputeWide(width int, list []games.GameData) (Wide, bool) {
	if width < WideMinWidth {
		return Wide{}, false
	}
	split := SplitWide(len(list))
	colWidth := (width - WideGap) / 2
	if colWidth > WideColumnWidth {
		colWidth = WideColumnWidth
	}
	p := profile{nameCap: 15, typesCap: 6, teamCap: TeamWidth}
	return Wide{
		Left:        compute(colWidth, list[:split], DetailStandard, p),
		Right:       compute(colWidth, list[split:], DetailStandard, p),
		RightOrigin: colWidth + WideGap,
		Split:       split,
	}, true
}

// SplitWide returns how many of n games go to the left column.
func SplitWide(n int) int {
	return (n + 1) / 2
}

func compute(width int, list []games.GameData, detail DetailLevel, p profile) Config {
	if width < MinWidth {
		width = MinWidth
	}
	c := Config{
		Width:          width,
		Right:          width - ContentMargin,
		Detail:         detail,
		HomeNameStart:  ContentMargin,
		GoalTimeWidth:  3,
		ShowPlayedTime: detail != DetailMinimal,
	}
	if detail == DetailExtended {
		c.GoalTimeWidth = 6
	}

	c.ScoreColumn = c.Right - ScoreFieldWidth
	c.TimeColumn = c.ScoreColumn - 1 - TimeFieldWidth

	c.SeparatorWidth = 3
	if width >= NormalWidth {
		c.SeparatorWidth = clamp(3+(width-NormalWidth)/10, 3, 5)
	}
	// team fields must end before the time column
	room := c.TimeColumn - 1 - c.HomeNameStart - c.SeparatorWidth
	team := clamp(room/2, MinTeamWidth, p.teamCap)
	c.HomeTeamWidth = team
	c.AwayTeamWidth = team
	c.AwayNameStart = c.HomeNameStart + c.HomeTeamWidth + c.SeparatorWidth

	names := widestName(list, p.nameCap)
	c.MaxGoalTypesWidth = p.typesCap
	c.PlayIconColumn = min(c.HomeNameColumn()+names+1, MaxPlayIconColumn)
	c.MaxPlayerNameWidth = c.PlayIconColumn - 1 - c.HomeNameColumn()

	c.placeAway()

	// shrink names, then tags, until the away goal line fits
	for c.AwayPlayIconColumn+2+c.MaxGoalTypesWidth > c.Right {
		switch {
		case c.MaxPlayerNameWidth > 4:
			c.MaxPlayerNameWidth--
			c.PlayIconColumn--
		case c.MaxGoalTypesWidth > minGoalTypesWidth:
			c.MaxGoalTypesWidth--
		default:
			return c
		}
		c.placeAway()
	}
	return c
}

// placeAway starts away goals under the away team unless the home goal tags need the room.
func (c *Config) placeAway() {
	c.AwayGoalColumn = max(c.AwayNameStart, c.PlayIconColumn+2+c.MaxGoalTypesWidth+1)
	c.AwayPlayIconColumn = c.AwayNameColumn() + c.MaxPlayerNameWidth + 1
}

// widestName returns the widest scorer name in list, capped; with no goals the cap itself.
func widestName(list []games.GameData, limit int) int {
	widest := 0
	for _, g := range list {
		for _, e := range g.GoalEvents {
			if w := DisplayWidth(e.ScorerName); w > widest {
				widest = w
			}
		}
	}
	if widest == 0 || widest > limit {
		return limit
	}
	return widest
}

// Compact is the one-line-per-game layout.
type Compact struct {
	Start       int
	TeamsWidth  int
	ScoreColumn int
	TimeColumn  int
}

// ComputeCompact lays out compact rows: "HOME-AWAY" abbreviations, score, then start or played time.
func ComputeCompact() Compact {
	c := Compact{Start: ContentMargin, TeamsWidth: 9}
	c.ScoreColumn = c.Start + c.TeamsWidth + 1
	c.TimeColumn = c.ScoreColumn + ScoreFieldWidth + 1
	return c
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
