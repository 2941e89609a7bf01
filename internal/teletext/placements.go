package teletext

import (
	"fmt"
	"strconv"
	"strings"

	"liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/domain/teams"
	"liiga-teletext/internal/render"
	"liiga-teletext/internal/teletext/layout"
)

const (
	contentTop  = 3
	footerHints = "q=Lopeta  ←→=Sivu  Shift+←→=Päivä  r=Päivitä"
	overtimeTag = " ja"
	shootoutTag = " vl"
)

var (
	styleHeader    = render.Style{FG: render.ColorWhite, BG: render.ColorBlue, Bold: true}
	styleSubheader = render.Style{FG: render.ColorGreen}
	styleText      = render.Style{FG: render.ColorWhite}
	styleFinal     = render.Style{FG: render.ColorYellow}
	styleScorer    = render.Style{FG: render.ColorCyan}
	styleGoalTypes = render.Style{FG: render.ColorYellow}
	styleError     = render.Style{FG: render.ColorRed}
	styleFuture    = render.Style{FG: render.ColorCyan, Bold: true}
)

// Placements renders the current page into screen placements. Each screen row is produced once.
func (p *Page) Placements() []render.Placement {
	out := p.headerPlacements()
	visible := p.VisibleRows()
	row := contentTop

	switch {
	case p.compact:
		cfg := layout.ComputeCompact()
		for _, r := range visible {
			out, row = p.appendCompactRow(out, r, cfg, row)
		}
	case p.WideActive():
		out, row = p.appendWide(out, visible, row)
	default:
		cfg := layout.Compute(p.width, p.gameData())
		for _, r := range visible {
			out, row = p.appendRow(out, r, cfg, 0, row)
		}
	}

	if p.showFooter {
		footer := row
		if !p.ignoreHeightLimit {
			footer = max(row, p.height-1)
		}
		out = append(out, render.Placement{Row: footer, Col: 0, Text: layout.PadRight(" "+footerHints, p.width), Style: styleHeader})
	}
	return out
}

func (p *Page) headerPlacements() []render.Placement {
	number := strconv.Itoa(p.number)
	header := layout.PadRight(" "+p.header, p.width-len(number)-1) + number + " "
	counter := fmt.Sprintf("%d/%d", p.current+1, p.TotalPages())
	return []render.Placement{
		{Row: 0, Col: 0, Text: header, Style: styleHeader},
		{Row: 1, Col: layout.ContentMargin, Text: layout.Truncate(p.subheader, p.width-len(counter)-2*layout.ContentMargin-1), Style: styleSubheader},
		{Row: 1, Col: p.width - layout.ContentMargin - len(counter), Text: counter, Style: styleText},
	}
}

// gameData collects every game on the page so column positions stay fixed across pages.
func (p *Page) gameData() []games.GameData {
	var out []games.GameData
	for _, r := range p.rows {
		if r.Kind == RowGame {
			out = append(out, r.Game)
		}
	}
	return out
}

func (p *Page) appendMessage(out []render.Placement, r Row, origin, row int) ([]render.Placement, int) {
	switch r.Kind {
	case RowError:
		out = append(out, render.Placement{Row: row, Col: origin + layout.ContentMargin, Text: layout.Truncate(r.Message, p.width-2*layout.ContentMargin), Style: styleError})
		return out, row + 2
	default:
		out = append(out, render.Placement{Row: row, Col: origin + layout.ContentMargin, Text: layout.Truncate(r.Message, p.width-2*layout.ContentMargin), Style: styleFuture})
		return out, row + 1
	}
}

func (p *Page) appendRow(out []render.Placement, r Row, cfg layout.Config, origin, row int) ([]render.Placement, int) {
	if r.Kind != RowGame {
		return p.appendMessage(out, r, origin, row)
	}
	g := r.Game
	out = append(out,
		render.Placement{Row: row, Col: origin + cfg.HomeNameStart, Text: layout.PadRight(g.HomeTeam, cfg.HomeTeamWidth), Style: styleText},
		render.Placement{Row: row, Col: origin + cfg.HomeNameStart + cfg.HomeTeamWidth + cfg.SeparatorWidth/2, Text: "-", Style: styleText},
		render.Placement{Row: row, Col: origin + cfg.AwayNameStart, Text: layout.PadRight(g.AwayTeam, cfg.AwayTeamWidth), Style: styleText},
	)
	if t := timeText(g, cfg.ShowPlayedTime); t != "" {
		out = append(out, render.Placement{Row: row, Col: origin + cfg.TimeColumn, Text: layout.PadLeft(t, layout.TimeFieldWidth), Style: styleText})
	}
	if score, st := scoreText(g); score != "" {
		out = append(out, render.Placement{Row: row, Col: origin + cfg.ScoreColumn, Text: layout.Truncate(score, layout.ScoreFieldWidth), Style: st})
	}
	row++

	home, away := g.HomeGoals(), g.AwayGoals()
	for i := 0; i < max(len(home), len(away)); i++ {
		if i < len(home) {
			out = p.appendGoal(out, home[i], cfg, origin+cfg.HomeNameStart, origin+cfg.PlayIconColumn, row)
		}
		if i < len(away) {
			out = p.appendGoal(out, away[i], cfg, origin+cfg.AwayGoalColumn, origin+cfg.AwayPlayIconColumn, row)
		}
		row++
	}
	return out, row + 1
}

// appendGoal writes "time name" from col, the play icon at iconCol and the tags one cell after it.
func (p *Page) appendGoal(out []render.Placement, e games.GoalEventData, cfg layout.Config, col, iconCol, row int) []render.Placement {
	scorer := styleScorer
	scorer.Bold = e.IsWinningGoal
	out = append(out,
		render.Placement{Row: row, Col: col, Text: layout.PadLeft(goalTime(e, cfg.Detail), cfg.GoalTimeWidth), Style: styleText},
		render.Placement{Row: row, Col: col + cfg.GoalTimeWidth + 1, Text: layout.Truncate(e.ScorerName, cfg.MaxPlayerNameWidth), Style: scorer},
	)
	if e.VideoClipURL != "" {
		icon := styleText
		if !p.disableVideoLinks {
			icon.Link = e.VideoClipURL
		}
		out = append(out, render.Placement{Row: row, Col: iconCol, Text: render.PlayIcon, Style: icon})
	}
	if tags := layout.FitGoalTypes(e.GoalTypes, cfg.MaxGoalTypesWidth); tags != "" {
		out = append(out, render.Placement{Row: row, Col: iconCol + 2, Text: tags, Style: styleGoalTypes})
	}
	return out
}

func (p *Page) appendCompactRow(out []render.Placement, r Row, cfg layout.Compact, row int) ([]render.Placement, int) {
	if r.Kind != RowGame {
		return p.appendMessage(out, r, 0, row)
	}
	g := r.Game
	teamsText := teams.Abbreviation(g.HomeTeam) + "-" + teams.Abbreviation(g.AwayTeam)
	out = append(out, render.Placement{Row: row, Col: cfg.Start, Text: layout.PadRight(teamsText, cfg.TeamsWidth), Style: styleText})
	if score, st := scoreText(g); score != "" {
		out = append(out, render.Placement{Row: row, Col: cfg.ScoreColumn, Text: score, Style: st})
	}
	if t := timeText(g, true); t != "" {
		out = append(out, render.Placement{Row: row, Col: cfg.TimeColumn, Text: t, Style: styleText})
	}
	return out, row + 1
}

// appendWide draws message rows across the page, then splits the games into two columns.
func (p *Page) appendWide(out []render.Placement, visible []Row, row int) ([]render.Placement, int) {
	var gameRows []Row
	for _, r := range visible {
		if r.Kind == RowGame {
			gameRows = append(gameRows, r)
			continue
		}
		out, row = p.appendMessage(out, r, 0, row)
	}
	all := p.gameData()
	wide, _ := layout.ComputeWide(p.width, all)
	split := layout.SplitWide(len(gameRows))

	left, right := row, row
	for _, r := range gameRows[:split] {
		out, left = p.appendRow(out, r, wide.Left, 0, left)
	}
	for _, r := range gameRows[split:] {
		out, right = p.appendRow(out, r, wide.Right, wide.RightOrigin, right)
	}
	return out, max(left, right)
}

func timeText(g games.GameData, showPlayed bool) string {
	switch g.ScoreType {
	case games.ScoreScheduled:
		return g.Time
	case games.ScoreOngoing:
		if showPlayed {
			return fmt.Sprintf("%d:%02d", g.PlayedTime/60, g.PlayedTime%60)
		}
	}
	return ""
}

func scoreText(g games.GameData) (string, render.Style) {
	switch g.ScoreType {
	case games.ScoreOngoing:
		return g.Result, styleText
	case games.ScoreFinal:
		var b strings.Builder
		b.WriteString(g.Result)
		switch {
		case g.IsShootout:
			b.WriteString(shootoutTag)
		case g.IsOvertime:
			b.WriteString(overtimeTag)
		}
		return b.String(), styleFinal
	default:
		return "", styleText
	}
}

func goalTime(e games.GoalEventData, detail layout.DetailLevel) string {
	if detail == layout.DetailExtended {
		return fmt.Sprintf("%02d:%02d", e.GameTime/60, e.GameTime%60)
	}
	return strconv.Itoa(e.Minute)
}
