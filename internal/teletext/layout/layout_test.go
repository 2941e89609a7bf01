package layout

import (
	"testing"

	"liiga-teletext/internal/domain/games"
)

func gameWithScorers(names ...string) games.GameData {
	g := games.GameData{HomeTeam: "HIFK", AwayTeam: "Tappara"}
	for i, n := range names {
		g.GoalEvents = append(g.GoalEvents, games.GoalEventData{
			ScorerName: n,
			IsHomeTeam: i%2 == 0,
			GoalTypes:  []games.GoalType{games.GoalPowerPlay2, games.GoalEmptyNet, games.GoalOwnGoal},
		})
	}
	return g
}

func assertNonOverlapping(t *testing.T, c Config) {
	t.Helper()
	if c.HomeNameStart < 0 || c.HomeTeamWidth <= 0 || c.AwayTeamWidth <= 0 {
		t.Fatalf("width %d: negative or empty team field %+v", c.Width, c)
	}
	if c.HomeNameStart+c.HomeTeamWidth > c.AwayNameStart {
		t.Fatalf("width %d: home team overlaps away team %+v", c.Width, c)
	}
	if c.AwayNameStart+c.AwayTeamWidth >= c.TimeColumn {
		t.Fatalf("width %d: away team overlaps time column %+v", c.Width, c)
	}
	if c.TimeColumn+TimeFieldWidth >= c.ScoreColumn || c.ScoreColumn+ScoreFieldWidth > c.Right {
		t.Fatalf("width %d: time/score columns overlap %+v", c.Width, c)
	}
	if c.PlayIconColumn > MaxPlayIconColumn {
		t.Fatalf("width %d: play icon column %d beyond %d", c.Width, c.PlayIconColumn, MaxPlayIconColumn)
	}
	if c.HomeNameColumn()+c.MaxPlayerNameWidth >= c.PlayIconColumn {
		t.Fatalf("width %d: home names reach the play icon %+v", c.Width, c)
	}
	if c.PlayIconColumn+1+c.MaxGoalTypesWidth >= c.AwayGoalColumn {
		t.Fatalf("width %d: home goal types overflow into away goals %+v", c.Width, c)
	}
	if c.AwayGoalColumn < c.AwayNameStart {
		t.Fatalf("width %d: away goals start before away team %+v", c.Width, c)
	}
	if c.GoalTypesColumn(false)+c.MaxGoalTypesWidth > c.Right {
		t.Fatalf("width %d: away goal line past right edge %+v", c.Width, c)
	}
	if c.MaxGoalTypesWidth < 3 {
		t.Fatalf("width %d: goal types too narrow for the first tag", c.Width)
	}
}

func TestComputeBoundaryWidthsDoNotOverlap(t *testing.T) {
	list := []games.GameData{gameWithScorers("Granlund Mi.", "Koivu", "Ääkkönen-Virtanen Ka.")}
	for _, w := range []int{40, 60, 79, 80, 99, 100, 119, 120, 128, 200} {
		assertNonOverlapping(t, Compute(w, list))
		assertNonOverlapping(t, Compute(w, nil))
	}
}

func TestComputeFallbackProfileBelowNormalWidth(t *testing.T) {
	c := Compute(79, nil)
	if c.SeparatorWidth != 3 {
		t.Fatalf("expected separator 3 in fallback, got %d", c.SeparatorWidth)
	}
	c = Compute(60, nil)
	if c.HomeTeamWidth >= TeamWidth {
		t.Fatalf("expected shrunken team fields at width 60, got %d", c.HomeTeamWidth)
	}
	c = Compute(80, nil)
	if c.HomeTeamWidth != TeamWidth || c.HomeNameStart != ContentMargin {
		t.Fatalf("expected 20 wide home team at margin, got %+v", c)
	}
	if c := Compute(120, nil); c.SeparatorWidth != 5 {
		t.Fatalf("expected separator capped at 5, got %d", c.SeparatorWidth)
	}
}

func TestPlayIconFollowsWidestName(t *testing.T) {
	short := Compute(100, []games.GameData{gameWithScorers("Aho")})
	long := Compute(100, []games.GameData{gameWithScorers("Aho", "Rantanen")})
	if short.PlayIconColumn != short.HomeNameColumn()+3+1 {
		t.Fatalf("expected icon after widest name, got %d", short.PlayIconColumn)
	}
	if long.PlayIconColumn != long.HomeNameColumn()+8+1 {
		t.Fatalf("expected icon after widest name, got %d", long.PlayIconColumn)
	}
	capped := Compute(80, []games.GameData{gameWithScorers("Hyvönen-Virtanen-Pitkänen")})
	if capped.MaxPlayerNameWidth != DetailMinimal.NameCap() {
		t.Fatalf("expected minimal cap %d, got %d", DetailMinimal.NameCap(), capped.MaxPlayerNameWidth)
	}
}

func TestDetailLevels(t *testing.T) {
	cases := map[int]DetailLevel{60: DetailMinimal, 99: DetailMinimal, 100: DetailStandard, 119: DetailStandard, 120: DetailExtended, 200: DetailExtended}
	for w, want := range cases {
		if got := DetailFor(w); got != want {
			t.Fatalf("width %d: expected %s, got %s", w, want, got)
		}
	}
	if Compute(90, nil).ShowPlayedTime {
		t.Fatalf("expected minimal detail to hide played time")
	}
	if !Compute(100, nil).ShowPlayedTime {
		t.Fatalf("expected standard detail to show played time")
	}
	if c := Compute(120, nil); c.GoalTimeWidth != 6 {
		t.Fatalf("expected mm:ss goal times at extended detail, got %d", c.GoalTimeWidth)
	}
}

func TestComputeWide(t *testing.T) {
	list := make([]games.GameData, 5)
	for i := range list {
		list[i] = gameWithScorers("Koivu")
	}
	if _, ok := ComputeWide(127, list); ok {
		t.Fatalf("expected wide mode to need %d columns", WideMinWidth)
	}
	w, ok := ComputeWide(128, list)
	if !ok {
		t.Fatalf("expected wide layout at 128")
	}
	if w.Split != 3 {
		t.Fatalf("expected left column to get 3 of 5 games, got %d", w.Split)
	}
	if w.RightOrigin != WideColumnWidth+WideGap {
		t.Fatalf("expected right origin %d, got %d", WideColumnWidth+WideGap, w.RightOrigin)
	}
	assertNonOverlapping(t, w.Left)
	assertNonOverlapping(t, w.Right)
	if w.Left.MaxPlayerNameWidth > 15 || w.Left.MaxGoalTypesWidth > 6 || w.Left.HomeTeamWidth > TeamWidth {
		t.Fatalf("expected wide profile caps, got %+v", w.Left)
	}
	if wide, _ := ComputeWide(300, list); wide.Left.Width != WideColumnWidth {
		t.Fatalf("expected column width capped at %d, got %d", WideColumnWidth, wide.Left.Width)
	}
}

func TestSplitWide(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 10: 5, 11: 6} {
		if got := SplitWide(n); got != want {
			t.Fatalf("SplitWide(%d): expected %d, got %d", n, want, got)
		}
	}
}

func TestFitGoalTypesDropsFromTheRight(t *testing.T) {
	types := []games.GoalType{games.GoalPowerPlay2, games.GoalEmptyNet, games.GoalOwnGoal}
	if got := FitGoalTypes(types, 10); got != "YV2 IM TM" {
		t.Fatalf("expected all tags, got %q", got)
	}
	if got := FitGoalTypes(types, 6); got != "YV2 IM" {
		t.Fatalf("expected last tag dropped, got %q", got)
	}
	if got := FitGoalTypes(types, 2); got != "YV2" {
		t.Fatalf("expected first tag kept, got %q", got)
	}
	if got := FitGoalTypes(nil, 6); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestDisplayWidth(t *testing.T) {
	cases := map[string]int{
		"Koivu":              5,
		"Kärpät":             6,
		"Ka\u0308rpa\u0308t": 6,
		"日本":                 4,
		"":                   0,
	}
	for s, want := range cases {
		if got := DisplayWidth(s); got != want {
			t.Fatalf("DisplayWidth(%q): expected %d, got %d", s, want, got)
		}
	}
	if got := PadRight("Koivu", 8); got != "Koivu   " {
		t.Fatalf("expected padded name, got %q", got)
	}
	if got := PadRight("Rantanen", 4); got != "Rant" {
		t.Fatalf("expected truncated name, got %q", got)
	}
	if got := PadLeft("3-2", 5); got != "  3-2" {
		t.Fatalf("expected right aligned score, got %q", got)
	}
	if got := Truncate("日本語", 3); got != "日" {
		t.Fatalf("expected wide rune cut, got %q", got)
	}
}
