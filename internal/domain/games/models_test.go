package games

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"liiga-teletext/internal/domain/players"
)

func sampleGame() ScheduleGame {
	end := time.Date(2024, 1, 10, 19, 40, 0, 0, time.UTC)
	ranking := 3
	return ScheduleGame{
		ID:     42,
		Season: 2024,
		Start:  time.Date(2024, 1, 10, 16, 30, 0, 0, time.UTC),
		End:    &end,
		HomeTeam: ScheduleTeam{
			TeamID:   "1:tappara",
			TeamName: "Tappara",
			Goals:    2,
			Ranking:  &ranking,
			GoalEvents: []GoalEvent{{
				ScorerPlayerID:     7,
				LogTime:            "2024-01-10T17:05:00Z",
				GameTime:           754,
				Period:             1,
				EventID:            11,
				HomeTeamScore:      1,
				GoalTypes:          []string{"YV"},
				AssistantPlayerIDs: []int{8, 9},
				VideoClipURL:       "https://video.example/1",
				ScorerPlayer:       &players.Player{ID: 7, FirstName: "Mikko", LastName: "Koivu", Line: players.LineAt(1)},
			}},
		},
		AwayTeam:     ScheduleTeam{TeamID: "2:hifk", TeamName: "HIFK", Goals: 1},
		FinishedType: FinishedOvertime,
		Started:      true,
		Ended:        true,
		GameTime:     3900,
		Serie:        TournamentRegular,
	}
}

func TestScheduleGameJSONRoundTrip(t *testing.T) {
	game := sampleGame()
	data, err := json.Marshal(game)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded ScheduleGame
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(game, decoded) {
		t.Fatalf("expected round-trip equality\nwant %+v\ngot  %+v", game, decoded)
	}
}

func TestScheduleGameDecodesAPIPayload(t *testing.T) {
	payload := `{
		"id": 1, "season": 2025, "start": "2024-10-01T15:30:00Z",
		"homeTeam": {"teamId": "a", "teamName": "Ilves", "goals": 0, "goalEvents": []},
		"awayTeam": {"teamId": "b", "teamPlaceholder": "TBD", "goals": 0},
		"finishedType": "shootout", "started": false, "ended": false, "gameTime": 0,
		"serie": "RUNKOSARJA"
	}`
	var g ScheduleGame
	if err := json.Unmarshal([]byte(payload), &g); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if g.Serie != TournamentRegular {
		t.Fatalf("expected upper-case serie to normalize, got %q", g.Serie)
	}
	if g.FinishedType != FinishedShootout {
		t.Fatalf("expected short tag to map to shootout, got %q", g.FinishedType)
	}
	if g.AwayTeam.DisplayName() != "TBD" {
		t.Fatalf("expected placeholder display name, got %q", g.AwayTeam.DisplayName())
	}
}

func TestValidate(t *testing.T) {
	g := sampleGame()
	if err := g.Validate(); err != nil {
		t.Fatalf("expected valid game, got %v", err)
	}
	g.Started = false
	if err := g.Validate(); err == nil {
		t.Fatal("expected ended without started to be invalid")
	}
	g = sampleGame()
	g.End = nil
	if err := g.Validate(); err == nil {
		t.Fatal("expected ended without end time to be invalid")
	}
}

func TestScoreType(t *testing.T) {
	g := ScheduleGame{}
	if g.ScoreType() != ScoreScheduled {
		t.Fatalf("expected scheduled")
	}
	g.Started = true
	if g.ScoreType() != ScoreOngoing || !g.IsLive() {
		t.Fatalf("expected ongoing live game")
	}
	g.Ended = true
	if g.ScoreType() != ScoreFinal || g.IsLive() {
		t.Fatalf("expected final game")
	}
}

func TestStateOf(t *testing.T) {
	now := time.Date(2024, 1, 10, 16, 0, 0, 0, time.UTC)
	finished := ScheduleGame{Started: true, Ended: true}
	later := ScheduleGame{Start: now.Add(3 * time.Hour)}
	soon := ScheduleGame{Start: now.Add(3 * time.Minute)}
	justStarted := ScheduleGame{Start: now.Add(-4 * time.Minute)}
	live := ScheduleGame{Started: true}

	cases := []struct {
		name  string
		games []ScheduleGame
		want  GameState
	}{
		{"empty", nil, StateScheduled},
		{"completed only", []ScheduleGame{finished}, StateCompleted},
		{"scheduled later", []ScheduleGame{finished, later}, StateScheduled},
		{"starting soon", []ScheduleGame{later, soon}, StateStartingSoon},
		{"start passed within grace", []ScheduleGame{justStarted}, StateStartingSoon},
		{"live wins", []ScheduleGame{soon, live, finished}, StateLive},
	}
	for _, tc := range cases {
		if got := StateOf(tc.games, now); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestExpectedLive(t *testing.T) {
	now := time.Date(2024, 1, 10, 16, 0, 0, 0, time.UTC)
	finished := ScheduleGame{Start: now.Add(-3 * time.Hour), Started: true, Ended: true}
	later := ScheduleGame{Start: now.Add(time.Hour)}
	overdue := ScheduleGame{Start: now.Add(-20 * time.Minute)}
	live := ScheduleGame{Start: now.Add(-time.Hour), Started: true}

	if ExpectedLive([]ScheduleGame{finished, later}, now) {
		t.Fatalf("expected finished and future games not to be live")
	}
	if !ExpectedLive([]ScheduleGame{finished, overdue}, now) {
		t.Fatalf("expected a game past its start to be expected live")
	}
	if !ExpectedLive([]ScheduleGame{live}, now) {
		t.Fatalf("expected a started game to be live")
	}
	if ExpectedLive(nil, now) {
		t.Fatalf("expected an empty list not to be live")
	}
}

func TestIsStartingSoonBoundaries(t *testing.T) {
	now := time.Date(2024, 1, 10, 16, 0, 0, 0, time.UTC)
	if !(ScheduleGame{Start: now.Add(10 * time.Minute)}).IsStartingSoon(now) {
		t.Fatalf("expected +10m to be inside the window")
	}
	if (ScheduleGame{Start: now.Add(10*time.Minute + time.Second)}).IsStartingSoon(now) {
		t.Fatalf("expected +10m1s to be outside the window")
	}
	if !(ScheduleGame{Start: now.Add(-5 * time.Minute)}).IsStartingSoon(now) {
		t.Fatalf("expected -5m to be inside the window")
	}
	if (ScheduleGame{Start: now.Add(-6 * time.Minute)}).IsStartingSoon(now) {
		t.Fatalf("expected -6m to be outside the window")
	}
}

func TestFilterGoalTypes(t *testing.T) {
	got := FilterGoalTypes([]string{"EV", "yv", "IM", "RL", "YV", "TM"})
	want := []GoalType{GoalPowerPlay, GoalEmptyNet, GoalOwnGoal}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if JoinGoalTypes(got) != "YV IM TM" {
		t.Fatalf("unexpected joined string %q", JoinGoalTypes(got))
	}
	if FilterGoalTypes([]string{"EV", "MV"}) != nil {
		t.Fatalf("expected nil for unrecognized tags")
	}
}

func TestCloneIsDeep(t *testing.T) {
	resp := ScheduleResponse{Games: []ScheduleGame{sampleGame()}}
	clone := resp.Clone()
	clone.Games[0].HomeTeam.GoalEvents[0].GoalTypes[0] = "AV"
	clone.Games[0].HomeTeam.GoalEvents[0].ScorerPlayer.LastName = "Changed"
	*clone.Games[0].End = time.Time{}

	orig := resp.Games[0]
	if orig.HomeTeam.GoalEvents[0].GoalTypes[0] != "YV" {
		t.Fatalf("expected goal types untouched")
	}
	if orig.HomeTeam.GoalEvents[0].ScorerPlayer.LastName != "Koivu" {
		t.Fatalf("expected embedded scorer untouched")
	}
	if orig.End.IsZero() {
		t.Fatalf("expected end time untouched")
	}
}

func TestGameDataGoalsBySide(t *testing.T) {
	g := GameData{GoalEvents: []GoalEventData{
		{EventID: 1, IsHomeTeam: true},
		{EventID: 2},
		{EventID: 3, IsHomeTeam: true},
	}}
	if len(g.HomeGoals()) != 2 || len(g.AwayGoals()) != 1 {
		t.Fatalf("unexpected split home=%d away=%d", len(g.HomeGoals()), len(g.AwayGoals()))
	}
	clone := CloneGoalEvents([]GoalEventData{{GoalTypes: []GoalType{GoalPowerPlay}}})
	if len(clone) != 1 || clone[0].GoalTypes[0] != GoalPowerPlay {
		t.Fatalf("unexpected clone %+v", clone)
	}
}

func TestTournamentLabels(t *testing.T) {
	if ParseTournament("PLAYOFFS").Label() != "PLAYOFFS" {
		t.Fatalf("unexpected playoffs label")
	}
	if ParseTournament("practice") != TournamentPreseason {
		t.Fatalf("expected practice alias to map to preseason")
	}
	if TournamentRegular.Label() != "RUNKOSARJA" {
		t.Fatalf("unexpected regular season label")
	}
}
