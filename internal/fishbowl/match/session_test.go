package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/resource"
	"github.com/bloops-games/fishbowl/internal/fishbowl/roster"
	"github.com/bloops-games/fishbowl/internal/fishbowl/titlebank"
	"github.com/bloops-games/fishbowl/internal/fishbowl/turn"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type game struct {
	*Session
	clock     *fakeClock
	summaries []Summary
}

// start runs intake for one manual word per player. The deck keeps intake order.
func start(t *testing.T, names, words []string, opts ...func(*Config)) *game {
	t.Helper()

	g := &game{clock: &fakeClock{now: time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)}}
	config := Config{
		Roster: roster.Config{
			Players:              len(names),
			ManualWordsPerPlayer: 1,
		},
		Source:             titlebank.New(resource.Titles, nil),
		StartingTeam:       model.TeamA,
		TimerSeconds:       60,
		SkipsRoundTwo:      true,
		SkipsRoundThree:    true,
		HighlightsPerRound: 3,
		Shuffle:            func([]model.Card) {},
		Now:                g.clock.Now,
		DoneFn: func(summary Summary) {
			g.summaries = append(g.summaries, summary)
		},
	}
	for _, opt := range opts {
		opt(&config)
	}

	g.Session = NewSession(context.Background(), config)

	ctx := context.Background()
	for i, name := range names {
		req := roster.Request{Name: name, Team: g.Snapshot().IntakeTeam, ManualWords: []string{words[i]}}
		if _, err := g.Intake(ctx, req); err != nil {
			t.Fatalf("intake %s: %v", name, err)
		}
	}

	if g.Snapshot().Stage != StageRoundIntro {
		t.Fatalf("expected round intro after intake got %s", g.Snapshot().Stage)
	}

	return g
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func texts(cards []model.Card) []string {
	out := []string{}
	for _, card := range cards {
		out = append(out, card.Text)
	}
	return out
}

func recapID(t *testing.T, g *game, text string) uuid.UUID {
	t.Helper()
	for _, event := range g.Snapshot().Recap {
		if event.Card.Text == text {
			return event.ID
		}
	}
	t.Fatalf("no recap event for %q", text)
	return uuid.Nil
}

// checkConservation asserts deck + pending recap + completed this round = master.
func checkConservation(t *testing.T, g *game) {
	t.Helper()

	snapshot := g.Snapshot()
	completed := 0
	for _, record := range g.Turns(snapshot.Round.Number) {
		completed += len(record.Correct)
	}

	pending := len(snapshot.Recap)
	if snapshot.Stage == StageTurn || snapshot.Stage == StageTurnPaused {
		pending = snapshot.Answered
	}

	if got := snapshot.DeckSize + pending + completed; got != len(g.master) {
		t.Fatalf("round %d holds %d cards, master has %d", snapshot.Round.Number, got, len(g.master))
	}
}

// clearRound plays the current round answering every card.
func clearRound(t *testing.T, g *game) {
	t.Helper()

	for {
		checkConservation(t, g)
		switch g.Snapshot().Stage {
		case StageRoundIntro:
			must(t, g.StartRound())
		case StageTurnHandoff:
			must(t, g.BeginTurn())
		case StageTurn:
			g.clock.Advance(3 * time.Second)
			must(t, g.MarkCorrect())
		case StageRecap:
			must(t, g.FinalizeRecap())
		case StageRoundEnd, StageGameEnd:
			return
		default:
			t.Fatalf("unexpected stage %s", g.Snapshot().Stage)
		}
	}
}

func TestIntakeRejectsDuplicateName(t *testing.T) {
	t.Parallel()

	s := NewSession(context.Background(), Config{
		Roster:       roster.Config{Players: 4, ManualWordsPerPlayer: 1},
		Source:       titlebank.New(resource.Titles, nil),
		StartingTeam: model.TeamA,
		TimerSeconds: 60,
	})
	ctx := context.Background()

	if _, err := s.Intake(ctx, roster.Request{Name: "alex", Team: model.TeamA, ManualWords: []string{"Pizza"}}); err != nil {
		t.Fatalf("intake: %v", err)
	}

	_, err := s.Intake(ctx, roster.Request{Name: "Alex", Team: model.TeamA, ManualWords: []string{"Tacos"}})
	if !model.IsValidation(err) {
		t.Fatalf("expected validation error got %v", err)
	}

	snapshot := s.Snapshot()
	if len(snapshot.Players) != 1 || snapshot.Stage != StageIntake {
		t.Errorf("rejected intake changed the session: %d players in %s", len(snapshot.Players), snapshot.Stage)
	}

	if err := s.StartRound(); !errors.Is(err, model.ErrOperationNotAllowed) {
		t.Errorf("expected start round during intake to fail got %v", err)
	}
}

func TestClearingTheDeckSavesBonus(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob", "Cid"}, []string{"X", "Y", "Z"})

	must(t, g.StartRound())
	snapshot := g.Snapshot()
	if snapshot.ClueGiver == nil || snapshot.ClueGiver.Name != "Ann" || snapshot.Team != model.TeamA {
		t.Fatalf("expected Ann of team A to give clues got %+v", snapshot.ClueGiver)
	}

	must(t, g.BeginTurn())
	for i := 0; i < 5; i++ {
		g.Tick()
	}
	for i := 0; i < 3; i++ {
		g.clock.Advance(2 * time.Second)
		must(t, g.MarkCorrect())
	}

	snapshot = g.Snapshot()
	if snapshot.Stage != StageRecap || snapshot.EndReason != turn.EndReasonCompletedAllCards {
		t.Fatalf("expected recap after clearing the deck got %s/%s", snapshot.Stage, snapshot.EndReason)
	}
	if snapshot.Rounds[1].TeamA != 3 || len(snapshot.Recap) != 3 {
		t.Errorf("expected 3 points and 3 recap cards got %+v", snapshot.Rounds[1])
	}
	if snapshot.Bonus == nil || snapshot.Bonus.Player.Name != "Ann" || snapshot.Bonus.Seconds != 55 {
		t.Fatalf("expected Ann to hold 55s of bonus got %+v", snapshot.Bonus)
	}

	must(t, g.FinalizeRecap())
	if g.Snapshot().Stage != StageRoundEnd {
		t.Fatalf("expected round end got %s", g.Snapshot().Stage)
	}

	highlights, err := g.Highlights()
	must(t, err)
	if len(highlights) == 0 || highlights[0] != "Team A led round 1 by 3." {
		t.Errorf("unexpected highlights %q", highlights)
	}

	must(t, g.ProceedToNextRound())
	snapshot = g.Snapshot()
	if snapshot.Stage != StageRoundIntro || snapshot.Round.Number != 2 || snapshot.DeckSize != 3 {
		t.Fatalf("expected round 2 intro with 3 cards got %s round %d size %d", snapshot.Stage, snapshot.Round.Number, snapshot.DeckSize)
	}

	must(t, g.StartRound())
	if g.Snapshot().ClueGiver.Name != "Ann" {
		t.Fatalf("expected the bonus holder to go first got %s", g.Snapshot().ClueGiver.Name)
	}

	must(t, g.BeginTurn())
	snapshot = g.Snapshot()
	if snapshot.TimeRemaining != 55 || snapshot.Bonus != nil {
		t.Fatalf("expected the bonus to be spent got %ds, bonus %+v", snapshot.TimeRemaining, snapshot.Bonus)
	}

	must(t, g.EndTurn())
	must(t, g.FinalizeRecap())

	snapshot = g.Snapshot()
	if snapshot.ClueGiver.Name != "Bob" {
		t.Fatalf("expected Bob after Ann got %s", snapshot.ClueGiver.Name)
	}

	must(t, g.BeginTurn())
	if g.Snapshot().TimeRemaining != 60 {
		t.Errorf("expected a full timer after the bonus was spent got %d", g.Snapshot().TimeRemaining)
	}
}

func TestBonusCappedByTimer(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"X", "Y"})
	clearRound(t, g)

	if g.Snapshot().Bonus.Seconds != 60 {
		t.Fatalf("expected 60s bonus got %+v", g.Snapshot().Bonus)
	}

	must(t, g.SetTimerSeconds(20))
	must(t, g.ProceedToNextRound())
	must(t, g.StartRound())
	must(t, g.BeginTurn())

	if g.Snapshot().TimeRemaining != 20 {
		t.Errorf("expected bonus capped at 20s got %d", g.Snapshot().TimeRemaining)
	}
}

func TestSkipCycleInRoundTwo(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"A", "B"})

	must(t, g.StartRound())
	must(t, g.BeginTurn())
	if err := g.SkipCard(); !errors.Is(err, model.ErrOperationNotAllowed) {
		t.Fatalf("expected skip in round 1 to fail got %v", err)
	}
	for i := 0; i < 2; i++ {
		must(t, g.MarkCorrect())
	}
	must(t, g.FinalizeRecap())
	must(t, g.ProceedToNextRound())

	must(t, g.StartRound())
	must(t, g.BeginTurn())
	if !g.Snapshot().SkipAllowed {
		t.Fatal("expected skips in round 2")
	}

	must(t, g.SkipCard())
	must(t, g.SkipCard())

	snapshot := g.Snapshot()
	if snapshot.Stage != StageRecap || snapshot.EndReason != turn.EndReasonSkipCycleComplete {
		t.Fatalf("expected skip cycle recap got %s/%s", snapshot.Stage, snapshot.EndReason)
	}
	if diff := cmp.Diff([]string{"A", "B"}, texts(g.Deck())); diff != "" {
		t.Errorf("deck mismatch (-want +got):\n%s", diff)
	}
	if snapshot.Rounds[2].TeamA != 0 {
		t.Errorf("expected no points got %d", snapshot.Rounds[2].TeamA)
	}
}

func TestSkipsDisabledByConfig(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"A", "B"}, func(c *Config) {
		c.SkipsRoundTwo = false
	})

	clearRound(t, g)
	must(t, g.ProceedToNextRound())
	must(t, g.StartRound())
	must(t, g.BeginTurn())

	if err := g.SkipCard(); !errors.Is(err, model.ErrOperationNotAllowed) {
		t.Errorf("expected skip to be disabled got %v", err)
	}
}

func TestTimerExpiryRotatesCard(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"M", "N"})
	must(t, g.StartRound())

	g.Tick()
	if g.Snapshot().TimeRemaining != 0 {
		t.Fatal("tick before the turn must be a no-op")
	}

	must(t, g.BeginTurn())
	for i := 0; i < 60; i++ {
		g.Tick()
	}

	snapshot := g.Snapshot()
	if snapshot.Stage != StageRecap || snapshot.EndReason != turn.EndReasonTimerExpired {
		t.Fatalf("expected timer expiry recap got %s/%s", snapshot.Stage, snapshot.EndReason)
	}
	if diff := cmp.Diff([]string{"N", "M"}, texts(g.Deck())); diff != "" {
		t.Errorf("deck mismatch (-want +got):\n%s", diff)
	}

	g.Tick()
	if g.Snapshot().Stage != StageRecap || g.Snapshot().Bonus != nil {
		t.Error("late tick changed the session")
	}

	must(t, g.FinalizeRecap())
	if g.Snapshot().ClueGiver.Name != "Bob" {
		t.Errorf("expected Bob next got %s", g.Snapshot().ClueGiver.Name)
	}
}

func TestUnhighlightedCardGoesToTail(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Amy", "Bob", "Ben"}, []string{"Apple", "Bread", "Cider", "Dates"})
	must(t, g.StartRound())
	must(t, g.BeginTurn())
	must(t, g.MarkCorrect())
	must(t, g.MarkCorrect())
	must(t, g.EndTurn())

	bread := recapID(t, g, "Bread")
	must(t, g.ToggleHighlight(bread))
	must(t, g.ToggleHighlight(bread))
	must(t, g.ToggleHighlight(bread))

	if g.Snapshot().Rounds[1].TeamA != 2 {
		t.Fatal("toggling must not change the score before finalization")
	}

	ann := g.Snapshot().ClueGiver.ID
	must(t, g.FinalizeRecap())

	if diff := cmp.Diff([]string{"Cider", "Dates", "Bread"}, texts(g.Deck())); diff != "" {
		t.Errorf("deck mismatch (-want +got):\n%s", diff)
	}

	snapshot := g.Snapshot()
	if snapshot.Rounds[1].TeamA != 1 || snapshot.Total.TeamA != 1 {
		t.Errorf("expected 1 point got round %d total %d", snapshot.Rounds[1].TeamA, snapshot.Total.TeamA)
	}
	if snapshot.Stats[ann].CorrectCount != 1 {
		t.Errorf("expected Ann to keep 1 answer got %d", snapshot.Stats[ann].CorrectCount)
	}
	if snapshot.ClueGiver.Name != "Bob" || snapshot.Team != model.TeamB {
		t.Errorf("expected Bob of team B next got %s", snapshot.ClueGiver.Name)
	}

	turns := g.Turns(1)
	if len(turns) != 1 || len(turns[0].Correct) != 1 || turns[0].Correct[0].Text != "Apple" {
		t.Errorf("unexpected turn log %+v", turns)
	}

	if err := g.ToggleHighlight(bread); !errors.Is(err, model.ErrOperationNotAllowed) {
		t.Errorf("expected toggling after finalization to fail got %v", err)
	}
}

func TestUndoReinsertsCard(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Amy", "Bob", "Ben"}, []string{"Apple", "Bread", "Cider", "Dates"})
	must(t, g.StartRound())
	must(t, g.BeginTurn())

	if err := g.Undo(uuid.New()); !errors.Is(err, model.ErrOperationNotAllowed) {
		t.Fatalf("expected undo during a turn to fail got %v", err)
	}

	g.clock.Advance(2 * time.Second)
	must(t, g.MarkCorrect())
	g.clock.Advance(7 * time.Second)
	must(t, g.MarkCorrect())
	must(t, g.EndTurn())

	if err := g.Undo(uuid.New()); !model.IsValidation(err) {
		t.Fatalf("expected unknown event to fail validation got %v", err)
	}

	ann := g.Snapshot().ClueGiver.ID
	must(t, g.Undo(recapID(t, g, "Apple")))

	if diff := cmp.Diff([]string{"Apple", "Cider", "Dates"}, texts(g.Deck())); diff != "" {
		t.Errorf("deck mismatch (-want +got):\n%s", diff)
	}

	snapshot := g.Snapshot()
	if snapshot.Rounds[1].TeamA != 1 || len(snapshot.Recap) != 1 {
		t.Errorf("expected 1 point and 1 recap card got %d/%d", snapshot.Rounds[1].TeamA, len(snapshot.Recap))
	}

	stats := snapshot.Stats[ann]
	if stats.CorrectCount != 1 || stats.TotalTime != 7*time.Second {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.Fastest == nil || *stats.Fastest != 7*time.Second {
		t.Errorf("expected fastest to be recomputed got %v", stats.Fastest)
	}

	checkConservation(t, g)
}

func TestUndoForfeitsBonus(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"A", "B"})
	must(t, g.StartRound())
	must(t, g.BeginTurn())
	must(t, g.MarkCorrect())
	must(t, g.MarkCorrect())

	if g.Snapshot().Bonus == nil {
		t.Fatal("expected bonus after clearing the deck")
	}

	must(t, g.Undo(recapID(t, g, "B")))
	if g.Snapshot().Bonus != nil {
		t.Fatal("expected the bonus to be forfeited")
	}

	must(t, g.FinalizeRecap())
	snapshot := g.Snapshot()
	if snapshot.Stage != StageTurnHandoff || snapshot.ClueGiver.Name != "Bob" {
		t.Errorf("expected Bob to play the remaining card got %s %+v", snapshot.Stage, snapshot.ClueGiver)
	}
}

func TestRotationAlternatesTeams(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Amy", "Bob", "Ben"}, []string{"Apple", "Bread", "Cider", "Dates"})
	must(t, g.StartRound())

	var got []string
	for i := 0; i < 6; i++ {
		got = append(got, g.Snapshot().ClueGiver.Name)
		must(t, g.BeginTurn())
		must(t, g.EndTurn())
		must(t, g.FinalizeRecap())
	}

	if diff := cmp.Diff([]string{"Ann", "Bob", "Amy", "Ben", "Ann", "Bob"}, got); diff != "" {
		t.Errorf("rotation mismatch (-want +got):\n%s", diff)
	}
}

func TestStartingTeamRestoredEachRound(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Amy", "Bob", "Ben"}, []string{"Apple", "Bread", "Cider", "Dates"}, func(c *Config) {
		c.StartingTeam = model.TeamB
	})

	must(t, g.StartRound())
	if g.Snapshot().ClueGiver.Name != "Bob" {
		t.Fatalf("expected Bob to open got %s", g.Snapshot().ClueGiver.Name)
	}
	must(t, g.BeginTurn())
	must(t, g.EndTurn())
	must(t, g.FinalizeRecap())

	if g.Snapshot().ClueGiver.Name != "Ann" {
		t.Fatalf("expected Ann second got %s", g.Snapshot().ClueGiver.Name)
	}
	clearRound(t, g)
	must(t, g.ProceedToNextRound())

	snapshot := g.Snapshot()
	if snapshot.Team != model.TeamB {
		t.Errorf("expected team B to be restored at round start got %s", snapshot.Team)
	}

	must(t, g.StartRound())
	snapshot = g.Snapshot()
	if snapshot.ClueGiver.Name != "Ann" || snapshot.Team != model.TeamA {
		t.Fatalf("expected the bonus holder Ann to override got %s of %s", snapshot.ClueGiver.Name, snapshot.Team)
	}

	must(t, g.BeginTurn())
	must(t, g.EndTurn())
	must(t, g.FinalizeRecap())
	if g.Snapshot().ClueGiver.Name != "Ben" {
		t.Errorf("expected Ben after Ann got %s", g.Snapshot().ClueGiver.Name)
	}
}

func TestFullGame(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Amy", "Bob", "Ben"}, []string{"Apple", "Bread", "Cider", "Dates"})

	for round := 1; round <= resource.RoundsNum; round++ {
		if g.Snapshot().Round.Number != round {
			t.Fatalf("expected round %d got %d", round, g.Snapshot().Round.Number)
		}
		clearRound(t, g)
		if round < resource.RoundsNum {
			must(t, g.ProceedToNextRound())
		}
	}

	snapshot := g.Snapshot()
	if snapshot.Stage != StageGameEnd {
		t.Fatalf("expected game end got %s", snapshot.Stage)
	}
	if snapshot.Total.TeamA != 12 || snapshot.Total.TeamB != 0 {
		t.Errorf("unexpected total %+v", snapshot.Total)
	}
	if team, ok := g.Winner(); !ok || team != model.TeamA {
		t.Errorf("expected team A to win got %s, %v", team, ok)
	}

	if len(g.summaries) != 1 {
		t.Fatalf("expected one summary got %d", len(g.summaries))
	}
	summary := g.summaries[0]
	if summary.Winner != model.TeamA || len(summary.Master) != 4 || len(summary.Players) != 4 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if diff := cmp.Diff(map[int]int{1: 4, 2: 4, 3: 4}, teamAByRound(summary)); diff != "" {
		t.Errorf("round scores mismatch (-want +got):\n%s", diff)
	}

	ranking := g.Ranking()
	if len(ranking) != 4 || ranking[0].CorrectCount != 12 {
		t.Errorf("unexpected ranking %+v", ranking)
	}

	if _, err := g.Highlights(); err != nil {
		t.Errorf("highlights at game end: %v", err)
	}
	if err := g.ProceedToNextRound(); !errors.Is(err, model.ErrOperationNotAllowed) {
		t.Errorf("expected next round after the game to fail got %v", err)
	}
}

func teamAByRound(summary Summary) map[int]int {
	out := map[int]int{}
	for round, score := range summary.Rounds {
		out[round] = score.TeamA
	}
	return out
}

func TestRematch(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"A", "B"})
	for round := 1; round <= resource.RoundsNum; round++ {
		clearRound(t, g)
		if round < resource.RoundsNum {
			must(t, g.ProceedToNextRound())
		}
	}

	players := g.Snapshot().Players
	must(t, g.Rematch())

	snapshot := g.Snapshot()
	if snapshot.Stage != StageRoundIntro || snapshot.Round.Number != 1 || snapshot.DeckSize != 2 {
		t.Fatalf("expected round 1 intro with 2 cards got %s round %d size %d", snapshot.Stage, snapshot.Round.Number, snapshot.DeckSize)
	}
	if snapshot.Total.Total() != 0 || snapshot.Bonus != nil || len(snapshot.Rounds) != 0 {
		t.Errorf("expected fresh scores got %+v bonus %+v", snapshot.Total, snapshot.Bonus)
	}
	for _, stats := range snapshot.Stats {
		if stats.CorrectCount != 0 || stats.TurnsTaken != 0 {
			t.Errorf("expected reset stats got %+v", stats)
		}
	}
	if diff := cmp.Diff(players, snapshot.Players); diff != "" {
		t.Errorf("players mismatch (-want +got):\n%s", diff)
	}

	must(t, g.StartRound())
	if g.Snapshot().ClueGiver.Name != "Ann" {
		t.Errorf("expected Ann to open the rematch got %s", g.Snapshot().ClueGiver.Name)
	}
}

func TestNewGame(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"A", "B"})
	must(t, g.StartRound())
	must(t, g.BeginTurn())
	must(t, g.NewGame())

	snapshot := g.Snapshot()
	if snapshot.Stage != StageIntake || len(snapshot.Players) != 0 || snapshot.IntakeTeam != model.TeamA {
		t.Fatalf("expected empty intake got %s with %d players", snapshot.Stage, len(snapshot.Players))
	}
	if len(g.Deck()) != 0 || len(snapshot.Stats) != 0 {
		t.Errorf("expected no cards or stats after new game")
	}

	g.Tick()
	if err := g.Rematch(); !errors.Is(err, model.ErrOperationNotAllowed) {
		t.Errorf("expected rematch during intake to fail got %v", err)
	}

	if _, err := g.Intake(context.Background(), roster.Request{Name: "Ann", Team: model.TeamA, ManualWords: []string{"A"}}); err != nil {
		t.Errorf("expected a returning name to be accepted got %v", err)
	}
}

func TestPauseAndTimerChange(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"A", "B"})
	must(t, g.StartRound())
	must(t, g.BeginTurn())
	g.Tick()

	must(t, g.PauseTurn())
	for i := 0; i < 10; i++ {
		g.Tick()
	}
	if g.Snapshot().Stage != StageTurnPaused || g.Snapshot().TimeRemaining != 59 {
		t.Fatalf("expected paused at 59s got %s %d", g.Snapshot().Stage, g.Snapshot().TimeRemaining)
	}
	if err := g.MarkCorrect(); !errors.Is(err, model.ErrOperationNotAllowed) {
		t.Errorf("expected correct while paused to fail got %v", err)
	}

	must(t, g.SetTimerSeconds(30))
	if g.Snapshot().TimeRemaining != 59 {
		t.Error("timer change must not affect the running turn")
	}
	if err := g.SetTimerSeconds(0); !model.IsValidation(err) {
		t.Errorf("expected validation error got %v", err)
	}

	must(t, g.ResumeTurn())
	g.Tick()
	if g.Snapshot().TimeRemaining != 58 {
		t.Errorf("expected 58s got %d", g.Snapshot().TimeRemaining)
	}

	must(t, g.PauseTurn())
	must(t, g.EndTurn())
	must(t, g.FinalizeRecap())
	must(t, g.BeginTurn())

	snapshot := g.Snapshot()
	if snapshot.TimeRemaining != 30 || snapshot.TimerSeconds != 30 {
		t.Errorf("expected the new timer on the next turn got %d", snapshot.TimeRemaining)
	}
	if snapshot.Head == nil || snapshot.Head.Text != "A" {
		t.Errorf("expected A on top got %+v", snapshot.Head)
	}
}

func TestObserversNotifiedOnChange(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"A", "B"})

	var stages []Stage
	g.Subscribe(ObserverFunc(func(snapshot Snapshot) {
		stages = append(stages, snapshot.Stage)
	}))

	must(t, g.StartRound())
	if err := g.FinalizeRecap(); err == nil {
		t.Fatal("expected finalize outside recap to fail")
	}
	must(t, g.BeginTurn())
	g.Tick()
	must(t, g.EndTurn())

	expected := []Stage{StageTurnHandoff, StageTurn, StageTurn, StageRecap}
	if diff := cmp.Diff(expected, stages); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestRunStopsWithContext(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"A", "B"}, func(c *Config) {
		c.Tick = time.Millisecond
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- g.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}

	if err := g.Run(context.Background()); !errors.Is(err, model.ErrOperationNotAllowed) {
		t.Errorf("expected a second run to fail got %v", err)
	}
}

func TestCandidatesShortfall(t *testing.T) {
	t.Parallel()

	s := NewSession(context.Background(), Config{
		Roster: roster.Config{Players: 2, CandidatesPerPlayer: 3, PicksPerPlayer: 1},
		Source: titlebank.New([]resource.Title{
			{Text: "Only", Categories: []string{resource.CategoryFood}, Difficulty: 1},
		}, nil),
		StartingTeam: model.TeamA,
		TimerSeconds: 60,
	})

	cards, err := s.Candidates(context.Background())
	if !errors.Is(err, model.ErrSupplyShortfall) {
		t.Fatalf("expected shortfall got %v", err)
	}
	if diff := cmp.Diff([]string{"Only"}, texts(cards)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Intake(context.Background(), roster.Request{Name: "Ann", Team: model.TeamA, Picks: []uuid.UUID{cards[0].ID}}); err != nil {
		t.Fatalf("intake: %v", err)
	}
}

func TestBeginTurnOnEmptyDeckEndsRound(t *testing.T) {
	t.Parallel()

	var summaries []Summary
	s := NewSession(context.Background(), Config{
		Roster:       roster.Config{Players: 2},
		Source:       titlebank.New(resource.Titles, nil),
		StartingTeam: model.TeamA,
		TimerSeconds: 60,
		DoneFn: func(summary Summary) {
			summaries = append(summaries, summary)
		},
	})

	ctx := context.Background()
	for _, name := range []string{"Ann", "Bob"} {
		if _, err := s.Intake(ctx, roster.Request{Name: name, Team: s.Snapshot().IntakeTeam}); err != nil {
			t.Fatalf("intake %s: %v", name, err)
		}
	}

	for round := 1; round <= resource.RoundsNum; round++ {
		must(t, s.StartRound())
		must(t, s.BeginTurn())

		snapshot := s.Snapshot()
		if round < resource.RoundsNum {
			if snapshot.Stage != StageRoundEnd {
				t.Fatalf("expected round %d to end got %s", round, snapshot.Stage)
			}
			must(t, s.ProceedToNextRound())
			continue
		}

		if snapshot.Stage != StageGameEnd {
			t.Fatalf("expected game end got %s", snapshot.Stage)
		}
	}

	if len(summaries) != 1 || summaries[0].Total.Total() != 0 {
		t.Errorf("expected one empty summary got %+v", summaries)
	}
}

func TestHandoffSkipsEmptyTeam(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Solo"}, []string{"Sushi"})
	if g.Snapshot().Players[0].Team != model.TeamB {
		t.Fatalf("expected the only player in team B got %s", g.Snapshot().Players[0].Team)
	}

	must(t, g.StartRound())
	snapshot := g.Snapshot()
	if snapshot.ClueGiver == nil || snapshot.ClueGiver.Name != "Solo" || snapshot.Team != model.TeamB {
		t.Fatalf("expected Solo of team B got %+v of %s", snapshot.ClueGiver, snapshot.Team)
	}

	must(t, g.BeginTurn())
	must(t, g.EndTurn())
	must(t, g.FinalizeRecap())

	snapshot = g.Snapshot()
	if snapshot.Stage != StageTurnHandoff || snapshot.ClueGiver.Name != "Solo" {
		t.Fatalf("expected Solo again got %s %+v", snapshot.Stage, snapshot.ClueGiver)
	}

	must(t, g.BeginTurn())
	must(t, g.MarkCorrect())
	must(t, g.FinalizeRecap())
	if g.Snapshot().Stage != StageRoundEnd || g.Snapshot().Total.TeamB != 1 {
		t.Errorf("expected round end with one point for team B got %s %+v", g.Snapshot().Stage, g.Snapshot().Total)
	}
}

func TestTimerBounds(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"X", "Y"})

	for _, seconds := range []int{0, MinTimerSeconds - 1, MaxTimerSeconds + 1} {
		if err := g.SetTimerSeconds(seconds); !model.IsValidation(err) {
			t.Errorf("expected %ds to be rejected got %v", seconds, err)
		}
	}
	if g.Snapshot().TimerSeconds != 60 {
		t.Errorf("rejected timer changed the session: %d", g.Snapshot().TimerSeconds)
	}

	must(t, g.SetTimerSeconds(MinTimerSeconds))
	must(t, g.SetTimerSeconds(MaxTimerSeconds))
}

func TestRotationWithUnevenTeams(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob", "Ben"}, []string{"Apple", "Bread", "Cider"})
	must(t, g.StartRound())

	var got []string
	for i := 0; i < 8; i++ {
		got = append(got, g.Snapshot().ClueGiver.Name)
		must(t, g.BeginTurn())
		must(t, g.EndTurn())
		must(t, g.FinalizeRecap())
	}

	expected := []string{"Ann", "Bob", "Ann", "Ben", "Ann", "Bob", "Ann", "Ben"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("rotation mismatch (-want +got):\n%s", diff)
	}

	for _, player := range g.Snapshot().Players {
		stats := g.Snapshot().Stats[player.ID]
		want := 2
		if player.Name == "Ann" {
			want = 4
		}
		if stats.TurnsTaken != want {
			t.Errorf("expected %s to take %d turns got %d", player.Name, want, stats.TurnsTaken)
		}
	}
}

func TestSnapshotSequence(t *testing.T) {
	t.Parallel()

	g := start(t, []string{"Ann", "Bob"}, []string{"X", "Y"})

	var seqs []uint64
	g.Subscribe(ObserverFunc(func(snapshot Snapshot) {
		seqs = append(seqs, snapshot.Seq)
	}))

	before := g.Snapshot().Seq
	must(t, g.StartRound())
	must(t, g.BeginTurn())
	g.Tick()

	if len(seqs) != 3 {
		t.Fatalf("expected 3 notifications got %d", len(seqs))
	}
	for i, seq := range seqs {
		if seq != before+uint64(i)+1 {
			t.Errorf("expected seq %d got %d", before+uint64(i)+1, seq)
		}
	}
	if g.Snapshot().Seq != seqs[2] {
		t.Errorf("expected a plain snapshot to keep seq %d got %d", seqs[2], g.Snapshot().Seq)
	}
}
