// Package match coordinates a whole game: intake, three rounds of turns with recaps,
// rotation of clue-givers and bonus time.
package match

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bloops-games/fishbowl/internal/fishbowl/deck"
	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/resource"
	"github.com/bloops-games/fishbowl/internal/fishbowl/roster"
	"github.com/bloops-games/fishbowl/internal/fishbowl/scoring"
	"github.com/bloops-games/fishbowl/internal/fishbowl/turn"
	"github.com/bloops-games/fishbowl/internal/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func NewSession(ctx context.Context, config Config) *Session {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Tick <= 0 {
		config.Tick = time.Second
	}

	rounds := make([]int, 0, resource.RoundsNum)
	for _, r := range resource.Rounds {
		rounds = append(rounds, r.Number)
	}

	return &Session{
		config:       config,
		logger:       logging.FromContext(ctx).Named("match.Session"),
		builder:      roster.NewBuilder(config.Roster, config.Source),
		rounds:       newRoundMachine(rounds...),
		ledger:       scoring.NewLedger(),
		stage:        StageIntake,
		timerSeconds: config.TimerSeconds,
	}
}

type Session struct {
	mtx sync.Mutex

	config    Config
	logger    *zap.SugaredLogger
	builder   *roster.Builder
	master    []model.Card
	rosters   map[model.Team][]model.Player
	rounds    *roundMachine
	deck      *deck.Deck
	ledger    *scoring.Ledger
	stage     Stage
	team      model.Team
	clueGiver *model.Player
	turn      *turn.Controller
	recap     *turn.Result
	bonus     *Bonus

	// timerSeconds applies from the next turn on
	timerSeconds int
	observers    []Observer
	seq          uint64
	finished     *Summary
	sema         sync.Once
}

func (s *Session) Subscribe(observer Observer) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.observers = append(s.observers, observer)
}

// Run drives the countdown until ctx is done. Only the first call starts a loop.
func (s *Session) Run(ctx context.Context) error {
	err := fmt.Errorf("session already running: %w", model.ErrOperationNotAllowed)
	s.sema.Do(func() {
		err = nil
		s.loop(ctx)
	})
	return err
}

func (s *Session) loop(ctx context.Context) {
	ticker := time.NewTicker(s.config.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debugf("session loop stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick advances the running turn by one second. It does nothing outside of an active turn.
func (s *Session) Tick() {
	s.mtx.Lock()
	if s.stage != StageTurn {
		s.mtx.Unlock()
		return
	}

	s.turn.Tick()
	s.release()
}

// do runs fn under the lock and notifies observers when it succeeds.
func (s *Session) do(op string, fn func() error) error {
	s.mtx.Lock()
	if err := fn(); err != nil {
		stage := s.stage
		s.mtx.Unlock()
		s.logger.Debugf("%s rejected in stage %s: %v", op, stage, err)
		return err
	}

	s.release()
	return nil
}

// release unlocks the session, then notifies observers and reports a finished game.
func (s *Session) release() {
	s.seq++
	snapshot := s.snapshot()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	finished := s.finished
	s.finished = nil
	s.mtx.Unlock()

	for _, observer := range observers {
		observer.Notify(snapshot)
	}

	if finished != nil && s.config.DoneFn != nil {
		s.config.DoneFn(*finished)
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	snapshot := Snapshot{
		Seq:             s.seq,
		Stage:           s.stage,
		Players:         s.builder.Players(),
		PlayersExpected: s.config.Roster.Players,
		Team:            s.team,
		TimerSeconds:    s.timerSeconds,
		Rounds:          s.ledger.Rounds(),
		Total:           s.ledger.Cumulative(),
		Stats:           s.ledger.AllStats(),
	}

	if s.stage == StageIntake {
		snapshot.IntakeTeam = s.builder.NextTeam()
		return snapshot
	}

	snapshot.Round, _ = resource.RoundByNumber(s.rounds.curr())

	if s.clueGiver != nil {
		player := *s.clueGiver
		snapshot.ClueGiver = &player
	}
	if s.bonus != nil {
		bonus := *s.bonus
		snapshot.Bonus = &bonus
	}

	if s.deck != nil {
		snapshot.DeckSize = s.deck.Len()
		snapshot.SkipAllowed = s.deck.SkipAllowed()
		if s.stage == StageTurn {
			if card, ok := s.deck.Head(); ok {
				snapshot.Head = &card
			}
		}
	}

	if s.turn != nil {
		snapshot.TimeRemaining = s.turn.TimeRemaining()
		snapshot.SkipCount = s.turn.SkipCount()
		snapshot.Answered = s.turn.CorrectCount()
		snapshot.EndReason = s.turn.Reason()
	}

	if s.recap != nil {
		snapshot.Recap = make([]turn.CorrectEvent, len(s.recap.Events))
		for i, event := range s.recap.Events {
			snapshot.Recap[i] = *event
		}
	}

	return snapshot
}

func (s *Session) require(op string, stages ...Stage) error {
	for _, stage := range stages {
		if s.stage == stage {
			return nil
		}
	}
	return fmt.Errorf("%s in stage %s: %w", op, s.stage, model.ErrOperationNotAllowed)
}

// Candidates returns the titles offered to the next player during intake. A short
// supply returns the drawn titles together with a *model.SupplyShortfallError.
func (s *Session) Candidates(ctx context.Context) ([]model.Card, error) {
	var (
		cards     []model.Card
		shortfall error
	)
	if err := s.do("candidates", func() error {
		if err := s.require("candidates", StageIntake); err != nil {
			return err
		}

		var err error
		cards, err = s.builder.Candidates(ctx)
		if errors.Is(err, model.ErrSupplyShortfall) {
			s.logger.Infof("candidates: %v", err)
			shortfall = err
			return nil
		}
		return err
	}); err != nil {
		return nil, err
	}

	return cards, shortfall
}

func (s *Session) Reroll(ctx context.Context, cardID uuid.UUID) (model.Card, error) {
	var card model.Card
	err := s.do("reroll", func() error {
		if err := s.require("reroll", StageIntake); err != nil {
			return err
		}

		var err error
		card, err = s.builder.Reroll(ctx, cardID)
		return err
	})

	return card, err
}

// Intake adds one player. The last player completes intake and sets up round 1.
func (s *Session) Intake(ctx context.Context, req roster.Request) (model.Player, error) {
	var player model.Player
	err := s.do("intake", func() error {
		if err := s.require("intake", StageIntake); err != nil {
			return err
		}

		var err error
		player, err = s.builder.Intake(ctx, req)
		if err != nil {
			return err
		}

		s.ledger.RegisterPlayer(player.ID)

		if s.builder.Complete() {
			s.master = s.builder.Master()
			s.rosters = map[model.Team][]model.Player{}
			for _, team := range model.Teams {
				s.rosters[team] = s.builder.Roster(team)
			}

			s.logger.Infof("intake complete with %d players and %d cards", len(s.builder.Players()), len(s.master))
			s.rounds.front()
			s.prepareRound()
		}

		return nil
	})

	return player, err
}

// prepareRound reshuffles the full master set for the current round.
func (s *Session) prepareRound() {
	round := s.rounds.curr()
	s.deck = deck.Reshuffle(round, s.master, s.config.skipsAllowed(round), s.config.Shuffle)
	s.team = s.config.StartingTeam
	s.clueGiver = nil
	s.turn = nil
	s.recap = nil
	s.stage = StageRoundIntro

	s.logger.Debugf("round %d ready with %d cards, skips allowed %v", round, s.deck.Len(), s.deck.SkipAllowed())
}

// StartRound leaves the round intro and hands the device to the first clue-giver.
func (s *Session) StartRound() error {
	return s.do("start round", func() error {
		if err := s.require("start round", StageRoundIntro); err != nil {
			return err
		}

		return s.handoff()
	})
}

// handoff picks the next clue-giver: a bonus holder first, otherwise the current team's
// player at its turn counter. A team without players passes to the other team.
func (s *Session) handoff() error {
	var player model.Player
	if s.bonus != nil {
		player = s.bonus.Player
		s.team = player.Team
	} else {
		team := s.team
		if len(s.rosters[team]) == 0 {
			team = team.Other()
		}

		roster := s.rosters[team]
		if len(roster) == 0 {
			return fmt.Errorf("handoff without players: %w", model.ErrOperationNotAllowed)
		}

		s.team = team
		player = roster[s.ledger.TeamTurns(team)%len(roster)]
	}

	s.clueGiver = &player
	s.turn = nil
	s.recap = nil
	s.stage = StageTurnHandoff
	return nil
}

// BeginTurn starts the clue-giver's countdown. A held bonus replaces the timer and is spent.
func (s *Session) BeginTurn() error {
	return s.do("begin turn", func() error {
		if err := s.require("begin turn", StageTurnHandoff); err != nil {
			return err
		}

		if s.deck.Empty() {
			s.logger.Debugf("no cards left for %s", s.clueGiver.Name)
			s.endRound()
			return nil
		}

		seconds := s.timerSeconds
		spendBonus := s.bonus != nil && s.bonus.Player.ID == s.clueGiver.ID
		if spendBonus && s.bonus.Seconds < seconds {
			seconds = s.bonus.Seconds
		}

		controller := turn.New(turn.Config{
			ClueGiver: *s.clueGiver,
			Deck:      s.deck,
			Seconds:   seconds,
			Now:       s.config.Now,
			DoneFn:    s.turnDone,
		})
		if err := controller.Begin(); err != nil {
			return err
		}

		if spendBonus {
			s.logger.Debugf("%s spends %ds of bonus time", s.clueGiver.Name, seconds)
			s.bonus = nil
		}

		s.turn = controller
		s.ledger.RecordTurnTaken(s.clueGiver.ID)
		s.stage = StageTurn
		return nil
	})
}

// turnDone is the controller's done hook. It runs with the session locked.
func (s *Session) turnDone(result turn.Result) {
	round := s.rounds.curr()
	team := result.ClueGiver.Team

	s.ledger.AddTurnScore(round, team, result.CorrectCount())
	s.ledger.CompleteTeamTurn(team)

	if result.Reason == turn.EndReasonCompletedAllCards && result.BonusSeconds > 0 {
		s.bonus = &Bonus{Player: result.ClueGiver, Seconds: result.BonusSeconds}
	}

	s.recap = &result
	s.stage = StageRecap

	s.logger.Infof("%s ended turn in round %d: %s, %d correct, %d skipped",
		result.ClueGiver.Name, round, result.Reason, result.CorrectCount(), result.SkipCount)
}

func (s *Session) MarkCorrect() error {
	return s.do("correct", func() error {
		if err := s.require("correct", StageTurn); err != nil {
			return err
		}

		event, err := s.turn.MarkCorrect()
		if err != nil {
			return err
		}

		s.ledger.RecordCorrect(s.clueGiver.ID, event.ID, event.Duration)
		return nil
	})
}

func (s *Session) SkipCard() error {
	return s.do("skip", func() error {
		if err := s.require("skip", StageTurn); err != nil {
			return err
		}
		return s.turn.Skip()
	})
}

func (s *Session) PauseTurn() error {
	return s.do("pause", func() error {
		if err := s.require("pause", StageTurn); err != nil {
			return err
		}
		if err := s.turn.Pause(); err != nil {
			return err
		}

		s.stage = StageTurnPaused
		return nil
	})
}

func (s *Session) ResumeTurn() error {
	return s.do("resume", func() error {
		if err := s.require("resume", StageTurnPaused); err != nil {
			return err
		}
		if err := s.turn.Resume(); err != nil {
			return err
		}

		s.stage = StageTurn
		return nil
	})
}

func (s *Session) EndTurn() error {
	return s.do("end turn", func() error {
		if err := s.require("end turn", StageTurn, StageTurnPaused); err != nil {
			return err
		}
		return s.turn.EndManually()
	})
}

func (s *Session) recapEvent(eventID uuid.UUID) (int, error) {
	for i, event := range s.recap.Events {
		if event.ID == eventID {
			return i, nil
		}
	}
	return -1, model.NewValidationError("event", "not part of this recap")
}

// ToggleHighlight flips whether a recap card counts. Only finalization applies the change.
func (s *Session) ToggleHighlight(eventID uuid.UUID) error {
	return s.do("toggle highlight", func() error {
		if err := s.require("toggle highlight", StageRecap); err != nil {
			return err
		}

		idx, err := s.recapEvent(eventID)
		if err != nil {
			return err
		}

		event := s.recap.Events[idx]
		event.Highlighted = !event.Highlighted
		return nil
	})
}

// Undo puts a recap card back where it was drawn and reverses its point.
func (s *Session) Undo(eventID uuid.UUID) error {
	return s.do("undo", func() error {
		if err := s.require("undo", StageRecap); err != nil {
			return err
		}

		idx, err := s.recapEvent(eventID)
		if err != nil {
			return err
		}

		event := s.recap.Events[idx]
		s.recap.Events = append(s.recap.Events[:idx], s.recap.Events[idx+1:]...)
		s.deck.Reinsert(event.Card, event.OriginalIndex)
		s.reverse(event)
		s.forfeitBonus()
		return nil
	})
}

func (s *Session) reverse(event *turn.CorrectEvent) {
	s.ledger.UndoCorrect(s.rounds.curr(), s.recap.ClueGiver.Team, s.recap.ClueGiver.ID, event.ID, event.Duration)
}

// forfeitBonus drops bonus time earned by the recap's clue-giver once a card goes back in the deck.
func (s *Session) forfeitBonus() {
	if s.bonus != nil && s.bonus.Player.ID == s.recap.ClueGiver.ID {
		s.logger.Debugf("%s loses %ds of bonus time", s.bonus.Player.Name, s.bonus.Seconds)
		s.bonus = nil
	}
}

// FinalizeRecap applies the recap: unhighlighted cards return to the deck tail and lose
// their point. Then the round ends on an empty deck, otherwise the other team plays.
func (s *Session) FinalizeRecap() error {
	return s.do("finalize recap", func() error {
		if err := s.require("finalize recap", StageRecap); err != nil {
			return err
		}

		result := s.recap
		record := scoring.TurnRecord{
			Round:  s.rounds.curr(),
			Team:   result.ClueGiver.Team,
			Player: result.ClueGiver,
			Reason: result.Reason.String(),
		}

		var removed int
		for _, event := range result.Events {
			if event.Highlighted {
				record.Correct = append(record.Correct, event.Card)
				record.Durations = append(record.Durations, event.Duration)
				continue
			}

			s.deck.AppendToTail(event.Card)
			s.reverse(event)
			removed++
		}
		if removed > 0 {
			s.forfeitBonus()
		}

		s.ledger.LogTurn(record)
		s.recap = nil

		if s.deck.Empty() {
			s.endRound()
			return nil
		}

		s.team = result.ClueGiver.Team.Other()
		return s.handoff()
	})
}

// endRound closes a round whose deck ran out, or the game after the last round.
func (s *Session) endRound() {
	s.turn = nil
	s.recap = nil

	if s.rounds.isMax() {
		s.finish()
		return
	}

	s.stage = StageRoundEnd
	s.logger.Infof("round %d finished", s.rounds.curr())
}

// ProceedToNextRound moves from the round end to the next round intro, or ends the game.
func (s *Session) ProceedToNextRound() error {
	return s.do("next round", func() error {
		if err := s.require("next round", StageRoundEnd); err != nil {
			return err
		}

		if !s.rounds.next() {
			s.finish()
			return nil
		}

		s.prepareRound()
		return nil
	})
}

func (s *Session) finish() {
	s.stage = StageGameEnd
	s.turn = nil
	s.recap = nil

	summary := Summary{
		FinishedAt: s.config.Now(),
		Master:     append([]model.Card(nil), s.master...),
		Players:    s.builder.Players(),
		Rounds:     s.ledger.Rounds(),
		Total:      s.ledger.Cumulative(),
		Stats:      s.ledger.AllStats(),
	}
	if team, ok := summary.Total.Leader(); ok {
		summary.Winner = team
	}
	s.finished = &summary

	s.logger.Infof("game finished %d:%d", summary.Total.TeamA, summary.Total.TeamB)
}

// Rematch replays the same players and cards from round 1 with fresh scores.
func (s *Session) Rematch() error {
	return s.do("rematch", func() error {
		if s.stage == StageIntake {
			return fmt.Errorf("rematch in stage %s: %w", s.stage, model.ErrOperationNotAllowed)
		}

		s.ledger.Reset()
		s.bonus = nil
		s.rounds.front()
		s.prepareRound()

		s.logger.Infof("rematch with %d cards", len(s.master))
		return nil
	})
}

// NewGame drops players, cards and scores and returns to intake.
func (s *Session) NewGame() error {
	return s.do("new game", func() error {
		s.builder = roster.NewBuilder(s.config.Roster, s.config.Source)
		s.ledger = scoring.NewLedger()
		s.master = nil
		s.rosters = nil
		s.deck = nil
		s.team = 0
		s.clueGiver = nil
		s.turn = nil
		s.recap = nil
		s.bonus = nil
		s.rounds.front()
		s.stage = StageIntake
		return nil
	})
}

// SetTimerSeconds changes the turn length from the next turn on.
func (s *Session) SetTimerSeconds(seconds int) error {
	return s.do("set timer", func() error {
		if seconds < MinTimerSeconds || seconds > MaxTimerSeconds {
			return model.NewValidationError("timerSeconds", fmt.Sprintf("must be between %d and %d", MinTimerSeconds, MaxTimerSeconds))
		}

		s.timerSeconds = seconds
		return nil
	})
}

// Highlights summarizes the current round once it is over.
func (s *Session) Highlights() ([]string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.require("highlights", StageRoundEnd, StageGameEnd); err != nil {
		return nil, err
	}

	return s.ledger.Highlights(s.rounds.curr(), s.config.HighlightsPerRound), nil
}

// Winner reports the leading team on cumulative score; ok is false on a tie.
func (s *Session) Winner() (model.Team, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.ledger.Cumulative().Leader()
}

// Ranking orders players by correct answers.
func (s *Session) Ranking() []model.PlayerStats {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.ledger.Ranking()
}

// Turns returns the finalized turns of a round.
func (s *Session) Turns(round int) []scoring.TurnRecord {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.ledger.Turns(round)
}

// Deck returns the current round's remaining cards in order.
func (s *Session) Deck() []model.Card {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.deck == nil {
		return nil
	}
	return s.deck.Cards()
}
