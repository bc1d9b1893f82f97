// Package turn implements a single clue-giver turn: countdown, correct answers, skips and
// the rules that end a turn early.
package turn

import (
	"fmt"
	"time"

	"github.com/bloops-games/fishbowl/internal/fishbowl/deck"
	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/google/uuid"
)

// CorrectEvent is one card answered during a turn. Highlighted is toggled during recap;
// a card left unhighlighted at recap finalization was not actually guessed.
type CorrectEvent struct {
	ID            uuid.UUID
	Card          model.Card
	OriginalIndex int
	Duration      time.Duration
	Highlighted   bool
}

type Result struct {
	ClueGiver model.Player
	Reason    EndReason
	Events    []*CorrectEvent
	// BonusSeconds is the time left when the clue-giver cleared the deck, zero otherwise.
	BonusSeconds  int
	TimeRemaining int
	SkipCount     int
}

func (r Result) CorrectCount() int {
	return len(r.Events)
}

type Config struct {
	ClueGiver model.Player
	Deck      *deck.Deck
	// Seconds is the countdown budget for this turn.
	Seconds int
	Now     func() time.Time
	// DoneFn is called exactly once when the turn ends, after the countdown has stopped.
	DoneFn func(result Result)
}

func New(config Config) *Controller {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &Controller{
		state:         StateReady,
		clueGiver:     config.ClueGiver,
		deck:          config.Deck,
		timeRemaining: config.Seconds,
		now:           now,
		doneFn:        config.DoneFn,
	}
}

type Controller struct {
	state         State
	clueGiver     model.Player
	deck          *deck.Deck
	timeRemaining int
	skipCount     int
	initialSize   int
	shownAt       time.Time
	events        []*CorrectEvent
	reason        EndReason
	bonusSeconds  int
	now           func() time.Time
	doneFn        func(result Result)
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) TimeRemaining() int {
	return c.timeRemaining
}

func (c *Controller) SkipCount() int {
	return c.skipCount
}

func (c *Controller) CorrectCount() int {
	return len(c.events)
}

func (c *Controller) InitialDeckSize() int {
	return c.initialSize
}

func (c *Controller) Reason() EndReason {
	return c.reason
}

func (c *Controller) ClueGiver() model.Player {
	return c.clueGiver
}

func (c *Controller) Events() []*CorrectEvent {
	return c.events
}

// Begin starts the countdown. The deck must not be empty.
func (c *Controller) Begin() error {
	if c.state != StateReady {
		return fmt.Errorf("begin turn in state %s: %w", c.state, model.ErrOperationNotAllowed)
	}
	if c.deck.Empty() {
		return fmt.Errorf("begin turn on empty deck: %w", model.ErrOperationNotAllowed)
	}

	c.initialSize = c.deck.Len()
	c.shownAt = c.now()
	c.state = StateActive
	return nil
}

// Tick advances the countdown by one second. It is a no-op unless the turn is active,
// so a tick that races a manual end changes nothing. It reports whether the tick
// expired the turn.
func (c *Controller) Tick() bool {
	if c.state != StateActive || c.timeRemaining <= 0 {
		return false
	}

	c.timeRemaining--
	if c.timeRemaining == 0 {
		c.finish(EndReasonTimerExpired)
		return true
	}

	return false
}

func (c *Controller) MarkCorrect() (*CorrectEvent, error) {
	if c.state != StateActive {
		return nil, fmt.Errorf("correct in state %s: %w", c.state, model.ErrOperationNotAllowed)
	}

	card, ok := c.deck.DrawTop()
	if !ok {
		return nil, fmt.Errorf("correct on empty deck: %w", model.ErrOperationNotAllowed)
	}

	now := c.now()
	event := &CorrectEvent{
		ID:          uuid.New(),
		Card:        card,
		Duration:    now.Sub(c.shownAt),
		Highlighted: true,
	}
	c.events = append(c.events, event)
	c.shownAt = now

	c.evaluate()
	return event, nil
}

func (c *Controller) Skip() error {
	if c.state != StateActive {
		return fmt.Errorf("skip in state %s: %w", c.state, model.ErrOperationNotAllowed)
	}

	if _, err := c.deck.SkipTop(); err != nil {
		return err
	}

	c.skipCount++
	c.shownAt = c.now()

	c.evaluate()
	return nil
}

func (c *Controller) Pause() error {
	if c.state != StateActive {
		return fmt.Errorf("pause in state %s: %w", c.state, model.ErrOperationNotAllowed)
	}
	c.state = StatePaused
	return nil
}

func (c *Controller) Resume() error {
	if c.state != StatePaused {
		return fmt.Errorf("resume in state %s: %w", c.state, model.ErrOperationNotAllowed)
	}
	c.state = StateActive
	return nil
}

// EndManually ends an active or paused turn on the clue-giver's request.
func (c *Controller) EndManually() error {
	if c.state != StateActive && c.state != StatePaused {
		return fmt.Errorf("end turn in state %s: %w", c.state, model.ErrOperationNotAllowed)
	}
	c.finish(EndReasonManual)
	return nil
}

// evaluate ends the turn once every card available at turn start has been either
// answered or skipped, or when the deck runs out.
func (c *Controller) evaluate() {
	switch {
	case c.skipCount > 0 && c.skipCount+len(c.events) >= c.initialSize:
		c.finish(EndReasonSkipCycleComplete)
	case c.deck.Empty():
		c.bonusSeconds = c.timeRemaining
		c.finish(EndReasonCompletedAllCards)
	}
}

func (c *Controller) finish(reason EndReason) {
	if c.state == StateEnded {
		return
	}

	// leaving Active stops the countdown before any side effect
	c.state = StateEnded
	c.reason = reason

	if reason == EndReasonTimerExpired {
		c.deck.RotateHead()
	}

	if c.doneFn != nil {
		c.doneFn(c.Result())
	}
}

func (c *Controller) Result() Result {
	events := make([]*CorrectEvent, len(c.events))
	copy(events, c.events)

	return Result{
		ClueGiver:     c.clueGiver,
		Reason:        c.reason,
		Events:        events,
		BonusSeconds:  c.bonusSeconds,
		TimeRemaining: c.timeRemaining,
		SkipCount:     c.skipCount,
	}
}
