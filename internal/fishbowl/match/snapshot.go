package match

import (
	"time"

	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/resource"
	"github.com/bloops-games/fishbowl/internal/fishbowl/scoring"
	"github.com/bloops-games/fishbowl/internal/fishbowl/turn"
	"github.com/google/uuid"
)

// Bonus is time left over by a clue-giver who cleared the deck. It is spent on their next turn.
type Bonus struct {
	Player  model.Player
	Seconds int
}

// Snapshot is a copy of the session state. Nothing in it aliases session internals.
type Snapshot struct {
	// Seq grows with every change; a lower Seq is an older state.
	Seq   uint64
	Stage Stage
	Round resource.Round

	// intake
	Players         []model.Player
	PlayersExpected int
	IntakeTeam      model.Team

	Team          model.Team
	ClueGiver     *model.Player
	TimerSeconds  int
	TimeRemaining int
	Head          *model.Card
	DeckSize      int
	SkipAllowed   bool
	SkipCount     int
	Answered      int
	EndReason     turn.EndReason
	Recap         []turn.CorrectEvent
	Bonus         *Bonus

	Rounds map[int]scoring.RoundScore
	Total  scoring.RoundScore
	Stats  map[uuid.UUID]model.PlayerStats
}

type Observer interface {
	Notify(snapshot Snapshot)
}

type ObserverFunc func(snapshot Snapshot)

func (fn ObserverFunc) Notify(snapshot Snapshot) {
	fn(snapshot)
}

// Summary is the outcome of a finished game.
type Summary struct {
	FinishedAt time.Time
	Master     []model.Card
	Players    []model.Player
	Rounds     map[int]scoring.RoundScore
	Total      scoring.RoundScore
	// Winner is zero on a tie.
	Winner model.Team
	Stats  map[uuid.UUID]model.PlayerStats
}
