package model

import (
	"time"

	fishbowl "github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/google/uuid"
)

func NewResult(finishedAt time.Time) Result {
	return Result{ID: uuid.New(), FinishedAt: finishedAt}
}

// Result is the archived outcome of one finished game.
type Result struct {
	ID          uuid.UUID `json:"id"`
	FinishedAt  time.Time `json:"finishedAt"`
	Fingerprint string    `json:"fingerprint"`
	Cards       int       `json:"cards"`

	Rounds []RoundScore `json:"rounds"`
	TeamA  int          `json:"teamA"`
	TeamB  int          `json:"teamB"`
	// Winner is zero on a tie.
	Winner fishbowl.Team `json:"winner,omitempty"`

	Players []PlayerResult `json:"players"`
}

type RoundScore struct {
	Round int `json:"round"`
	TeamA int `json:"teamA"`
	TeamB int `json:"teamB"`
}

type PlayerResult struct {
	Name          string        `json:"name"`
	Team          fishbowl.Team `json:"team"`
	CorrectCount  int           `json:"correctCount"`
	TurnsTaken    int           `json:"turnsTaken"`
	AverageAnswer time.Duration `json:"averageAnswer"`
	Fastest       time.Duration `json:"fastest"`
	Slowest       time.Duration `json:"slowest"`
}

func (r Result) Tie() bool {
	return !r.Winner.Valid()
}
