package model

import (
	"time"

	fishbowl "github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/google/uuid"
)

type Conclusion string

const (
	ConclusionWin  Conclusion = "win"
	ConclusionLoss Conclusion = "loss"
	ConclusionTie  Conclusion = "tie"
)

func NewStat(player string, createdAt time.Time) Stat {
	return Stat{ID: uuid.New(), Player: player, Conclusion: ConclusionTie, CreatedAt: createdAt}
}

// Stat is one player's line of one finished game.
type Stat struct {
	ID     uuid.UUID     `json:"-"`
	Player string        `json:"player"`
	Team   fishbowl.Team `json:"team"`

	CorrectCount int `json:"correctCount"`
	TurnsTaken   int `json:"turnsTaken"`

	AverageAnswer time.Duration `json:"averageAnswer"`
	BestAnswer    time.Duration `json:"bestAnswer"`
	WorstAnswer   time.Duration `json:"worstAnswer"`

	Conclusion Conclusion `json:"conclusion"`
	PlayersNum int        `json:"playersNum"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// AggregationStat is a player's profile over every archived game.
type AggregationStat struct {
	Count        int
	Wins         int
	CorrectCount int
	TurnsTaken   int
	AvgAnswer    time.Duration
	BestAnswer   time.Duration
	WorstAnswer  time.Duration
}
