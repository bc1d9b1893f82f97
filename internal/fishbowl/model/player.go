package model

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Team Team      `json:"team"`
}

func NewPlayer(name string, team Team) Player {
	return Player{ID: uuid.New(), Name: name, Team: team}
}

type PlayerStats struct {
	PlayerID     uuid.UUID      `json:"playerId"`
	CorrectCount int            `json:"correctCount"`
	TotalTime    time.Duration  `json:"totalTime"`
	TurnsTaken   int            `json:"turnsTaken"`
	Fastest      *time.Duration `json:"fastest,omitempty"`
	Slowest      *time.Duration `json:"slowest,omitempty"`
}

func NewPlayerStats(playerID uuid.UUID) PlayerStats {
	return PlayerStats{PlayerID: playerID}
}

func (s PlayerStats) AverageAnswer() time.Duration {
	if s.CorrectCount == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.CorrectCount)
}

// Observe applies one correct answer of the given duration.
func (s *PlayerStats) Observe(d time.Duration) {
	s.CorrectCount++
	s.TotalTime += d

	if s.Fastest == nil || d < *s.Fastest {
		fastest := d
		s.Fastest = &fastest
	}

	if s.Slowest == nil || d > *s.Slowest {
		slowest := d
		s.Slowest = &slowest
	}
}

// Clone returns a copy that does not share the fastest/slowest pointers.
func (s PlayerStats) Clone() PlayerStats {
	out := s
	if s.Fastest != nil {
		fastest := *s.Fastest
		out.Fastest = &fastest
	}
	if s.Slowest != nil {
		slowest := *s.Slowest
		out.Slowest = &slowest
	}
	return out
}
