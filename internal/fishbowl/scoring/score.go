package scoring

import "github.com/bloops-games/fishbowl/internal/fishbowl/model"

type RoundScore struct {
	TeamA int `json:"teamA"`
	TeamB int `json:"teamB"`
}

func (s RoundScore) Total() int {
	return s.TeamA + s.TeamB
}

func (s RoundScore) Of(team model.Team) int {
	if team == model.TeamA {
		return s.TeamA
	}
	return s.TeamB
}

// Leader returns the team ahead; ok is false on a tie.
func (s RoundScore) Leader() (model.Team, bool) {
	switch {
	case s.TeamA > s.TeamB:
		return model.TeamA, true
	case s.TeamB > s.TeamA:
		return model.TeamB, true
	default:
		return 0, false
	}
}

// add applies delta to the team's counter, flooring at zero.
func (s *RoundScore) add(team model.Team, delta int) {
	counter := &s.TeamB
	if team == model.TeamA {
		counter = &s.TeamA
	}

	*counter += delta
	if *counter < 0 {
		*counter = 0
	}
}
