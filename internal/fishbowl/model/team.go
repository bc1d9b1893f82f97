package model

import "fmt"

type Team uint8

const (
	TeamA Team = iota + 1
	TeamB
)

var Teams = []Team{TeamA, TeamB}

func (t Team) Valid() bool {
	return t == TeamA || t == TeamB
}

func (t Team) Other() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

func (t Team) String() string {
	switch t {
	case TeamA:
		return "A"
	case TeamB:
		return "B"
	default:
		return "unknown"
	}
}

func (t Team) Name() string {
	return "Team " + t.String()
}

// ParseTeam accepts "A", "B" and their lower-case forms.
func ParseTeam(s string) (Team, error) {
	switch s {
	case "A", "a":
		return TeamA, nil
	case "B", "b":
		return TeamB, nil
	}
	return 0, fmt.Errorf("parse team %q: %w", s, ErrUnknownTeam)
}

// Decode implements envconfig.Decoder.
func (t *Team) Decode(value string) error {
	team, err := ParseTeam(value)
	if err != nil {
		return err
	}
	*t = team
	return nil
}
