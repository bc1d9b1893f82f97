package match

import (
	"time"

	"github.com/bloops-games/fishbowl/internal/fishbowl/deck"
	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/roster"
	"github.com/bloops-games/fishbowl/internal/fishbowl/titlebank"
)

// Turn length bounds in seconds.
const (
	MinTimerSeconds = 10
	MaxTimerSeconds = 300
)

type Config struct {
	Roster             roster.Config
	Source             titlebank.Source
	StartingTeam       model.Team
	TimerSeconds       int
	SkipsRoundTwo      bool
	SkipsRoundThree    bool
	HighlightsPerRound int
	// Tick is the countdown step used by Run.
	Tick time.Duration

	Shuffle deck.ShuffleFn
	Now     func() time.Time
	// DoneFn receives the summary of every finished game.
	DoneFn func(summary Summary)
}

func (c Config) skipsAllowed(round int) bool {
	switch round {
	case 2:
		return c.SkipsRoundTwo
	case 3:
		return c.SkipsRoundThree
	default:
		return false
	}
}
