package fishbowl

import (
	"fmt"
	"strings"
	"time"

	"github.com/bloops-games/fishbowl/internal/database"
	"github.com/bloops-games/fishbowl/internal/fishbowl/match"
	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/resource"
	"github.com/bloops-games/fishbowl/internal/fishbowl/roster"
	"github.com/bloops-games/fishbowl/internal/fishbowl/titlebank"
)

const maxDifficulty = 5

type Config struct {
	Debug                bool          `envconfig:"FISHBOWL_DEBUG" default:"false"`
	Players              int           `envconfig:"FISHBOWL_PLAYERS" default:"8"`
	StartingTeam         model.Team    `envconfig:"FISHBOWL_STARTING_TEAM" default:"A"`
	TimerSeconds         int           `envconfig:"FISHBOWL_TIMER_SECONDS" default:"60"`
	CandidatesPerPlayer  int           `envconfig:"FISHBOWL_CANDIDATES_PER_PLAYER" default:"5"`
	PicksPerPlayer       int           `envconfig:"FISHBOWL_PICKS_PER_PLAYER" default:"3"`
	ManualWordsPerPlayer int           `envconfig:"FISHBOWL_MANUAL_WORDS_PER_PLAYER" default:"0"`
	SkipsRoundTwo        bool          `envconfig:"FISHBOWL_SKIPS_ROUND_TWO" default:"true"`
	SkipsRoundThree      bool          `envconfig:"FISHBOWL_SKIPS_ROUND_THREE" default:"true"`
	HighlightsPerRound   int           `envconfig:"FISHBOWL_HIGHLIGHTS_PER_ROUND" default:"3"`
	Categories           []string      `envconfig:"FISHBOWL_CATEGORIES"`
	MinDifficulty        int           `envconfig:"FISHBOWL_MIN_DIFFICULTY" default:"1"`
	MaxDifficulty        int           `envconfig:"FISHBOWL_MAX_DIFFICULTY" default:"5"`
	MinWords             int           `envconfig:"FISHBOWL_MIN_WORDS" default:"0"`
	MaxWords             int           `envconfig:"FISHBOWL_MAX_WORDS" default:"0"`
	CacheSize            int           `envconfig:"FISHBOWL_CACHE_SIZE" default:"128"`
	Tick                 time.Duration `envconfig:"FISHBOWL_TICK" default:"1s"`
	Db                   database.Config
}

// Validate reports the first invalid setting as a *model.ValidationError.
func (c *Config) Validate() error {
	switch {
	case c.Players < 2:
		return model.NewValidationError("players", "at least 2 players are needed")
	case !c.StartingTeam.Valid():
		return model.NewValidationError("startingTeam", fmt.Sprintf("unknown team %d", c.StartingTeam))
	case c.TimerSeconds < match.MinTimerSeconds || c.TimerSeconds > match.MaxTimerSeconds:
		return model.NewValidationError("timerSeconds", fmt.Sprintf("must be between %d and %d", match.MinTimerSeconds, match.MaxTimerSeconds))
	case c.PicksPerPlayer < 0 || c.ManualWordsPerPlayer < 0:
		return model.NewValidationError("picksPerPlayer", "must not be negative")
	case c.PicksPerPlayer+c.ManualWordsPerPlayer == 0:
		return model.NewValidationError("picksPerPlayer", "every player must add at least one card")
	case c.CandidatesPerPlayer < c.PicksPerPlayer:
		return model.NewValidationError("candidatesPerPlayer", "must offer at least as many titles as are picked")
	case c.HighlightsPerRound < 0:
		return model.NewValidationError("highlightsPerRound", "must not be negative")
	case c.MinDifficulty < 0 || c.MaxDifficulty < 0 || c.MinDifficulty > maxDifficulty || c.MaxDifficulty > maxDifficulty:
		return model.NewValidationError("difficulty", fmt.Sprintf("must be between 0 and %d", maxDifficulty))
	case c.MaxDifficulty > 0 && c.MinDifficulty > c.MaxDifficulty:
		return model.NewValidationError("difficulty", "minimum exceeds maximum")
	case c.MinWords < 0 || c.MaxWords < 0:
		return model.NewValidationError("words", "must not be negative")
	case c.MaxWords > 0 && c.MinWords > c.MaxWords:
		return model.NewValidationError("words", "minimum exceeds maximum")
	case c.CacheSize <= 0:
		return model.NewValidationError("cacheSize", "must be positive")
	case c.Tick <= 0:
		return model.NewValidationError("tick", "must be positive")
	}

	for _, category := range c.Categories {
		if !knownCategory(category) {
			return model.NewValidationError("categories", fmt.Sprintf("unknown category %q", category))
		}
	}

	return nil
}

func knownCategory(category string) bool {
	for _, known := range resource.Categories {
		if strings.EqualFold(known, strings.TrimSpace(category)) {
			return true
		}
	}
	return false
}

func (c *Config) Filter() titlebank.Filter {
	categories := make([]string, len(c.Categories))
	for i, category := range c.Categories {
		categories[i] = strings.TrimSpace(category)
	}

	return titlebank.Filter{
		Categories:    categories,
		MinDifficulty: c.MinDifficulty,
		MaxDifficulty: c.MaxDifficulty,
		MinWords:      c.MinWords,
		MaxWords:      c.MaxWords,
	}
}

func (c *Config) RosterConfig() roster.Config {
	return roster.Config{
		Players:              c.Players,
		CandidatesPerPlayer:  c.CandidatesPerPlayer,
		PicksPerPlayer:       c.PicksPerPlayer,
		ManualWordsPerPlayer: c.ManualWordsPerPlayer,
		Filter:               c.Filter(),
	}
}
