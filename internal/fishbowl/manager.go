package fishbowl

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloops-games/fishbowl/internal/cache"
	"github.com/bloops-games/fishbowl/internal/database"
	resultDb "github.com/bloops-games/fishbowl/internal/database/result/database"
	resultModel "github.com/bloops-games/fishbowl/internal/database/result/model"
	statDb "github.com/bloops-games/fishbowl/internal/database/stat/database"
	statModel "github.com/bloops-games/fishbowl/internal/database/stat/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/match"
	"github.com/bloops-games/fishbowl/internal/fishbowl/resource"
	"github.com/bloops-games/fishbowl/internal/fishbowl/titlebank"
	"github.com/bloops-games/fishbowl/internal/hashutil"
	"github.com/bloops-games/fishbowl/internal/logging"
)

// NewManager builds the title bank and the game session, and opens the results archive
// when a path is configured.
func NewManager(ctx context.Context, config *Config) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	titles, err := cache.NewLRU(config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("title cache: %w", err)
	}

	m := &Manager{ctx: ctx, config: config}
	if config.Db.Enabled() {
		db, err := database.NewFromEnv(ctx, &config.Db)
		if err != nil {
			return nil, fmt.Errorf("results archive: %w", err)
		}

		results, err := cache.NewLRU(config.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("results cache: %w", err)
		}

		stats, err := cache.NewLRU(config.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("stats cache: %w", err)
		}

		m.db = db
		m.results = resultDb.New(db, results)
		m.stats = statDb.New(db, stats)
	}

	m.session = match.NewSession(ctx, match.Config{
		Roster:             config.RosterConfig(),
		Source:             titlebank.NewDefault(titles),
		StartingTeam:       config.StartingTeam,
		TimerSeconds:       config.TimerSeconds,
		SkipsRoundTwo:      config.SkipsRoundTwo,
		SkipsRoundThree:    config.SkipsRoundThree,
		HighlightsPerRound: config.HighlightsPerRound,
		Tick:               config.Tick,
		DoneFn:             m.archive,
	})

	return m, nil
}

type Manager struct {
	ctx     context.Context
	config  *Config
	session *match.Session
	db      *database.DB
	results *resultDb.DB
	stats   *statDb.DB
}

func (m *Manager) Session() *match.Session {
	return m.session
}

func (m *Manager) Run(ctx context.Context) error {
	return m.session.Run(ctx)
}

// History returns up to n archived games, newest first. It is empty when the archive is disabled.
func (m *Manager) History(n int) ([]resultModel.Result, error) {
	if m.results == nil {
		return nil, nil
	}

	list, err := m.results.FetchLatest(n)
	if err != nil {
		if errors.Is(err, resultDb.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	return list, nil
}

// Profile aggregates a player's archived games. ok is false when the player has none or
// the archive is disabled.
func (m *Manager) Profile(name string) (profile statModel.AggregationStat, ok bool, err error) {
	if m.stats == nil {
		return profile, false, nil
	}

	profile, err = m.stats.FetchProfileStat(name)
	if err != nil {
		if errors.Is(err, statDb.ErrNotFound) {
			return profile, false, nil
		}
		return profile, false, fmt.Errorf("fetch profile: %w", err)
	}

	return profile, true, nil
}

func (m *Manager) Close(ctx context.Context) error {
	if m.db == nil {
		return nil
	}
	return m.db.Close(ctx)
}

func (m *Manager) archive(summary match.Summary) {
	logger := logging.FromContext(m.ctx).Named("manager.archive")
	if m.results == nil {
		return
	}

	if err := m.results.Add(NewResult(summary)); err != nil {
		logger.Errorf("archive result: %v", err)
		return
	}

	if err := m.stats.Add(NewStats(summary)...); err != nil {
		logger.Errorf("archive player stats: %v", err)
		return
	}

	logger.Infof("archived game %d:%d", summary.Total.TeamA, summary.Total.TeamB)
}

// NewStats splits a game summary into one archived line per player.
func NewStats(summary match.Summary) []statModel.Stat {
	out := make([]statModel.Stat, 0, len(summary.Players))
	for _, player := range summary.Players {
		stats := summary.Stats[player.ID]

		stat := statModel.NewStat(player.Name, summary.FinishedAt)
		stat.Team = player.Team
		stat.CorrectCount = stats.CorrectCount
		stat.TurnsTaken = stats.TurnsTaken
		stat.AverageAnswer = stats.AverageAnswer()
		stat.PlayersNum = len(summary.Players)
		if stats.Fastest != nil {
			stat.BestAnswer = *stats.Fastest
		}
		if stats.Slowest != nil {
			stat.WorstAnswer = *stats.Slowest
		}

		switch summary.Winner {
		case player.Team:
			stat.Conclusion = statModel.ConclusionWin
		case 0:
			stat.Conclusion = statModel.ConclusionTie
		default:
			stat.Conclusion = statModel.ConclusionLoss
		}

		out = append(out, stat)
	}

	return out
}

// NewResult flattens a game summary for the archive.
func NewResult(summary match.Summary) resultModel.Result {
	result := resultModel.NewResult(summary.FinishedAt)

	titles := make([]string, len(summary.Master))
	for i, card := range summary.Master {
		titles[i] = card.Text
	}
	result.Fingerprint = hashutil.Fingerprint(titles)
	result.Cards = len(summary.Master)

	for round := 1; round <= resource.RoundsNum; round++ {
		score, ok := summary.Rounds[round]
		if !ok {
			continue
		}
		result.Rounds = append(result.Rounds, resultModel.RoundScore{Round: round, TeamA: score.TeamA, TeamB: score.TeamB})
	}
	result.TeamA = summary.Total.TeamA
	result.TeamB = summary.Total.TeamB
	result.Winner = summary.Winner

	for _, player := range summary.Players {
		stats := summary.Stats[player.ID]
		pr := resultModel.PlayerResult{
			Name:          player.Name,
			Team:          player.Team,
			CorrectCount:  stats.CorrectCount,
			TurnsTaken:    stats.TurnsTaken,
			AverageAnswer: stats.AverageAnswer(),
		}
		if stats.Fastest != nil {
			pr.Fastest = *stats.Fastest
		}
		if stats.Slowest != nil {
			pr.Slowest = *stats.Slowest
		}
		result.Players = append(result.Players, pr)
	}

	return result
}
