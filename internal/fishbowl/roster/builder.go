// Package roster collects players during intake and builds the master set of cards.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/titlebank"
	"github.com/bloops-games/fishbowl/internal/logging"
	"github.com/google/uuid"
)

const maxManualWords = 6

type Config struct {
	Players              int
	CandidatesPerPlayer  int
	PicksPerPlayer       int
	ManualWordsPerPlayer int
	Filter               titlebank.Filter
}

// Request is one player's intake submission. Picks reference cards returned by Candidates.
type Request struct {
	Name        string
	Team        model.Team
	Picks       []uuid.UUID
	ManualWords []string
}

func NewBuilder(config Config, source titlebank.Source) *Builder {
	return &Builder{
		config:  config,
		source:  source,
		rosters: map[model.Team][]model.Player{},
		titles:  model.TitleSet{},
	}
}

type Builder struct {
	config     Config
	source     titlebank.Source
	players    []model.Player
	rosters    map[model.Team][]model.Player
	master     []model.Card
	titles     model.TitleSet
	candidates []model.Card
}

func (b *Builder) Config() Config {
	return b.config
}

// NextTeam is the team the next player joins: team A until it holds half the
// players rounded down, then team B.
func (b *Builder) NextTeam() model.Team {
	if len(b.rosters[model.TeamA]) < b.config.Players/2 {
		return model.TeamA
	}
	return model.TeamB
}

func (b *Builder) Complete() bool {
	return len(b.players) >= b.config.Players
}

func (b *Builder) Players() []model.Player {
	out := make([]model.Player, len(b.players))
	copy(out, b.players)
	return out
}

// Roster returns the team's players in intake order.
func (b *Builder) Roster(team model.Team) []model.Player {
	roster := b.rosters[team]
	out := make([]model.Player, len(roster))
	copy(out, roster)
	return out
}

func (b *Builder) Master() []model.Card {
	out := make([]model.Card, len(b.master))
	copy(out, b.master)
	return out
}

// Candidates returns the titles offered to the next player, drawing them on first call.
// A short supply returns what could be drawn together with a *model.SupplyShortfallError.
func (b *Builder) Candidates(ctx context.Context) ([]model.Card, error) {
	if b.Complete() {
		return nil, fmt.Errorf("candidates after intake: %w", model.ErrOperationNotAllowed)
	}
	if b.config.PicksPerPlayer == 0 || b.candidates != nil {
		return b.offered(), nil
	}

	cards, err := b.source.DrawN(ctx, b.config.Filter, b.titles, b.config.CandidatesPerPlayer)
	if err != nil && !errors.Is(err, model.ErrSupplyShortfall) {
		return nil, fmt.Errorf("draw candidates: %w", err)
	}

	b.candidates = cards
	if b.candidates == nil {
		b.candidates = []model.Card{}
	}

	return b.offered(), err
}

// Reroll replaces one offered candidate with a title that is neither offered nor in the master set.
func (b *Builder) Reroll(ctx context.Context, cardID uuid.UUID) (model.Card, error) {
	idx := -1
	for i := range b.candidates {
		if b.candidates[i].ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Card{}, model.NewValidationError("card", "not among the offered candidates")
	}

	exclude := b.titles.Clone()
	for _, card := range b.candidates {
		exclude.Add(card.Text)
	}

	card, err := b.source.Draw(ctx, b.config.Filter, exclude)
	if err != nil {
		return model.Card{}, fmt.Errorf("reroll: %w", err)
	}

	b.candidates[idx] = card
	return card, nil
}

func (b *Builder) offered() []model.Card {
	out := make([]model.Card, len(b.candidates))
	copy(out, b.candidates)
	return out
}

// Intake validates and adds one player. Nothing changes when an error is returned.
func (b *Builder) Intake(ctx context.Context, req Request) (model.Player, error) {
	logger := logging.FromContext(ctx).Named("roster.Intake")

	if b.Complete() {
		return model.Player{}, fmt.Errorf("intake with %d players: %w", len(b.players), model.ErrOperationNotAllowed)
	}

	name := strings.TrimSpace(req.Name)
	if err := b.validateName(name); err != nil {
		return model.Player{}, err
	}

	if req.Team != b.NextTeam() {
		return model.Player{}, model.NewValidationError("team", fmt.Sprintf("next player joins %s", b.NextTeam().Name()))
	}

	picks, err := b.validatePicks(req.Picks)
	if err != nil {
		return model.Player{}, err
	}

	manual, err := b.validateManual(req.ManualWords, picks)
	if err != nil {
		return model.Player{}, err
	}

	titles := b.titles.Clone()
	var added []model.Card
	for _, card := range picks {
		if titles.Has(card.Text) {
			continue
		}
		titles.Add(card.Text)
		added = append(added, card)
	}

	for _, word := range manual {
		titles.Add(word)
	}

	if short := len(picks) - len(added); short > 0 {
		cards, err := b.source.DrawN(ctx, b.config.Filter, titles, short)
		if err != nil && !errors.Is(err, model.ErrSupplyShortfall) {
			return model.Player{}, fmt.Errorf("draw replacements: %w", err)
		}
		if err != nil {
			logger.Infof("replacement shortfall for %s: %v", name, err)
		}
		for _, card := range cards {
			titles.Add(card.Text)
			added = append(added, card)
		}
	}

	for _, word := range manual {
		added = append(added, model.NewManualCard(word))
	}

	player := model.NewPlayer(name, req.Team)
	b.players = append(b.players, player)
	b.rosters[req.Team] = append(b.rosters[req.Team], player)
	b.master = append(b.master, added...)
	b.titles = titles
	b.candidates = nil

	logger.Debugf("player %s joined %s with %d cards", player.Name, player.Team.Name(), len(added))

	return player, nil
}

func (b *Builder) validateName(name string) error {
	if name == "" {
		return model.NewValidationError("name", "must not be blank")
	}

	for _, player := range b.players {
		if strings.EqualFold(player.Name, name) {
			return model.NewValidationError("name", fmt.Sprintf("%q is already taken", player.Name))
		}
	}

	return nil
}

func (b *Builder) validatePicks(ids []uuid.UUID) ([]model.Card, error) {
	required := b.config.PicksPerPlayer
	if len(ids) != required {
		return nil, model.NewValidationError("picks", fmt.Sprintf("pick exactly %d titles", required))
	}

	picks := make([]model.Card, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return nil, model.NewValidationError("picks", "a title is picked twice")
		}
		seen[id] = struct{}{}

		card, ok := b.candidate(id)
		if !ok {
			return nil, model.NewValidationError("picks", "pick is not among the offered candidates")
		}
		picks = append(picks, card)
	}

	return picks, nil
}

func (b *Builder) candidate(id uuid.UUID) (model.Card, bool) {
	for _, card := range b.candidates {
		if card.ID == id {
			return card, true
		}
	}
	return model.Card{}, false
}

func (b *Builder) validateManual(words []string, picks []model.Card) ([]string, error) {
	required := b.config.ManualWordsPerPlayer
	if len(words) != required {
		return nil, model.NewValidationError("manualWords", fmt.Sprintf("enter exactly %d words", required))
	}

	out := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.Join(strings.Fields(word), " ")
		if word == "" {
			return nil, model.NewValidationError("manualWords", "must not be blank")
		}
		if model.WordCount(word) > maxManualWords {
			return nil, model.NewValidationError("manualWords", fmt.Sprintf("%q is longer than %d words", word, maxManualWords))
		}
		out = append(out, word)
	}

	submitted := model.TitleSet{}
	for _, word := range out {
		if submitted.Has(word) {
			return nil, model.NewValidationError("manualWords", fmt.Sprintf("%q is entered twice", word))
		}
		submitted.Add(word)
	}

	own := model.NewTitleSet(picks...)
	for _, word := range out {
		if b.titles.Has(word) || own.Has(word) {
			return nil, model.NewValidationError("manualWords", fmt.Sprintf("%q is already in the game", word))
		}
	}

	return out, nil
}
