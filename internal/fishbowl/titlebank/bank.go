package titlebank

import (
	"context"
	"fmt"

	"github.com/bloops-games/fishbowl/internal/cache"
	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/resource"
	"github.com/bloops-games/fishbowl/internal/logging"
	"github.com/valyala/fastrand"
)

// Source supplies candidate titles. Implementations must never return a title in exclude.
type Source interface {
	Draw(ctx context.Context, filter Filter, exclude model.TitleSet) (model.Card, error)
	DrawN(ctx context.Context, filter Filter, exclude model.TitleSet, n int) ([]model.Card, error)
	Preload(ctx context.Context, filter Filter, n int) ([]model.Card, error)
}

var _ Source = (*Bank)(nil)

// New builds a bank over the given titles. The cache, when set, keeps filtered pools by filter key.
func New(titles []resource.Title, c cache.Cache) *Bank {
	cards := make([]model.Card, 0, len(titles))
	seen := model.TitleSet{}
	for _, title := range titles {
		if seen.Has(title.Text) {
			continue
		}
		seen.Add(title.Text)
		cards = append(cards, model.NewCard(title.Text, title.Difficulty, title.Categories...))
	}

	return &Bank{cards: cards, cache: c}
}

func NewDefault(c cache.Cache) *Bank {
	return New(resource.Titles, c)
}

type Bank struct {
	cards []model.Card
	cache cache.Cache
}

func (b *Bank) Len() int {
	return len(b.cards)
}

func (b *Bank) Draw(ctx context.Context, filter Filter, exclude model.TitleSet) (model.Card, error) {
	cards, err := b.DrawN(ctx, filter, exclude, 1)
	if err != nil {
		return model.Card{}, err
	}
	return cards[0], nil
}

// DrawN draws n distinct titles, visiting the filter's categories round-robin so that
// every category is represented before any repeats.
func (b *Bank) DrawN(ctx context.Context, filter Filter, exclude model.TitleSet, n int) ([]model.Card, error) {
	logger := logging.FromContext(ctx).Named("titlebank.DrawN")
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}

	if n <= 0 {
		return nil, nil
	}

	groups, order := b.groups(b.pool(filter), exclude)

	used := model.TitleSet{}
	out := make([]model.Card, 0, n)
	for len(out) < n {
		var found bool
		for _, category := range order {
			if len(out) >= n {
				break
			}

			group := groups[category]
			for len(group) > 0 {
				idx := fastrand.Uint32n(uint32(len(group)))
				card := group[idx]
				group[idx] = group[len(group)-1]
				group = group[:len(group)-1]
				if used.Has(card.Text) {
					continue
				}

				used.Add(card.Text)
				out = append(out, withNewID(card))
				found = true
				break
			}
			groups[category] = group
		}

		if !found {
			break
		}
	}

	if len(out) < n {
		logger.Debugf("supplied %d of %d titles for filter %q", len(out), n, filter.Key())
		return out, &model.SupplyShortfallError{Requested: n, Supplied: len(out)}
	}

	return out, nil
}

func (b *Bank) Preload(ctx context.Context, filter Filter, n int) ([]model.Card, error) {
	return b.DrawN(ctx, filter, model.TitleSet{}, n)
}

func (b *Bank) pool(filter Filter) []model.Card {
	key := filter.Key()
	if b.cache != nil {
		if v, ok := b.cache.Get(key); ok {
			return v.([]model.Card)
		}
	}

	pool := make([]model.Card, 0, len(b.cards))
	for _, card := range b.cards {
		if filter.Match(card) {
			pool = append(pool, card)
		}
	}

	if b.cache != nil {
		b.cache.Add(key, pool)
	}

	return pool
}

// groups buckets the pool by category, dropping excluded titles. The returned slices are
// fresh copies; the cached pool is never mutated.
func (b *Bank) groups(pool []model.Card, exclude model.TitleSet) (map[string][]model.Card, []string) {
	groups := map[string][]model.Card{}
	var order []string
	for _, card := range pool {
		if exclude.Has(card.Text) {
			continue
		}

		category := model.ManualCategory
		if len(card.Categories) > 0 {
			category = card.Categories[fastrand.Uint32n(uint32(len(card.Categories)))]
		}

		if _, ok := groups[category]; !ok {
			order = append(order, category)
		}
		groups[category] = append(groups[category], card)
	}

	for i := len(order) - 1; i > 0; i-- {
		j := fastrand.Uint32n(uint32(i + 1))
		order[i], order[j] = order[j], order[i]
	}

	return groups, order
}

// withNewID copies a bank card under a fresh id.
func withNewID(card model.Card) model.Card {
	out := model.NewCard(card.Text, card.Difficulty, card.Categories...)
	out.Manual = card.Manual
	return out
}
