package titlebank

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
)

// Filter selects titles by category, difficulty and word count. Zero bounds are open.
type Filter struct {
	Categories    []string
	MinDifficulty int
	MaxDifficulty int
	MinWords      int
	MaxWords      int
}

func (f Filter) Match(card model.Card) bool {
	if len(f.Categories) > 0 {
		var ok bool
		for _, category := range f.Categories {
			if card.HasCategory(category) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if f.MinDifficulty > 0 && card.Difficulty < f.MinDifficulty {
		return false
	}
	if f.MaxDifficulty > 0 && card.Difficulty > f.MaxDifficulty {
		return false
	}
	if f.MinWords > 0 && card.WordCount < f.MinWords {
		return false
	}
	if f.MaxWords > 0 && card.WordCount > f.MaxWords {
		return false
	}

	return true
}

// Key is a stable cache key; category order does not matter.
func (f Filter) Key() string {
	categories := make([]string, len(f.Categories))
	for i, category := range f.Categories {
		categories[i] = strings.ToLower(category)
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString(strings.Join(categories, ","))
	for _, n := range []int{f.MinDifficulty, f.MaxDifficulty, f.MinWords, f.MaxWords} {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
