package model

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// ManualCategory tags cards typed in by players during intake.
const ManualCategory = "Manual"

type Card struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	Categories []string  `json:"categories"`
	Difficulty int       `json:"difficulty"`
	WordCount  int       `json:"wordCount"`
	Manual     bool      `json:"manual"`
}

func NewCard(text string, difficulty int, categories ...string) Card {
	text = strings.TrimSpace(text)
	tags := make([]string, len(categories))
	copy(tags, categories)
	sort.Strings(tags)

	return Card{
		ID:         uuid.New(),
		Text:       text,
		Categories: tags,
		Difficulty: clampDifficulty(difficulty),
		WordCount:  WordCount(text),
	}
}

func NewManualCard(text string) Card {
	card := NewCard(text, MinDifficulty, ManualCategory)
	card.Manual = true
	return card
}

// Key is the case-insensitive identity used for de-duplication.
func (c Card) Key() string {
	return NormalizeText(c.Text)
}

func (c Card) HasCategory(category string) bool {
	for _, tag := range c.Categories {
		if strings.EqualFold(tag, category) {
			return true
		}
	}
	return false
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}

func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func clampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// TitleSet is a set of normalized titles.
type TitleSet map[string]struct{}

func NewTitleSet(cards ...Card) TitleSet {
	set := make(TitleSet, len(cards))
	for _, card := range cards {
		set.Add(card.Text)
	}
	return set
}

func (s TitleSet) Add(text string) {
	s[NormalizeText(text)] = struct{}{}
}

func (s TitleSet) Has(text string) bool {
	_, ok := s[NormalizeText(text)]
	return ok
}

func (s TitleSet) Clone() TitleSet {
	out := make(TitleSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}
