// Package deck holds the round-scoped working queue of cards.
//
// Order is stable between reshuffles: cards only move by being drawn from the head,
// rotated to the tail, or put back by recap corrections.
package deck

import (
	"fmt"

	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/google/uuid"
	"github.com/valyala/fastrand"
)

type ShuffleFn func(cards []model.Card)

// Shuffle is an in-place Fisher-Yates permutation.
func Shuffle(cards []model.Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := int(fastrand.Uint32n(uint32(i + 1)))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

type Deck struct {
	round       int
	skipAllowed bool
	cards       []model.Card
}

// Reshuffle builds the deck for a round from the full master set.
// Skipping is never allowed in round 1 whatever skipAllowed says.
func Reshuffle(round int, master []model.Card, skipAllowed bool, shuffle ShuffleFn) *Deck {
	cards := make([]model.Card, len(master))
	copy(cards, master)
	if shuffle == nil {
		shuffle = Shuffle
	}
	shuffle(cards)

	return &Deck{round: round, skipAllowed: skipAllowed && round > 1, cards: cards}
}

func (d *Deck) Round() int {
	return d.round
}

func (d *Deck) SkipAllowed() bool {
	return d.skipAllowed
}

func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}

func (d *Deck) Head() (model.Card, bool) {
	if len(d.cards) == 0 {
		return model.Card{}, false
	}
	return d.cards[0], true
}

func (d *Deck) Cards() []model.Card {
	out := make([]model.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

func (d *Deck) DrawTop() (model.Card, bool) {
	if len(d.cards) == 0 {
		return model.Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// SkipTop moves the head to the tail.
func (d *Deck) SkipTop() (model.Card, error) {
	if !d.skipAllowed {
		return model.Card{}, fmt.Errorf("skip in round %d: %w", d.round, model.ErrOperationNotAllowed)
	}

	card, ok := d.RotateHead()
	if !ok {
		return model.Card{}, fmt.Errorf("skip on empty deck: %w", model.ErrOperationNotAllowed)
	}

	return card, nil
}

// RotateHead moves the head to the tail regardless of the skip policy.
func (d *Deck) RotateHead() (model.Card, bool) {
	card, ok := d.DrawTop()
	if !ok {
		return model.Card{}, false
	}

	d.cards = append(d.cards, card)
	return card, true
}

// Reinsert puts a card back at idx clamped to [0, Len()].
func (d *Deck) Reinsert(card model.Card, idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(d.cards) {
		idx = len(d.cards)
	}

	d.cards = append(d.cards, model.Card{})
	copy(d.cards[idx+1:], d.cards[idx:])
	d.cards[idx] = card
}

func (d *Deck) AppendToTail(card model.Card) {
	d.cards = append(d.cards, card)
}

func (d *Deck) Contains(id uuid.UUID) bool {
	for _, card := range d.cards {
		if card.ID == id {
			return true
		}
	}
	return false
}
