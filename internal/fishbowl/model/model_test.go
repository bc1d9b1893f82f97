package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	card := NewCard("  The Office  ", 9, "Movies", "Comedy")
	if card.Text != "The Office" {
		t.Errorf("expected trimmed text got %q", card.Text)
	}
	if card.WordCount != 2 {
		t.Errorf("expected 2 words got %d", card.WordCount)
	}
	if card.Difficulty != MaxDifficulty {
		t.Errorf("expected difficulty clamped to %d got %d", MaxDifficulty, card.Difficulty)
	}
	if diff := cmp.Diff([]string{"Comedy", "Movies"}, card.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	if !card.HasCategory("movies") {
		t.Error("expected case-insensitive category match")
	}

	manual := NewManualCard("grandma's lasagna")
	if !manual.Manual || !manual.HasCategory(ManualCategory) {
		t.Errorf("expected manual card got %#v", manual)
	}
}

func TestTitleSet(t *testing.T) {
	t.Parallel()

	set := NewTitleSet(NewCard("Stranger Things", 1))
	if !set.Has("stranger things ") {
		t.Error("expected case-insensitive match")
	}

	clone := set.Clone()
	clone.Add("Squid Game")
	if set.Has("Squid Game") {
		t.Error("clone must not share storage")
	}
}

func TestPlayerStatsObserve(t *testing.T) {
	t.Parallel()

	stats := NewPlayerStats(NewPlayer("Alex", TeamA).ID)
	if stats.AverageAnswer() != 0 {
		t.Error("expected zero average without answers")
	}

	for _, d := range []time.Duration{4 * time.Second, 2 * time.Second, 9 * time.Second} {
		stats.Observe(d)
	}

	if stats.CorrectCount != 3 {
		t.Errorf("expected 3 got %d", stats.CorrectCount)
	}
	if *stats.Fastest != 2*time.Second || *stats.Slowest != 9*time.Second {
		t.Errorf("unexpected fastest/slowest %v/%v", *stats.Fastest, *stats.Slowest)
	}
	if stats.AverageAnswer() != 5*time.Second {
		t.Errorf("expected 5s average got %v", stats.AverageAnswer())
	}

	clone := stats.Clone()
	*clone.Fastest = time.Hour
	if *stats.Fastest != 2*time.Second {
		t.Error("clone must not share fastest pointer")
	}
}

func TestTokens(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		title      string
		acceptance Acceptance
		expected   []Token
	}{
		{
			name:       "leading_article_optional",
			title:      "The Lord of the Rings!",
			acceptance: DefaultAcceptance(),
			expected: []Token{
				{Text: "the"}, {Text: "lord", Required: true}, {Text: "of", Required: true},
				{Text: "the", Required: true}, {Text: "rings", Required: true},
			},
		},
		{
			name:       "articles_required",
			title:      "A-ha",
			acceptance: Acceptance{},
			expected:   []Token{{Text: "a", Required: true}, {Text: "ha", Required: true}},
		},
		{
			name:       "numbers_kept",
			title:      "Blink 182",
			acceptance: DefaultAcceptance(),
			expected:   []Token{{Text: "blink", Required: true}, {Text: "182", Required: true}},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.expected, Tokens(tc.title, tc.acceptance)); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	var err error = &SupplyShortfallError{Requested: 5, Supplied: 2}
	if !errors.Is(fmt.Errorf("draw: %w", err), ErrSupplyShortfall) {
		t.Error("expected shortfall to match sentinel")
	}

	if !IsValidation(fmt.Errorf("intake: %w", NewValidationError("name", "blank"))) {
		t.Error("expected wrapped validation error")
	}

	team, err := ParseTeam("b")
	if err != nil || team != TeamB {
		t.Errorf("expected team B got %v, %v", team, err)
	}
	if _, err := ParseTeam("C"); !errors.Is(err, ErrUnknownTeam) {
		t.Errorf("expected unknown team got %v", err)
	}
	if TeamA.Other() != TeamB || TeamB.Other() != TeamA {
		t.Error("unexpected other team")
	}
}
