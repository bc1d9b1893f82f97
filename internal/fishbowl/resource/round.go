package resource

import "github.com/enescakir/emoji"

type Round struct {
	Number int
	Title  string
	Icon   string
	Rules  string
	// Skippable reports whether skipping may ever be enabled for the round.
	Skippable bool
}

const (
	RoundDescribe = 1
	RoundOneWord  = 2
	RoundCharades = 3
	RoundsNum     = 3
)

var Rounds = []Round{
	{
		Number: RoundDescribe,
		Title:  "Describe",
		Icon:   emoji.SpeechBalloon.String(),
		Rules:  "Say anything except any part of the title. No spelling, initials, translations or rhymes. Gestures are fine.",
	},
	{
		Number:    RoundOneWord,
		Title:     "One Word",
		Icon:      emoji.Memo.String(),
		Rules:     "Say one word only. Gestures are fine.",
		Skippable: true,
	},
	{
		Number:    RoundCharades,
		Title:     "Charades",
		Icon:      emoji.PerformingArts.String(),
		Rules:     "No words. Gestures and non-verbal sounds only.",
		Skippable: true,
	},
}

func RoundByNumber(n int) (Round, bool) {
	for _, r := range Rounds {
		if r.Number == n {
			return r, true
		}
	}
	return Round{}, false
}
