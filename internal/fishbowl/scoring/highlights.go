package scoring

import (
	"fmt"
	"time"

	"github.com/bloops-games/fishbowl/internal/util"
)

// Highlights summarizes a round for the round-end screen, at most n lines.
func (l *Ledger) Highlights(round, n int) []string {
	if n <= 0 {
		return nil
	}

	var out []string
	score := l.Round(round)
	if team, ok := score.Leader(); ok {
		lead := score.Of(team) - score.Of(team.Other())
		out = append(out, fmt.Sprintf("%s led round %d by %d.", team.Name(), round, lead))
	} else {
		out = append(out, fmt.Sprintf("Round %d tied at %d.", round, score.TeamA))
	}

	var (
		slowest, fastest       time.Duration
		slowestCard            string
		fastestCard, fastestBy string
		bestTurn               int
		bestTurnBy             string
	)

	for _, record := range l.Turns(round) {
		if len(record.Correct) > bestTurn {
			bestTurn = len(record.Correct)
			bestTurnBy = record.Player.Name
		}

		for i, card := range record.Correct {
			d := record.Durations[i]
			if slowestCard == "" || d > slowest {
				slowest, slowestCard = d, card.Text
			}
			if fastestCard == "" || d < fastest {
				fastest, fastestCard, fastestBy = d, card.Text, record.Player.Name
			}
		}
	}

	if slowestCard != "" {
		out = append(out, fmt.Sprintf("%q took %s, the slowest of the round.", slowestCard, roundSeconds(slowest)))
	}
	if fastestCard != "" && fastestCard != slowestCard {
		out = append(out, fmt.Sprintf("%s got %q in %s.", fastestBy, fastestCard, roundSeconds(fastest)))
	}
	if bestTurn >= 3 {
		out = append(out, fmt.Sprintf("%s cleared %s in one turn.", bestTurnBy, util.Count(bestTurn, "card", "cards")))
	}

	if len(out) > n {
		out = out[:n]
	}
	return out
}

func roundSeconds(d time.Duration) string {
	return d.Round(time.Second).String()
}
