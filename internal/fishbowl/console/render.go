package console

import (
	"strconv"
	"strings"
	"time"

	statModel "github.com/bloops-games/fishbowl/internal/database/stat/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/match"
	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/scoring"
	"github.com/bloops-games/fishbowl/internal/fishbowl/turn"
	"github.com/bloops-games/fishbowl/internal/strpool"
	"github.com/bloops-games/fishbowl/internal/util"
	"github.com/enescakir/emoji"
	"github.com/google/uuid"
)

func renderSnapshot(s match.Snapshot) string {
	switch s.Stage {
	case match.StageIntake:
		return renderIntake(s)
	case match.StageRoundIntro:
		return renderRoundIntro(s)
	case match.StageTurnHandoff:
		return renderHandoff(s)
	case match.StageTurn:
		return renderHead(s)
	case match.StageTurnPaused:
		return strpool.Render(func(b *strings.Builder) {
			b.WriteString(emoji.Gear.String())
			b.WriteString(" Paused with ")
			b.WriteString(strconv.Itoa(s.TimeRemaining))
			b.WriteString("s left. p resumes, e ends the turn, t <seconds> sets the timer from the next turn.")
		})
	case match.StageRecap:
		return renderRecap(s)
	case match.StageRoundEnd:
		return strpool.Render(func(b *strings.Builder) {
			b.WriteString(emoji.ChequeredFlag.String())
			b.WriteString(" Round ")
			b.WriteString(strconv.Itoa(s.Round.Number))
			b.WriteString(" is over. ")
			writeScore(b, s.Rounds[s.Round.Number])
			b.WriteString("\nTotal ")
			writeScore(b, s.Total)
			b.WriteString("\nPress Enter for the next round.")
		})
	case match.StageGameEnd:
		return renderGameEnd(s)
	}

	return ""
}

func renderIntake(s match.Snapshot) string {
	return strpool.Render(func(b *strings.Builder) {
		b.WriteString(emoji.Pen.String())
		b.WriteString(" Player ")
		b.WriteString(strconv.Itoa(len(s.Players) + 1))
		b.WriteString(" of ")
		b.WriteString(strconv.Itoa(s.PlayersExpected))
		b.WriteString(" joins ")
		b.WriteString(s.IntakeTeam.Name())
		b.WriteString(". Enter: name[: picks] [/ word / word]")
	})
}

func renderCandidates(cards []model.Card) string {
	return strpool.Render(func(b *strings.Builder) {
		b.WriteString(emoji.CardIndex.String())
		b.WriteString(" Pick from:")
		for i, card := range cards {
			b.WriteString("\n  ")
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString(". ")
			b.WriteString(card.Text)
			if len(card.Categories) > 0 {
				b.WriteString(" (")
				b.WriteString(strings.Join(card.Categories, ", "))
				b.WriteString(")")
			}
		}
		b.WriteString("\nr <n> rerolls a title.")
	})
}

func renderRoundIntro(s match.Snapshot) string {
	return strpool.Render(func(b *strings.Builder) {
		b.WriteString(s.Round.Icon)
		b.WriteString(" Round ")
		b.WriteString(strconv.Itoa(s.Round.Number))
		b.WriteString(": ")
		b.WriteString(s.Round.Title)
		b.WriteString("\n")
		b.WriteString(s.Round.Rules)
		b.WriteString("\n")
		b.WriteString(util.Count(s.DeckSize, "card", "cards"))
		b.WriteString(" in the bowl. Press Enter to start.")
	})
}

func renderHandoff(s match.Snapshot) string {
	return strpool.Render(func(b *strings.Builder) {
		b.WriteString(emoji.Rocket.String())
		b.WriteString(" Pass the device to ")
		if s.ClueGiver != nil {
			b.WriteString(s.ClueGiver.Name)
		}
		b.WriteString(" (")
		b.WriteString(s.Team.Name())
		b.WriteString("). ")
		if s.Bonus != nil && s.ClueGiver != nil && s.Bonus.Player.ID == s.ClueGiver.ID {
			b.WriteString(emoji.Star.String())
			b.WriteString(" Bonus time: ")
			b.WriteString(strconv.Itoa(s.Bonus.Seconds))
			b.WriteString("s. ")
		}
		b.WriteString("Press Enter to begin.")
	})
}

func renderHead(s match.Snapshot) string {
	if s.Head == nil {
		return ""
	}

	return strpool.Render(func(b *strings.Builder) {
		b.WriteString(emoji.GameDie.String())
		b.WriteString(" ")
		b.WriteString(s.Head.Text)

		var banned []string
		for _, token := range model.Tokens(s.Head.Text, model.DefaultAcceptance()) {
			if token.Required {
				banned = append(banned, token.Text)
			}
		}
		if len(banned) > 0 {
			b.WriteString("  [no-say: ")
			b.WriteString(strings.Join(banned, ", "))
			b.WriteString("]")
		}

		b.WriteString("\n")
		b.WriteString(strconv.Itoa(s.TimeRemaining))
		b.WriteString("s, ")
		b.WriteString(util.Count(s.DeckSize, "card", "cards"))
		b.WriteString(" left. c correct")
		if s.SkipAllowed {
			b.WriteString(", s skip")
		}
		b.WriteString(", p pause, e end")
	})
}

func renderTime(seconds int) string {
	return emoji.Stopwatch.String() + " " + strconv.Itoa(seconds) + "s"
}

func reasonText(reason turn.EndReason) string {
	switch reason {
	case turn.EndReasonTimerExpired:
		return "Time is up!"
	case turn.EndReasonManual:
		return "Turn ended."
	case turn.EndReasonSkipCycleComplete:
		return "Every card was seen."
	case turn.EndReasonCompletedAllCards:
		return "The bowl is empty!"
	default:
		return ""
	}
}

func renderRecap(s match.Snapshot) string {
	return strpool.Render(func(b *strings.Builder) {
		b.WriteString(emoji.Stopwatch.String())
		b.WriteString(" ")
		b.WriteString(reasonText(s.EndReason))
		if len(s.Recap) == 0 {
			b.WriteString(" Nothing guessed.")
		}

		for i, event := range s.Recap {
			b.WriteString("\n  ")
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString(". ")
			if event.Highlighted {
				b.WriteString(emoji.CheckMarkButton.String())
			} else {
				b.WriteString(emoji.CrossMark.String())
			}
			b.WriteString(" ")
			b.WriteString(event.Card.Text)
			b.WriteString(" ")
			b.WriteString(event.Duration.Round(100 * time.Millisecond).String())
		}

		b.WriteString("\n<n> toggles a card, u <n> puts it back, Enter confirms.")
	})
}

func renderGameEnd(s match.Snapshot) string {
	return strpool.Render(func(b *strings.Builder) {
		b.WriteString(emoji.Trophy.String())
		b.WriteString(" ")
		if team, ok := s.Total.Leader(); ok {
			b.WriteString(team.Name())
			b.WriteString(" wins! ")
		} else {
			b.WriteString("It's a tie! ")
		}
		writeScore(b, s.Total)
		b.WriteString("\nr rematch, n new game, profile <name>, q quit.")
	})
}

func renderHighlights(lines []string) string {
	return strpool.Render(func(b *strings.Builder) {
		for i, line := range lines {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(emoji.Star.String())
			b.WriteString(" ")
			b.WriteString(line)
		}
	})
}

func renderRanking(ranking []model.PlayerStats, players []model.Player) string {
	names := make(map[uuid.UUID]string, len(players))
	for _, player := range players {
		names[player.ID] = player.Name
	}

	return strpool.Render(func(b *strings.Builder) {
		b.WriteString(emoji.HundredPoints.String())
		b.WriteString(" Players")
		for i, stats := range ranking {
			b.WriteString("\n  ")
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString(". ")
			b.WriteString(names[stats.PlayerID])
			b.WriteString(": ")
			b.WriteString(util.Count(stats.CorrectCount, "card", "cards"))
			if stats.CorrectCount > 0 {
				b.WriteString(", avg ")
				b.WriteString(stats.AverageAnswer().Round(100 * time.Millisecond).String())
			}
		}
	})
}

func renderProfile(name string, stat statModel.AggregationStat) string {
	return strpool.Render(func(b *strings.Builder) {
		b.WriteString(emoji.BustInSilhouette.String())
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(util.Count(stat.Count, "game", "games"))
		b.WriteString(", ")
		b.WriteString(strconv.Itoa(stat.Wins))
		b.WriteString(" won, ")
		b.WriteString(util.Count(stat.CorrectCount, "card", "cards"))
		b.WriteString(" in ")
		b.WriteString(util.Count(stat.TurnsTaken, "turn", "turns"))
		if stat.CorrectCount > 0 {
			b.WriteString("\n  avg ")
			b.WriteString(stat.AvgAnswer.Round(100 * time.Millisecond).String())
			b.WriteString(", best ")
			b.WriteString(stat.BestAnswer.Round(100 * time.Millisecond).String())
			b.WriteString(", worst ")
			b.WriteString(stat.WorstAnswer.Round(100 * time.Millisecond).String())
		}
	})
}

func writeScore(b *strings.Builder, score scoring.RoundScore) {
	b.WriteString(model.TeamA.Name())
	b.WriteString(" ")
	b.WriteString(strconv.Itoa(score.TeamA))
	b.WriteString(" : ")
	b.WriteString(strconv.Itoa(score.TeamB))
	b.WriteString(" ")
	b.WriteString(model.TeamB.Name())
}
