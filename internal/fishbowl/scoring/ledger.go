package scoring

import (
	"sort"
	"time"

	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/google/uuid"
)

type answer struct {
	eventID  uuid.UUID
	duration time.Duration
}

// TurnRecord is one finalized turn as it stands after recap corrections.
type TurnRecord struct {
	Round     int
	Team      model.Team
	Player    model.Player
	Correct   []model.Card
	Durations []time.Duration
	Reason    string
}

func NewLedger() *Ledger {
	l := &Ledger{}
	l.Reset()
	return l
}

// Ledger keeps team scores, team turn counters and per-player statistics.
type Ledger struct {
	rounds     map[int]*RoundScore
	cumulative RoundScore
	teamTurns  map[model.Team]int
	stats      map[uuid.UUID]*model.PlayerStats
	answers    map[uuid.UUID][]answer
	turns      []TurnRecord
}

// Reset clears scores, counters and statistics but keeps registered players.
func (l *Ledger) Reset() {
	l.rounds = map[int]*RoundScore{}
	l.cumulative = RoundScore{}
	l.teamTurns = map[model.Team]int{}
	l.answers = map[uuid.UUID][]answer{}
	l.turns = nil

	stats := make(map[uuid.UUID]*model.PlayerStats, len(l.stats))
	for id := range l.stats {
		s := model.NewPlayerStats(id)
		stats[id] = &s
	}
	l.stats = stats
}

func (l *Ledger) RegisterPlayer(playerID uuid.UUID) {
	if _, ok := l.stats[playerID]; ok {
		return
	}
	s := model.NewPlayerStats(playerID)
	l.stats[playerID] = &s
}

func (l *Ledger) playerStats(playerID uuid.UUID) *model.PlayerStats {
	s, ok := l.stats[playerID]
	if !ok {
		l.RegisterPlayer(playerID)
		s = l.stats[playerID]
	}
	return s
}

func (l *Ledger) RecordCorrect(playerID, eventID uuid.UUID, d time.Duration) {
	l.playerStats(playerID).Observe(d)
	l.answers[playerID] = append(l.answers[playerID], answer{eventID: eventID, duration: d})
}

func (l *Ledger) RecordTurnTaken(playerID uuid.UUID) {
	l.playerStats(playerID).TurnsTaken++
}

// AddTurnScore credits n correct answers to the team in both the round and cumulative totals.
func (l *Ledger) AddTurnScore(round int, team model.Team, n int) {
	l.round(round).add(team, n)
	l.cumulative.add(team, n)
}

func (l *Ledger) CompleteTeamTurn(team model.Team) {
	l.teamTurns[team]++
}

func (l *Ledger) TeamTurns(team model.Team) int {
	return l.teamTurns[team]
}

// UndoCorrect reverses one recorded correct answer: the team loses a point in the round and
// cumulative totals, and the player's stats lose the answer. Every counter is floored at zero.
func (l *Ledger) UndoCorrect(round int, team model.Team, playerID, eventID uuid.UUID, d time.Duration) {
	l.round(round).add(team, -1)
	l.cumulative.add(team, -1)

	s := l.playerStats(playerID)
	s.CorrectCount--
	if s.CorrectCount < 0 {
		s.CorrectCount = 0
	}
	s.TotalTime -= d
	if s.TotalTime < 0 {
		s.TotalTime = 0
	}

	answers := l.answers[playerID]
	for i := range answers {
		if answers[i].eventID == eventID {
			answers = append(answers[:i], answers[i+1:]...)
			break
		}
	}
	l.answers[playerID] = answers

	s.Fastest, s.Slowest = nil, nil
	for _, a := range answers {
		d := a.duration
		if s.Fastest == nil || d < *s.Fastest {
			fastest := d
			s.Fastest = &fastest
		}
		if s.Slowest == nil || d > *s.Slowest {
			slowest := d
			s.Slowest = &slowest
		}
	}
}

func (l *Ledger) round(n int) *RoundScore {
	r, ok := l.rounds[n]
	if !ok {
		r = &RoundScore{}
		l.rounds[n] = r
	}
	return r
}

func (l *Ledger) Round(n int) RoundScore {
	if r, ok := l.rounds[n]; ok {
		return *r
	}
	return RoundScore{}
}

func (l *Ledger) Rounds() map[int]RoundScore {
	out := make(map[int]RoundScore, len(l.rounds))
	for n, r := range l.rounds {
		out[n] = *r
	}
	return out
}

func (l *Ledger) Cumulative() RoundScore {
	return l.cumulative
}

func (l *Ledger) Stats(playerID uuid.UUID) (model.PlayerStats, bool) {
	s, ok := l.stats[playerID]
	if !ok {
		return model.PlayerStats{}, false
	}
	return s.Clone(), true
}

func (l *Ledger) AllStats() map[uuid.UUID]model.PlayerStats {
	out := make(map[uuid.UUID]model.PlayerStats, len(l.stats))
	for id, s := range l.stats {
		out[id] = s.Clone()
	}
	return out
}

func (l *Ledger) LogTurn(record TurnRecord) {
	l.turns = append(l.turns, record)
}

func (l *Ledger) Turns(round int) []TurnRecord {
	var out []TurnRecord
	for _, record := range l.turns {
		if record.Round == round {
			out = append(out, record)
		}
	}
	return out
}

// Ranking orders players by correct answers, then by average answer time.
func (l *Ledger) Ranking() []model.PlayerStats {
	out := make([]model.PlayerStats, 0, len(l.stats))
	for _, s := range l.stats {
		out = append(out, s.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CorrectCount != out[j].CorrectCount {
			return out[i].CorrectCount > out[j].CorrectCount
		}
		if out[i].AverageAnswer() != out[j].AverageAnswer() {
			return out[i].AverageAnswer() < out[j].AverageAnswer()
		}
		return out[i].PlayerID.String() < out[j].PlayerID.String()
	})

	return out
}
