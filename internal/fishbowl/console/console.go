// Package console plays a session on a line-oriented terminal: one device, commands typed
// by whoever holds it.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	statModel "github.com/bloops-games/fishbowl/internal/database/stat/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/match"
	"github.com/bloops-games/fishbowl/internal/fishbowl/model"
	"github.com/bloops-games/fishbowl/internal/fishbowl/roster"
	"github.com/bloops-games/fishbowl/internal/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrQuit is returned by Run when the players quit or the input ends.
var ErrQuit = fmt.Errorf("quit")

// countdown marks are printed while a turn runs
var countdown = map[int]struct{}{30: {}, 10: {}, 5: {}, 3: {}, 2: {}, 1: {}}

// Profiler looks up a player's stats over archived games.
type Profiler interface {
	Profile(name string) (statModel.AggregationStat, bool, error)
}

func New(ctx context.Context, session *match.Session, in io.Reader, out io.Writer) *Console {
	return &Console{
		session: session,
		in:      in,
		out:     out,
		logger:  logging.FromContext(ctx).Named("console"),
	}
}

// WithProfiler enables the "profile <name>" command at the end of a game.
func (c *Console) WithProfiler(profiler Profiler) *Console {
	c.profiler = profiler
	return c
}

type Console struct {
	session  *match.Session
	profiler Profiler
	in       io.Reader
	logger   *zap.SugaredLogger

	mtx       sync.Mutex
	out       io.Writer
	lastSeq   uint64
	lastStage match.Stage
	lastHead  uuid.UUID
	lastTime  int

	// summarized is set once the summary of the current stage is printed
	summarized bool

	// offered is only touched by the input loop
	offered []model.Card
}

// Run reads commands until ctx is done or the input ends.
func (c *Console) Run(ctx context.Context) error {
	c.session.Subscribe(match.ObserverFunc(c.notify))
	c.notify(c.session.Snapshot())
	c.followUp(ctx)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			c.logger.Errorf("read input: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return ErrQuit
			}

			if err := c.handle(ctx, strings.TrimSpace(line)); err != nil {
				if errors.Is(err, ErrQuit) {
					return err
				}
				c.println("! " + describe(err))
				continue
			}
			c.followUp(ctx)
		}
	}
}

func describe(err error) string {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Field + ": " + verr.Reason
	case errors.Is(err, model.ErrOperationNotAllowed):
		return "not now"
	default:
		return err.Error()
	}
}

func (c *Console) handle(ctx context.Context, line string) error {
	if line == "q" {
		return ErrQuit
	}

	snapshot := c.session.Snapshot()
	switch snapshot.Stage {
	case match.StageIntake:
		return c.intake(ctx, snapshot, line)
	case match.StageRoundIntro:
		return c.session.StartRound()
	case match.StageTurnHandoff:
		return c.session.BeginTurn()
	case match.StageTurn:
		switch line {
		case "c", "":
			return c.session.MarkCorrect()
		case "s":
			return c.session.SkipCard()
		case "p":
			return c.session.PauseTurn()
		case "e":
			return c.session.EndTurn()
		}
	case match.StageTurnPaused:
		switch {
		case line == "p":
			return c.session.ResumeTurn()
		case line == "e":
			return c.session.EndTurn()
		case strings.HasPrefix(line, "t "):
			seconds, err := strconv.Atoi(strings.TrimSpace(line[2:]))
			if err != nil {
				return model.NewValidationError("timerSeconds", "not a number")
			}
			if err := c.session.SetTimerSeconds(seconds); err != nil {
				return err
			}
			c.println(renderTime(seconds) + " from the next turn.")
			return nil
		}
	case match.StageRecap:
		return c.recap(snapshot, line)
	case match.StageRoundEnd:
		return c.session.ProceedToNextRound()
	case match.StageGameEnd:
		switch line {
		case "r":
			return c.session.Rematch()
		case "n":
			return c.session.NewGame()
		}
		if strings.HasPrefix(line, "profile ") && c.profiler != nil {
			return c.profile(strings.TrimSpace(line[len("profile "):]))
		}
	}

	return fmt.Errorf("unknown command %q in stage %s: %w", line, snapshot.Stage, model.ErrOperationNotAllowed)
}

// intake parses "name[: 1 3] [/ word / word]". Picks are 1-based candidate numbers.
func (c *Console) intake(ctx context.Context, snapshot match.Snapshot, line string) error {
	if strings.HasPrefix(line, "r ") {
		n, err := c.candidate(line[2:])
		if err != nil {
			return err
		}

		card, err := c.session.Reroll(ctx, c.offered[n].ID)
		if err != nil {
			return err
		}
		c.offered[n] = card
		c.println(renderCandidates(c.offered))
		return nil
	}

	parts := strings.Split(line, "/")
	req := roster.Request{Team: snapshot.IntakeTeam}

	head := parts[0]
	if idx := strings.LastIndex(head, ":"); idx >= 0 {
		for _, field := range strings.Fields(head[idx+1:]) {
			n, err := c.candidate(field)
			if err != nil {
				return err
			}
			req.Picks = append(req.Picks, c.offered[n].ID)
		}
		head = head[:idx]
	}
	req.Name = head

	for _, word := range parts[1:] {
		req.ManualWords = append(req.ManualWords, strings.TrimSpace(word))
	}

	player, err := c.session.Intake(ctx, req)
	if err != nil {
		return err
	}

	c.offered = nil
	c.println(player.Name + " joined " + player.Team.Name() + ".")
	return nil
}

func (c *Console) candidate(field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil || n < 1 || n > len(c.offered) {
		return 0, model.NewValidationError("picks", fmt.Sprintf("%q is not a listed title", field))
	}
	return n - 1, nil
}

func (c *Console) profile(name string) error {
	stat, ok, err := c.profiler.Profile(name)
	if err != nil {
		return fmt.Errorf("profile %q: %w", name, err)
	}
	if !ok {
		c.println("No games archived for " + name + ".")
		return nil
	}

	c.println(renderProfile(name, stat))
	return nil
}

// recap takes "<n>" to toggle, "u <n>" to undo and an empty line to confirm.
func (c *Console) recap(snapshot match.Snapshot, line string) error {
	if line == "" {
		return c.session.FinalizeRecap()
	}

	undo := strings.HasPrefix(line, "u ")
	if undo {
		line = line[2:]
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(snapshot.Recap) {
		return model.NewValidationError("recap", fmt.Sprintf("%q is not a listed card", line))
	}

	id := snapshot.Recap[n-1].ID
	if undo {
		err = c.session.Undo(id)
	} else {
		err = c.session.ToggleHighlight(id)
	}
	if err != nil {
		return err
	}

	// recap edits keep the stage, so the observer does not redraw it
	c.println(renderRecap(c.session.Snapshot()))
	return nil
}

// followUp prints what the observer cannot fetch itself: intake candidates and the
// round and game summaries.
func (c *Console) followUp(ctx context.Context) {
	snapshot := c.session.Snapshot()
	switch snapshot.Stage {
	case match.StageIntake:
		if c.offered != nil {
			return
		}

		offered, err := c.session.Candidates(ctx)
		if err != nil && !errors.Is(err, model.ErrSupplyShortfall) {
			c.println("! " + describe(err))
			return
		}
		if err != nil {
			c.println("! only " + strconv.Itoa(len(offered)) + " titles match the filters")
		}

		c.offered = offered
		if len(offered) > 0 {
			c.println(renderCandidates(offered))
		}
	case match.StageRoundEnd, match.StageGameEnd:
		if c.markSummarized() {
			return
		}

		highlights, err := c.session.Highlights()
		if err == nil && len(highlights) > 0 {
			c.println(renderHighlights(highlights))
		}
		if snapshot.Stage == match.StageGameEnd {
			c.println(renderRanking(c.session.Ranking(), snapshot.Players))
		}
	}
}

// markSummarized reports whether the summary for this stage was already printed.
func (c *Console) markSummarized() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	printed := c.summarized
	c.summarized = true
	return printed
}

// notify redraws on stage changes and new cards, and prints countdown marks.
func (c *Console) notify(snapshot match.Snapshot) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	// observers run outside the session lock, so an older state may arrive late
	if snapshot.Seq < c.lastSeq {
		c.logger.Debugf("dropping snapshot %d behind %d", snapshot.Seq, c.lastSeq)
		return
	}
	c.lastSeq = snapshot.Seq

	if snapshot.Stage != c.lastStage {
		c.lastStage = snapshot.Stage
		c.lastHead = uuid.Nil
		c.lastTime = 0
		c.summarized = false
		if snapshot.Head != nil {
			c.lastHead = snapshot.Head.ID
		}
		c.write(renderSnapshot(snapshot))
		return
	}

	if snapshot.Stage != match.StageTurn {
		return
	}

	if snapshot.Head != nil && snapshot.Head.ID != c.lastHead {
		c.lastHead = snapshot.Head.ID
		c.write(renderHead(snapshot))
		return
	}

	if _, ok := countdown[snapshot.TimeRemaining]; ok && snapshot.TimeRemaining != c.lastTime {
		c.lastTime = snapshot.TimeRemaining
		c.write(renderTime(snapshot.TimeRemaining))
	}
}

func (c *Console) println(s string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.write(s)
}

func (c *Console) write(s string) {
	if s == "" {
		return
	}
	if _, err := io.WriteString(c.out, s+"\n"); err != nil {
		c.logger.Errorf("write output: %v", err)
	}
}
