package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-cannon/internal/cannon"
	"github.com/vovakirdan/tui-cannon/internal/core"
	"github.com/vovakirdan/tui-cannon/internal/highscore"
	"github.com/vovakirdan/tui-cannon/internal/scheduler"
	"github.com/vovakirdan/tui-cannon/internal/spectate"
)

var (
	flagRounds       int
	flagSeed         uint64
	flagJitter       float64
	flagRecord       bool
	flagSimSpectate  string
	flagSimFrameRate int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless bot for a number of rounds",
	Long: `Play the game without a terminal UI. A bot aims at the lowest intact
target piece and fires whenever the cannon is ready. Simulated time advances
by a fixed step per frame, so a run is much faster than real time.

Examples:
  cannon simulate --rounds 20
  cannon simulate --rounds 5 --seed 42 --jitter 0
  cannon simulate --record                 # save rounds to the scores database
  cannon simulate --spectate :8080         # watch the bot at ws://host:8080/ws`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRounds, "rounds", 10, "Number of rounds to play")
	simulateCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed for the bot (0 = random)")
	simulateCmd.Flags().Float64Var(&flagJitter, "jitter", 40, "Aim error in world units")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Record rounds and high scores in the database")
	simulateCmd.Flags().StringVar(&flagSimSpectate, "spectate", "", "Serve a websocket snapshot stream on this address")
	simulateCmd.Flags().IntVar(&flagSimFrameRate, "speed", 1000, "Frames per wall-clock second")
}

func runSimulate(_ *cobra.Command, _ []string) {
	if flagRounds < 1 {
		fmt.Fprintln(os.Stderr, "Error: --rounds must be at least 1")
		os.Exit(1)
	}

	results, err := simulate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-5s  %-5s  %-6s  %-6s  %-5s  %s\n", "Round", "Level", "Result", "Score", "Shots", "Time")
	fmt.Printf("  %-5s  %-5s  %-6s  %-6s  %-5s  %s\n", "-----", "-----", "------", "-----", "-----", "----")
	wins := 0
	for i, out := range results {
		if out.Kind == cannon.OutcomeWin {
			wins++
		}
		fmt.Printf("  %-5d  %-5d  %-6s  %-6d  %-5d  %.1fs\n",
			i+1, out.Level, out.Kind, out.Score, out.ShotsFired, out.Elapsed.Seconds())
	}
	fmt.Println()
	fmt.Printf("Won %d of %d rounds\n", wins, len(results))
}

// simulate plays flagRounds rounds and returns their outcomes in order.
func simulate() ([]cannon.Outcome, error) {
	gameCfg, err := loadGameConfig(flagDifficulty)
	if err != nil {
		return nil, err
	}
	logger := newLogger(os.Stderr, "cannon-sim")

	book := highscore.NewBook(highscore.NewMemory())
	var recorder scheduler.RoundRecorder
	if flagRecord {
		b, store := openBook(logger)
		if store != nil {
			defer store.Close()
			recorder = store
		}
		book = b
	}

	seed := flagSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := cannon.New(gameCfg, cannon.WithScoreBook(book), cannon.WithLogger(logger))
	b := &bot{
		rng:    rand.New(rand.NewPCG(seed, seed>>1|1)),
		jitter: flagJitter,
		rounds: flagRounds,
		done:   cancel,
		logger: logger,
	}

	var surface scheduler.Surface = b
	var hub *spectate.Hub
	if flagSimSpectate != "" {
		hub = spectate.NewHub(gameCfg.Spectate.Every, logger)
		surface = scheduler.Multi{b, hub}
	}

	fps := max(flagFPS, 1)
	opts := []scheduler.Option{
		scheduler.WithSurface(surface),
		scheduler.WithPresenter(b),
		scheduler.WithClock(newStepClock(time.Second / time.Duration(fps))),
		scheduler.WithFPS(max(flagSimFrameRate, 1)),
		scheduler.WithLogger(logger),
	}
	if recorder != nil {
		opts = append(opts, scheduler.WithRecorder(recorder))
	}
	sched := scheduler.New(session, opts...)
	b.sched = sched

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := sched.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if hub != nil {
		g.Go(func() error {
			return serveSpectators(gctx, flagSimSpectate, hub, logger)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b.results(), nil
}

// stepClock advances by a fixed step on every reading, so each frame
// simulates exactly one step regardless of wall-clock time.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Now(), step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// bot is the surface and presenter of a simulated game. It reads every
// frame, touches the lowest intact piece while the cannon is idle and
// acknowledges outcomes immediately.
type bot struct {
	sched  *scheduler.Scheduler
	rng    *rand.Rand
	jitter float64
	rounds int
	done   context.CancelFunc
	logger *log.Logger

	mu       sync.Mutex
	outcomes []cannon.Outcome
}

func (b *bot) Acquire() (scheduler.Frame, error) { return botFrame{b}, nil }

func (b *bot) PresentOutcome(out cannon.Outcome) <-chan struct{} {
	b.mu.Lock()
	b.outcomes = append(b.outcomes, out)
	n := len(b.outcomes)
	b.mu.Unlock()

	b.logger.Debug("bot round", "n", n, "outcome", out.Kind, "score", out.Score)
	if n >= b.rounds {
		b.done()
	}

	ack := make(chan struct{})
	close(ack)
	return ack
}

func (b *bot) results() []cannon.Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := min(len(b.outcomes), b.rounds)
	return append([]cannon.Outcome(nil), b.outcomes[:n]...)
}

// aim picks the touch point for the next shot, or false if the cannon
// is busy or nothing is left to hit.
func (b *bot) aim(snap cannon.Snapshot) (core.Point, bool) {
	if snap.Ball.OnScreen || snap.Phase != cannon.PhasePlaying.String() {
		return core.Point{}, false
	}
	for i := len(snap.Pieces) - 1; i >= 0; i-- {
		p := snap.Pieces[i]
		if p.Hit {
			continue
		}
		y := (p.Line.Start.Y+p.Line.End.Y)/2 + (b.rng.Float64()*2-1)*b.jitter
		return core.Pt(p.Line.Start.X, y), true
	}
	return core.Point{}, false
}

type botFrame struct{ b *bot }

func (f botFrame) Draw(snap cannon.Snapshot) error {
	if p, ok := f.b.aim(snap); ok {
		f.b.sched.Touch(p)
	}
	return nil
}

func (f botFrame) Post() {}
