package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-cannon/internal/audio"
	"github.com/vovakirdan/tui-cannon/internal/cannon"
	"github.com/vovakirdan/tui-cannon/internal/platform/tui"
	"github.com/vovakirdan/tui-cannon/internal/scheduler"
	"github.com/vovakirdan/tui-cannon/internal/spectate"
)

var (
	flagSpectate string
	flagNoSound  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing right away.

Controls:
  Mouse click/drag  - Aim at the pointer and fire
  Up/Left           - Rotate barrel up
  Down/Right        - Rotate barrel down
  Space             - Fire
  Enter             - Continue after a round
  Ctrl+S            - Save screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - More time, slower blocker and target
  normal  - Values from the config file
  hard    - Less time, faster blocker and target

Examples:
  cannon play
  cannon play --difficulty hard
  cannon play --spectate :8080      # stream snapshots to ws://host:8080/ws
  cannon play --config ./my-cannon.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket snapshot stream on this address")
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable sound effects")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := playGame(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playGame runs one interactive game until the player quits.
func playGame(preset string) error {
	gameCfg, err := loadGameConfig(preset)
	if err != nil {
		return err
	}

	logFile, err := openLogFile()
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "cannon")

	book, store := openBook(logger)
	if store != nil {
		defer store.Close()
	}

	session := cannon.New(gameCfg,
		cannon.WithScoreBook(book),
		cannon.WithLogger(logger),
	)

	opts := tui.Options{
		Config: runtimeConfig(),
		Logger: logger,
	}
	if store != nil {
		opts.Recorder = store
	}

	if !flagNoSound {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer sm.Cleanup()
			opts.Audio = sm
		}
	}

	var hub *spectate.Hub
	if flagSpectate != "" {
		hub = spectate.NewHub(gameCfg.Spectate.Every, logger)
		opts.Extra = []scheduler.Surface{hub}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx, session, opts)
	})
	if hub != nil {
		g.Go(func() error {
			return serveSpectators(gctx, flagSpectate, hub, logger)
		})
	}
	return g.Wait()
}
