// cannon is a terminal cannon game: aim the barrel, dodge the moving
// blocker and destroy every piece of the target before the clock runs out.
//
// Usage:
//
//	cannon menu              - Start menu (play, scores, difficulty)
//	cannon play              - Play directly
//	cannon simulate          - Run a headless bot for a number of rounds
//	cannon scores            - Show high scores and round history
//	cannon serve             - Start SSH server for remote play
//	cannon config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>           - Frame rate (default: 60)
//	--db <path>            - Database path (default: ~/.cannon/scores.db)
//	--config <path>        - Custom game config YAML
//	--difficulty <preset>  - easy, normal or hard
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-cannon/internal/config"
	"github.com/vovakirdan/tui-cannon/internal/core"
	"github.com/vovakirdan/tui-cannon/internal/highscore"
	"github.com/vovakirdan/tui-cannon/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cannon",
	Short: "Cannon - knock down the target before time runs out",
	Long: `Cannon is a terminal arcade game. Aim the cannon with the mouse or the
arrow keys and fire at the moving target. A blocker patrols in front of it:
hitting the blocker costs time and points, hitting the target earns them.

Available commands:
  menu      - Start menu
  play      - Play directly
  simulate  - Headless bot run
  scores    - View high scores and round history
  serve     - Start SSH server for remote play
  config    - Print the default configuration

Examples:
  cannon menu
  cannon play --difficulty hard
  cannon play --spectate :8080
  cannon simulate --rounds 20
  cannon serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cannon/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig loads the YAML config and applies preset.
func loadGameConfig(preset string) (config.CannonConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.CannonConfig{}, err
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return config.CannonConfig{}, err
	}
	config.ApplyPreset(&cfg, p)
	return cfg, nil
}

// newLogger builds the process logger at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// openLogFile opens ~/.cannon/cannon.log for appending. Logging to the
// terminal would corrupt the game screen.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".cannon")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "cannon.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// openBook opens the scores database. Without it high scores live in memory
// for the lifetime of the process and store is nil.
func openBook(logger *log.Logger) (*highscore.Book, *storage.Store) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return highscore.NewBook(highscore.NewMemory()), nil
	}
	return highscore.NewBook(store), store
}
