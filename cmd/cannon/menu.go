package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cannon/internal/config"
	"github.com/vovakirdan/tui-cannon/internal/platform/tui"
	"github.com/vovakirdan/tui-cannon/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with a menu",
	Long: `Start the game in interactive menu mode.

Use arrow keys to navigate, Left/Right to change difficulty and Enter to select.
After quitting a game you return to the menu.

Examples:
  cannon menu
  cannon menu --fps 30
  cannon menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = result.Config
		preset = result.Difficulty

		switch result.Choice {
		case tui.MenuQuit:
			return

		case tui.MenuScores:
			store, err := storage.Open(flagDBPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
				store = nil
			}
			sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if store != nil {
				store.Close()
			}
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}

		case tui.MenuPlay:
			if err := playGame(string(preset)); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
	}
}
