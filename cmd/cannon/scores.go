package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cannon/internal/platform/tui"
	"github.com/vovakirdan/tui-cannon/internal/storage"
)

var (
	flagInteractive bool
	flagReset       bool
	flagHistory     int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and round history",
	Long: `Display the top five scores, the most recent rounds and overall stats.

Examples:
  cannon scores
  cannon scores --history 20
  cannon scores -i          # interactive scoreboard
  cannon scores --reset     # clear the high score table`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear the high score table")
	scoresCmd.Flags().IntVar(&flagHistory, "history", 10, "Number of recent rounds to show")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		cfg := runtimeConfig()
		if err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagReset {
		if err := store.ClearHighScores(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("High scores cleared.")
		return
	}

	if err := printScores(ctx, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printScores(ctx context.Context, store *storage.Store) error {
	scores, err := store.LoadHighScores(ctx)
	if err != nil {
		return err
	}

	fmt.Println("High Scores")
	fmt.Println()
	fmt.Printf("  %-4s  %s\n", "Rank", "Score")
	fmt.Printf("  %-4s  %s\n", "----", "-----")
	for i, score := range scores {
		fmt.Printf("  %-4d  %d\n", i+1, score)
	}

	if flagHistory <= 0 {
		return nil
	}

	rounds, err := store.RecentRounds(ctx, flagHistory)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Recent Rounds")
	fmt.Println()
	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Run 'cannon play' to start the history!")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-6s  %-6s  %-5s  %s\n", "Date", "Level", "Result", "Score", "Shots", "Time")
	fmt.Printf("  %-16s  %-5s  %-6s  %-6s  %-5s  %s\n", "----", "-----", "------", "-----", "-----", "----")
	for _, r := range rounds {
		fmt.Printf("  %-16s  %-5d  %-6s  %-6d  %-5d  %.1fs\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Level, r.Outcome, r.Score, r.ShotsFired, r.Elapsed.Seconds())
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Rounds: %d  Wins: %d  Best: %d (level %d)  Avg: %.1f\n",
		stats.Rounds, stats.Wins, stats.BestScore, stats.BestLevel, stats.AvgScore)
	return nil
}
