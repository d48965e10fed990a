package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cannon/internal/config"
	"github.com/vovakirdan/tui-cannon/internal/core"
	"github.com/vovakirdan/tui-cannon/internal/storage"
)

func TestMenuSelection(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		choice   MenuChoice
		preset   config.DifficultyPreset
		quitting bool
	}{
		{"play default", []string{"enter"}, MenuPlay, config.DifficultyNormal, true},
		{"scores", []string{"down", "enter"}, MenuScores, config.DifficultyNormal, true},
		{"cursor stops at bottom", []string{"down", "down", "down", "enter"}, MenuQuit, config.DifficultyNormal, true},
		{"harder", []string{"right", "enter"}, MenuPlay, config.DifficultyHard, true},
		{"difficulty wraps", []string{"left", "left", "enter"}, MenuPlay, config.DifficultyHard, true},
		{"quit key", []string{"q"}, MenuQuit, config.DifficultyNormal, true},
		{"no choice yet", []string{"down"}, MenuQuit, config.DifficultyNormal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewMenuModel(core.DefaultConfig(), config.DifficultyNormal)
			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = m.Update(keyMsg(k))
			}

			res := m.(MenuModel).Result()
			if res.Choice != tt.choice {
				t.Errorf("Choice = %d, expected %d", res.Choice, tt.choice)
			}
			if res.Difficulty != tt.preset {
				t.Errorf("Difficulty = %s, expected %s", res.Difficulty, tt.preset)
			}
			if (cmd != nil) != tt.quitting {
				t.Errorf("quit command = %v, expected %v", cmd != nil, tt.quitting)
			}
		})
	}
}

func TestMenuView(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), config.DifficultyEasy)
	view := m.View()

	for _, want := range []string{"C A N N O N", "> Play", "High Scores", "Difficulty: < easy >"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestScoreboardLoadsStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.SaveHighScores(ctx, []int{90, 45}); err != nil {
		t.Fatalf("SaveHighScores() failed: %v", err)
	}
	if _, err := store.SaveRound(ctx, storage.RoundRecord{
		RoundID:    "r1",
		Level:      2,
		Outcome:    "win",
		Score:      45,
		ShotsFired: 4,
		Elapsed:    3 * time.Second,
	}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	var m tea.Model = NewScoreboardModel(store, 100, 30)
	view := m.View()
	for _, want := range []string{"HIGH SCORES", "90", "Rounds:     1", "Wins:       1"} {
		if !strings.Contains(view, want) {
			t.Errorf("high score view missing %q", want)
		}
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	view = m.View()
	for _, want := range []string{"RECENT ROUNDS", "win", "3.0s"} {
		if !strings.Contains(view, want) {
			t.Errorf("rounds view missing %q", want)
		}
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)

	if view := m.View(); !strings.Contains(view, "No scores database") {
		t.Errorf("View() = %q, expected missing database message", view)
	}

	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil || next.View() != "" {
		t.Error("q did not quit the scoreboard")
	}
}
