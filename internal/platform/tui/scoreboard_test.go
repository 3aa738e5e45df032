package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cookedbird/internal/storage"
)

func TestScoreboardPlayers(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, rec := range []storage.GameRecord{
		{Player: "alice", Score: 4, Duration: 12},
		{Player: "bob", Score: 9, Duration: 30},
		{Player: "bob", Score: 2, Duration: 8},
	} {
		if _, err := store.RecordGame(rec); err != nil {
			t.Fatalf("RecordGame() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "bob", 100, 30)
	if got := m.Player(); got != "bob" {
		t.Fatalf("Player() = %q, want bob", got)
	}
	if len(m.games) != 2 || m.games[0].Score != 9 {
		t.Fatalf("games = %+v", m.games)
	}
	if !strings.Contains(m.View(), "HIGH SCORES - bob") {
		t.Error("title missing")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if got := m.Player(); got != "alice" {
		t.Fatalf("Player() after tab = %q, want alice", got)
	}
	if len(m.games) != 1 {
		t.Errorf("alice games = %d, want 1", len(m.games))
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "", 60, 20)
	if got := m.Player(); got != storage.DefaultPlayer {
		t.Errorf("Player() = %q, want %q", got, storage.DefaultPlayer)
	}
	if !strings.Contains(m.View(), "No games recorded yet") {
		t.Error("empty message missing")
	}
}
