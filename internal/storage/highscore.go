package storage

// HighScores binds a Store to one player. It satisfies the game's
// high score interface, so every new best is written through immediately.
type HighScores struct {
	store  *Store
	player string
}

// HighScores returns the high score view of a player.
// An empty name means DefaultPlayer.
func (s *Store) HighScores(player string) *HighScores {
	if player == "" {
		player = DefaultPlayer
	}
	return &HighScores{store: s, player: player}
}

// Player returns the bound player name.
func (h *HighScores) Player() string {
	return h.player
}

// HighScore returns the stored high score.
func (h *HighScores) HighScore() (int, error) {
	return h.store.HighScore(h.player)
}

// SetHighScore stores score if it beats the stored one.
func (h *HighScores) SetHighScore(score int) error {
	return h.store.SetHighScore(h.player, score)
}
