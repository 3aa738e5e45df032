package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cookedbird/internal/platform/tui"
	"github.com/vovakirdan/cookedbird/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagBrowse       bool
	flagClear        bool
	flagRecent       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and best games",
	Long: `Display the high score and the best recorded games of a player.

Examples:
  cookedbird scores
  cookedbird scores --player alice --limit 20
  cookedbird scores --recent
  cookedbird scores --browse
  cookedbird scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", storage.DefaultPlayer, "High score profile")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of games to list")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse every player's games in an interactive table")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the latest games instead of the best ones")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the player's game history (the high score is kept)")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	player := flagScoresPlayer

	if flagClear {
		if err := store.ClearHistory(player); err != nil {
			return err
		}
		fmt.Printf("History of %s cleared.\n", player)
		return nil
	}

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunScoreboard(store, player, width, height)
	}

	title, games, err := listGames(store, player, flagScoresLimit, flagRecent)
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", title, player)
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'cookedbird play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-10s  %s\n", "#", "Score", "Time", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-10s  %s\n", "----", "-----", "----", "----------", "----")

	for i, g := range games {
		difficulty := g.Difficulty
		if difficulty == "" {
			difficulty = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-8s  %-10s  %s\n",
			i+1, g.Score, fmt.Sprintf("%.1fs", g.Duration), difficulty, g.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	stats, err := store.GetStats(player)
	if err == nil {
		fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

// listGames returns a player's best games, or the latest ones when recent is set.
func listGames(store *storage.Store, player string, limit int, recent bool) (string, []storage.GameRecord, error) {
	title, query := "High Scores", store.TopGames
	if recent {
		title, query = "Recent Games", store.RecentGames
	}
	games, err := query(player, limit)
	if err != nil {
		return "", nil, fmt.Errorf("error retrieving games: %w", err)
	}
	return title, games, nil
}
