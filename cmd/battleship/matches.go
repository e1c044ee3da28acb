package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/battleship/internal/storage"
	"github.com/vovakirdan/battleship/internal/tui"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Browse match history and the leaderboard",
	Long: `Open an interactive browser over the match history database.

Two views are available, switched with Tab:
  Recent matches - who beat whom, shot counts, match duration
  Leaderboard    - players ranked by wins

Examples:
  battleship matches
  battleship matches --db ./matches.db`,
	Run: runMatches,
}

func runMatches(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunHistory(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error showing history: %v\n", err)
		os.Exit(1)
	}
}
