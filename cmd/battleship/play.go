package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/battleship/internal/config"
	"github.com/vovakirdan/battleship/internal/storage"
	"github.com/vovakirdan/battleship/internal/tui"
)

var flagPlayerName string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local game against the computer",
	Long: `Start a local battleship match against a computer opponent.

Controls:
  Arrows/WASD - Move the cursor
  Enter/Space - Place ship / fire
  R           - Rotate ship during placement
  X           - Random fleet
  Q/Ctrl+C    - Quit

Examples:
  battleship play
  battleship play --name admiral
  battleship play --rules ./small-board.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayerName, "name", "", "Player name (prompted if empty)")
}

func runPlay(_ *cobra.Command, _ []string) {
	rulesCfg, err := config.LoadRules(flagRulesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size early
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open match storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		// Continue without persistence - the game still works
		store = nil
	}

	var runErr error
	if store != nil {
		runErr = tui.RunLocalGame(rulesCfg.Rules(), store, flagPlayerName, width, height)
		store.Close()
	} else {
		runErr = tui.RunLocalGame(rulesCfg.Rules(), nil, flagPlayerName, width, height)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
