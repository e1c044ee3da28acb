// battleship is a terminal battleship game with online matchmaking over SSH.
//
// Usage:
//
//	battleship play              - Play a local game against the computer
//	battleship serve             - Start the SSH server for online play
//	battleship matches           - Browse match history and the leaderboard
//
// Global flags:
//
//	--db <path>     - Set database path (default: ~/.battleship/matches.db)
//	--rules <path>  - Path to a custom rules YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath    string
	flagRulesPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "battleship",
	Short: "Battleship - naval combat in your terminal",
	Long: `Battleship is a terminal game of naval combat. Place your fleet,
find an opponent, and sink their ships before they sink yours.

Available commands:
  play     - Play a local game against the computer
  serve    - Start an SSH server for online matches
  matches  - Browse finished matches and the leaderboard

Examples:
  battleship play
  battleship serve --ssh :2323
  battleship matches`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.battleship/matches.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagRulesPath, "rules", "", "Path to custom rules YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(matchesCmd)
}
