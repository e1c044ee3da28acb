package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/battleship/internal/config"
	"github.com/vovakirdan/battleship/internal/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServerCfg   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the battleship SSH server",
	Long: `Start an SSH server that pairs connecting players into matches.

Each SSH connection is one player. After placing a fleet the player enters
the matchmaking queue; the first waiting player is paired with the next one
to arrive. Finished matches are saved to the shared history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.battleship/host_key

Examples:
  battleship serve                           # Listen on :2323 with auto-generated key
  battleship serve --ssh :2222               # Listen on port 2222
  battleship serve --host-key ./my_host_key  # Use specific host key
  battleship serve --db ./matches.db         # Use specific database

Users can connect with:
  ssh <name>@localhost -p 2323`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServerCfg, "config", "", "Path to server config YAML")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	serverCfg, err := config.LoadServer(flagServerCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading server config: %v\n", err)
		os.Exit(1)
	}
	rulesCfg, err := config.LoadRules(flagRulesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     serverCfg.Address,
		HostKeyPath: serverCfg.HostKeyPath,
		DBPath:      serverCfg.DBPath,
		IdleTimeout: serverCfg.IdleTimeout(),
		Rules:       rulesCfg.Rules(),
	}

	// Command line flags override the config file.
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if cmd.Flags().Changed("db") || cfg.DBPath == "" {
		cfg.DBPath = flagDBPath
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting battleship SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh <name>@localhost -p 2323")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
