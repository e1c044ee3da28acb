package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

//go:embed defaults/server.yaml
var defaultServerYAML []byte

// DefaultRulesConfig returns the classic rules: a 10x10 board with the
// standard five-ship fleet.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 10,
		},
		Ships: []int{2, 3, 3, 4, 5},
	}
}

// DefaultServerConfig returns the default SSH server settings.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:         "0.0.0.0:2323",
		HostKeyPath:     ".ssh/battleship_ed25519",
		DBPath:          "battleship.db",
		IdleTimeoutMins: 30,
	}
}
