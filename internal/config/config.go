// Package config provides YAML-based configuration for game rules and the
// SSH server.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/battleship/internal/game"
)

// RulesConfig describes the board dimensions and the required fleet.
type RulesConfig struct {
	Board BoardConfig `yaml:"board"`
	Ships []int       `yaml:"ships"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Rules converts the config into engine rules.
func (c RulesConfig) Rules() game.Rules {
	return game.Rules{
		Width:     c.Board.Width,
		Height:    c.Board.Height,
		ShipSizes: append([]int(nil), c.Ships...),
	}
}

// Validate checks for values the engine cannot work with.
func (c RulesConfig) Validate() error {
	if c.Board.Width < 1 || c.Board.Height < 1 {
		return fmt.Errorf("config: board size %dx%d is invalid", c.Board.Width, c.Board.Height)
	}
	if len(c.Ships) == 0 {
		return fmt.Errorf("config: at least one ship length is required")
	}
	total := 0
	for _, s := range c.Ships {
		if s < 1 {
			return fmt.Errorf("config: ship length %d is invalid", s)
		}
		if s > c.Board.Width && s > c.Board.Height {
			return fmt.Errorf("config: ship of length %d cannot fit on a %dx%d board",
				s, c.Board.Width, c.Board.Height)
		}
		total += s
	}
	if total > c.Board.Width*c.Board.Height {
		return fmt.Errorf("config: fleet of %d cells cannot fit on a %dx%d board",
			total, c.Board.Width, c.Board.Height)
	}
	return nil
}

// ServerConfig contains settings for the SSH server.
type ServerConfig struct {
	Address         string `yaml:"address"`
	HostKeyPath     string `yaml:"host_key"`
	DBPath          string `yaml:"db"`
	IdleTimeoutMins int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the session idle timeout as a duration.
func (c ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMins) * time.Minute
}
