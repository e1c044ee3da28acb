// Package bot provides a computer opponent that plays through the same
// dispatcher interface as a human player.
package bot

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/battleship/internal/dispatch"
	"github.com/vovakirdan/battleship/internal/game"
	"github.com/vovakirdan/battleship/internal/match"
)

// RandomFleet generates a valid random layout for the given rules. Ships are
// placed longest first; if a layout paints itself into a corner the whole
// attempt is restarted. Returns nil when no layout was found: a ship fits
// neither board dimension, the fleet has more cells than the board, or every
// restart came up short.
func RandomFleet(rules game.Rules, rng *rand.Rand) [][]game.Cell {
	sizes := append([]int(nil), rules.ShipSizes...)
	// Longest first so the big ships get room.
	for i := 0; i < len(sizes); i++ {
		for j := i + 1; j < len(sizes); j++ {
			if sizes[j] > sizes[i] {
				sizes[i], sizes[j] = sizes[j], sizes[i]
			}
		}
	}
	total := 0
	for _, size := range sizes {
		if size > rules.Width && size > rules.Height {
			return nil
		}
		total += size
	}
	if total > rules.Width*rules.Height {
		return nil
	}

	for restart := 0; restart < 100; restart++ {
		occupied := make(map[game.Cell]bool)
		fleet := make([][]game.Cell, 0, len(sizes))
		ok := true

		for _, size := range sizes {
			ship := placeShip(rules, occupied, size, rng)
			if ship == nil {
				ok = false
				break
			}
			for _, c := range ship {
				occupied[c] = true
			}
			fleet = append(fleet, ship)
		}

		if ok {
			return fleet
		}
	}
	return nil
}

// placeShip tries random positions for one ship. Returns nil when no free
// spot was found within the attempt budget.
func placeShip(rules game.Rules, occupied map[game.Cell]bool, size int, rng *rand.Rand) []game.Cell {
	for attempt := 0; attempt < 200; attempt++ {
		horizontal := rng.Intn(2) == 0
		if horizontal && rules.Width < size {
			horizontal = false
		}
		if !horizontal && rules.Height < size {
			horizontal = true
		}

		var origin game.Cell
		if horizontal {
			origin = game.Cell{X: 1 + rng.Intn(rules.Width-size+1), Y: 1 + rng.Intn(rules.Height)}
		} else {
			origin = game.Cell{X: 1 + rng.Intn(rules.Width), Y: 1 + rng.Intn(rules.Height-size+1)}
		}

		ship := make([]game.Cell, size)
		free := true
		for i := 0; i < size; i++ {
			c := origin
			if horizontal {
				c.X += i
			} else {
				c.Y += i
			}
			if occupied[c] {
				free = false
				break
			}
			ship[i] = c
		}
		if free {
			return ship
		}
	}
	return nil
}

// Bot is a computer player. It joins through the dispatcher with a random
// fleet and answers every turn with a random untried shot.
type Bot struct {
	id    match.PlayerID
	m     *match.Match
	h     *match.ChannelHandle
	rules game.Rules
	rng   *rand.Rand
}

// Join places a bot into matchmaking. The bot starts playing on its own
// goroutine as soon as the match begins.
func Join(d *dispatch.Dispatcher, rules game.Rules, id match.PlayerID, rng *rand.Rand) (*Bot, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	h := match.NewChannelHandle(id, 64)
	fleet := RandomFleet(rules, rng)

	m, err := d.PlacePlayer(fleet, dispatch.Options{
		PlayerID: id,
		Handle:   h,
		Rules:    rules,
	})
	if err != nil {
		return nil, fmt.Errorf("bot: cannot join: %w", err)
	}

	b := &Bot{id: id, m: m, h: h, rules: rules, rng: rng}
	go b.run()
	return b, nil
}

// Stop detaches the bot from its event stream.
func (b *Bot) Stop() {
	b.h.Close()
}

func (b *Bot) run() {
	tried := make(map[game.Cell]bool)

	for {
		select {
		case evt := <-b.h.Events():
			switch evt.(type) {
			case match.YourTurnEvent:
				b.m.Fire(b.pickShot(tried), b.id)
			case match.GameTerminatedEvent:
				return
			}
		case <-b.h.Done():
			return
		}
	}
}

// pickShot returns a random cell that has not been tried yet.
func (b *Bot) pickShot(tried map[game.Cell]bool) game.Cell {
	total := b.rules.Width * b.rules.Height
	if len(tried) >= total {
		// Board exhausted; should not happen before the game ends.
		return game.Cell{X: 1, Y: 1}
	}

	for {
		c := game.Cell{
			X: 1 + b.rng.Intn(b.rules.Width),
			Y: 1 + b.rng.Intn(b.rules.Height),
		}
		if !tried[c] {
			tried[c] = true
			return c
		}
	}
}
