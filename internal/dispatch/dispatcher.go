// Package dispatch implements the matchmaking dispatcher: a single queue
// that pairs incoming players into matches. At most one match is ever
// waiting for its second player; the dispatcher also keeps a registry of
// live matches so the host can look them up and force-terminate them.
package dispatch

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/battleship/internal/game"
	"github.com/vovakirdan/battleship/internal/match"
)

var (
	// ErrMissingPlayerID is returned when Options carries no player id.
	// Identity is always explicit; the dispatcher never invents one.
	ErrMissingPlayerID = errors.New("dispatch: player id is required")

	// ErrMissingHandle is returned when Options carries no player handle.
	ErrMissingHandle = errors.New("dispatch: player handle is required")

	// ErrUnknownMatch is returned when a match id is not registered.
	ErrUnknownMatch = errors.New("dispatch: unknown match")
)

// ResultSaver persists finished match results. Implementations live in the
// host application (see the storage package); the engine itself never
// persists anything.
type ResultSaver interface {
	SaveMatchResult(res match.Result) error
}

// Options configures one player placement.
type Options struct {
	// PlayerID identifies the player. Required.
	PlayerID match.PlayerID

	// Handle receives the player's notifications. Required.
	Handle match.PlayerHandle

	// Rules sets board dimensions and fleet. The zero value means
	// game.DefaultRules.
	Rules game.Rules
}

// Dispatcher pairs players into matches. Safe for concurrent use; the
// mutex serializes all matchmaking decisions, so at most one unmatched
// player exists at any instant.
type Dispatcher struct {
	logger *log.Logger

	mu      sync.Mutex
	saver   ResultSaver
	pending *match.Match
	matches map[match.MatchID]*match.Match
}

// New creates a dispatcher. logger may be nil.
func New(logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		logger:  logger,
		matches: make(map[match.MatchID]*match.Match),
	}
}

// SetResultSaver sets the optional result persistence hook.
func (d *Dispatcher) SetResultSaver(saver ResultSaver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saver = saver
}

// PlacePlayer admits a player with a ship layout. If a match is waiting for
// a second player, the player joins it and play begins; otherwise a new
// match is created and left waiting. The returned match handle is valid on
// every success path.
//
// A failed join (bad layout, taken id) never leaves a half-paired match in
// the pending slot: the slot is cleared and the next player starts fresh.
func (d *Dispatcher) PlacePlayer(placements [][]game.Cell, opts Options) (*match.Match, error) {
	if opts.PlayerID == "" {
		return nil, ErrMissingPlayerID
	}
	if opts.Handle == nil {
		return nil, ErrMissingHandle
	}
	rules := opts.Rules
	if rules.Width == 0 && rules.Height == 0 && len(rules.ShipSizes) == 0 {
		rules = game.DefaultRules()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		m := d.newMatchLocked()
		status, err := m.AddPlayer(placements, opts.PlayerID, opts.Handle, rules)
		if err != nil {
			delete(d.matches, m.ID())
			m.Stop()
			return nil, err
		}
		if status == match.JoinWaiting {
			d.pending = m
		}
		d.logger.Debug("player placed in new match", "match", m.ID(), "player", opts.PlayerID)
		return m, nil
	}

	m := d.pending
	status, err := m.AddPlayer(placements, opts.PlayerID, opts.Handle, rules)
	if err != nil {
		d.pending = nil
		return nil, err
	}
	if status == match.JoinStarted {
		d.pending = nil
	}
	d.logger.Debug("player joined pending match", "match", m.ID(), "player", opts.PlayerID)
	return m, nil
}

// Fire routes a shot to a registered match. The outcome arrives
// asynchronously on the player handles.
func (d *Dispatcher) Fire(id match.MatchID, cell game.Cell, player match.PlayerID) error {
	d.mu.Lock()
	m, ok := d.matches[id]
	d.mu.Unlock()

	if !ok {
		return ErrUnknownMatch
	}
	m.Fire(cell, player)
	return nil
}

// Match looks up a live match by id.
func (d *Dispatcher) Match(id match.MatchID) (*match.Match, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.matches[id]
	return m, ok
}

// MatchCount returns the number of live matches.
func (d *Dispatcher) MatchCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.matches)
}

// HasPending reports whether a match is waiting for its second player.
func (d *Dispatcher) HasPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// DropWaitingUsers discards the pending slot, terminating the match that
// was waiting for a second player. Fully paired matches are unaffected.
func (d *Dispatcher) DropWaitingUsers() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return
	}
	delete(d.matches, d.pending.ID())
	d.pending.Stop()
	d.logger.Info("dropped waiting match", "match", d.pending.ID())
	d.pending = nil
}

// Terminate force-stops a match and removes it from the registry.
// Returns false if the id is not registered.
func (d *Dispatcher) Terminate(id match.MatchID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	m, ok := d.matches[id]
	if !ok {
		return false
	}
	delete(d.matches, id)
	if d.pending == m {
		d.pending = nil
	}
	m.Stop()
	return true
}

// newMatchLocked creates and registers a match. Caller holds d.mu.
func (d *Dispatcher) newMatchLocked() *match.Match {
	id := match.MatchID(uuid.NewString())
	m := match.New(id, d.logger, d.handleMatchEnded)
	d.matches[id] = m
	return m
}

// handleMatchEnded runs on a match goroutine after a fleet was sunk.
func (d *Dispatcher) handleMatchEnded(res match.Result) {
	d.mu.Lock()
	delete(d.matches, res.MatchID)
	if d.pending != nil && d.pending.ID() == res.MatchID {
		d.pending = nil
	}
	saver := d.saver
	d.mu.Unlock()

	if saver != nil {
		if err := saver.SaveMatchResult(res); err != nil {
			d.logger.Warn("could not save match result", "match", res.MatchID, "error", err)
		}
	}
}
