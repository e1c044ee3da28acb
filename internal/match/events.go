// Package match implements the per-match coordinator: it owns exactly two
// player boards, enforces turn order, and routes attack results and
// lifecycle notifications to the two player handles. Each match runs as an
// independent serialized actor fed by a request channel.
package match

import "github.com/vovakirdan/battleship/internal/game"

// PlayerID uniquely identifies a player within the engine. The host
// application decides what it maps to (a username, a connection id).
type PlayerID string

// MatchID uniquely identifies a match.
type MatchID string

// Event is a notification delivered asynchronously to a player handle.
type Event interface {
	playerEvent()
}

// Outcome is the attack outcome carried by fire events.
type Outcome int

const (
	OutcomeWater Outcome = iota
	OutcomeHit
	OutcomeShipDown
)

// String returns the outcome's wire-style name.
func (o Outcome) String() string {
	switch o {
	case OutcomeWater:
		return "water"
	case OutcomeHit:
		return "hit"
	case OutcomeShipDown:
		return "ship_down"
	default:
		return "unknown"
	}
}

// outcomeOf maps a board shot result to the outcome players see.
// A shot that sinks the whole fleet still reads ship_down; termination is
// reported separately via GameTerminatedEvent.
func outcomeOf(res game.ShotResult) Outcome {
	switch res {
	case game.ShotHit:
		return OutcomeHit
	case game.ShotSunk, game.ShotAllSunk:
		return OutcomeShipDown
	default:
		return OutcomeWater
	}
}

// GameResult tells a player how their match ended.
type GameResult int

const (
	ResultWin GameResult = iota
	ResultLose
)

// String returns "win" or "lose".
func (r GameResult) String() string {
	if r == ResultWin {
		return "win"
	}
	return "lose"
}

// Notification reasons for ErrorEvent beyond board errors.
const (
	ReasonNotYourTurn = "not_your_turn"
	ReasonMatchOver   = "match_over"
)

// WaitOtherPlayerEvent tells a player it is the opponent's move (or that no
// opponent has joined yet).
type WaitOtherPlayerEvent struct {
	PlayerID PlayerID
}

func (WaitOtherPlayerEvent) playerEvent() {}

// JoinedGameEvent is sent to both players when the second one joins.
type JoinedGameEvent struct {
	MatchID  MatchID
	PlayerID PlayerID
}

func (JoinedGameEvent) playerEvent() {}

// YourTurnEvent tells a player it may fire.
type YourTurnEvent struct {
	PlayerID PlayerID
}

func (YourTurnEvent) playerEvent() {}

// FireResultEvent reports the outcome of the receiving player's own shot.
type FireResultEvent struct {
	Outcome Outcome
	Cell    game.Cell
}

func (FireResultEvent) playerEvent() {}

// ReceivedFireEvent reports a shot the opponent landed on the receiving
// player's board.
type ReceivedFireEvent struct {
	Outcome Outcome
	Cell    game.Cell
}

func (ReceivedFireEvent) playerEvent() {}

// GameTerminatedEvent is sent to both players when a match ends.
type GameTerminatedEvent struct {
	Result GameResult
}

func (GameTerminatedEvent) playerEvent() {}

// ErrorEvent reports a rejected request back to the offending player only.
// Cell is set when the error is tied to a shot position.
type ErrorEvent struct {
	Reason string
	Cell   *game.Cell
}

func (ErrorEvent) playerEvent() {}
