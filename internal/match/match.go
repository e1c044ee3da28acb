package match

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/battleship/internal/game"
)

// JoinStatus is the synchronous result of AddPlayer.
type JoinStatus int

const (
	// JoinWaiting means the player was registered and the match still needs
	// a second player.
	JoinWaiting JoinStatus = iota

	// JoinStarted means the player completed the pairing and play has begun.
	JoinStarted
)

var (
	// ErrPlayerIDTaken is returned when a joining player's id is already
	// registered in the match.
	ErrPlayerIDTaken = errors.New("match: player id already taken")

	// ErrMatchFull is returned when a third player tries to join.
	ErrMatchFull = errors.New("match: already has two players")

	// ErrMatchClosed is returned when the match actor has been stopped.
	ErrMatchClosed = errors.New("match: terminated")
)

// Result is reported through the onComplete callback when a match ends by
// sinking a fleet.
type Result struct {
	MatchID  MatchID
	Winner   PlayerID
	Loser    PlayerID
	Shots    map[PlayerID]int
	Duration time.Duration
}

// playerEntry pairs a registered player with its handle and board.
type playerEntry struct {
	id     PlayerID
	handle PlayerHandle
	board  *game.Board
}

// Match coordinates one pairing of two players. All state below reqChan is
// owned by the actor goroutine started in New; external callers interact
// only through AddPlayer, Fire and Stop, so no operation on one match ever
// runs concurrently with another.
type Match struct {
	id         MatchID
	logger     *log.Logger
	onComplete func(Result)

	reqChan  chan matchRequest
	done     chan struct{}
	doneOnce sync.Once

	// Actor-owned state.
	players   []*playerEntry
	turn      PlayerID
	finished  bool
	shots     map[PlayerID]int
	startedAt time.Time
}

type matchRequest interface {
	matchRequest()
}

type addPlayerReq struct {
	placements [][]game.Cell
	id         PlayerID
	handle     PlayerHandle
	rules      game.Rules
	reply      chan addPlayerResp
}

func (addPlayerReq) matchRequest() {}

type addPlayerResp struct {
	status JoinStatus
	err    error
}

type fireReq struct {
	cell   game.Cell
	player PlayerID
}

func (fireReq) matchRequest() {}

// New creates a match and starts its actor goroutine. onComplete may be nil;
// when set it is invoked (on its own goroutine) after a fleet is sunk.
func New(id MatchID, logger *log.Logger, onComplete func(Result)) *Match {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Match{
		id:         id,
		logger:     logger,
		onComplete: onComplete,
		reqChan:    make(chan matchRequest, 64),
		done:       make(chan struct{}),
		shots:      make(map[PlayerID]int),
	}
	go m.loop()
	return m
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// AddPlayer registers a player with a ship layout. It blocks until the match
// actor has processed the request: the player's board is built and
// validated, the entry recorded, and join notifications delivered. The
// first player gets JoinWaiting; the second gets JoinStarted and play
// begins with the first-registered player's turn.
func (m *Match) AddPlayer(placements [][]game.Cell, id PlayerID, handle PlayerHandle, rules game.Rules) (JoinStatus, error) {
	req := addPlayerReq{
		placements: placements,
		id:         id,
		handle:     handle,
		rules:      rules,
		reply:      make(chan addPlayerResp, 1),
	}

	select {
	case m.reqChan <- req:
	case <-m.done:
		return 0, ErrMatchClosed
	}

	select {
	case resp := <-req.reply:
		return resp.status, resp.err
	case <-m.done:
		return 0, ErrMatchClosed
	}
}

// Fire submits a shot on behalf of a player. It never blocks and has no
// direct result: outcomes arrive as notifications on the player handles.
func (m *Match) Fire(cell game.Cell, player PlayerID) {
	select {
	case m.reqChan <- fireReq{cell: cell, player: player}:
	case <-m.done:
	}
}

// Stop terminates the match actor. Pending requests are discarded; no
// further notifications are sent.
func (m *Match) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}

func (m *Match) loop() {
	for {
		select {
		case req := <-m.reqChan:
			switch r := req.(type) {
			case addPlayerReq:
				status, err := m.handleAddPlayer(r)
				r.reply <- addPlayerResp{status: status, err: err}
			case fireReq:
				m.handleFire(r)
			}
		case <-m.done:
			return
		}
	}
}

func (m *Match) handleAddPlayer(r addPlayerReq) (JoinStatus, error) {
	if m.finished {
		return 0, ErrMatchClosed
	}
	if len(m.players) >= 2 {
		return 0, ErrMatchFull
	}
	for _, p := range m.players {
		if p.id == r.id {
			return 0, fmt.Errorf("%w: %q", ErrPlayerIDTaken, r.id)
		}
	}

	board, err := game.NewBoard(r.placements, r.rules)
	if err != nil {
		return 0, err
	}

	m.players = append(m.players, &playerEntry{id: r.id, handle: r.handle, board: board})

	if len(m.players) == 1 {
		r.handle.Send(WaitOtherPlayerEvent{PlayerID: r.id})
		m.logger.Debug("player waiting", "match", m.id, "player", r.id)
		return JoinWaiting, nil
	}

	// Second player completes the pairing: the first to register moves first.
	first, second := m.players[0], m.players[1]
	m.turn = first.id
	m.startedAt = time.Now()

	first.handle.Send(JoinedGameEvent{MatchID: m.id, PlayerID: first.id})
	second.handle.Send(JoinedGameEvent{MatchID: m.id, PlayerID: second.id})
	first.handle.Send(YourTurnEvent{PlayerID: first.id})
	second.handle.Send(WaitOtherPlayerEvent{PlayerID: second.id})

	m.logger.Info("match started", "match", m.id, "player1", first.id, "player2", second.id)
	return JoinStarted, nil
}

func (m *Match) handleFire(r fireReq) {
	mover := m.entry(r.player)
	if mover == nil {
		m.logger.Warn("shot from unknown player", "match", m.id, "player", r.player)
		return
	}

	if m.finished {
		mover.handle.Send(ErrorEvent{Reason: ReasonMatchOver, Cell: &r.cell})
		return
	}

	// Covers both a wrong-turn shot and a shot before the second player
	// joined (turn is still unset).
	if r.player != m.turn {
		mover.handle.Send(ErrorEvent{Reason: ReasonNotYourTurn, Cell: &r.cell})
		return
	}

	opponent := m.opponent(r.player)
	result, err := opponent.board.Fire(r.cell)
	if err != nil {
		mover.handle.Send(ErrorEvent{Reason: game.KindOf(err).String(), Cell: &r.cell})
		return
	}

	m.shots[r.player]++
	outcome := outcomeOf(result)

	if result == game.ShotAllSunk {
		mover.handle.Send(FireResultEvent{Outcome: outcome, Cell: r.cell})
		mover.handle.Send(GameTerminatedEvent{Result: ResultWin})
		opponent.handle.Send(ReceivedFireEvent{Outcome: outcome, Cell: r.cell})
		opponent.handle.Send(GameTerminatedEvent{Result: ResultLose})

		m.finished = true
		m.logger.Info("match finished", "match", m.id, "winner", mover.id, "loser", opponent.id)

		if m.onComplete != nil {
			shots := make(map[PlayerID]int, len(m.shots))
			for id, n := range m.shots {
				shots[id] = n
			}
			res := Result{
				MatchID:  m.id,
				Winner:   mover.id,
				Loser:    opponent.id,
				Shots:    shots,
				Duration: time.Since(m.startedAt),
			}
			// Off the actor goroutine so a callback reaching back into the
			// engine cannot deadlock against a concurrent AddPlayer.
			go m.onComplete(res)
		}
		return
	}

	mover.handle.Send(FireResultEvent{Outcome: outcome, Cell: r.cell})
	mover.handle.Send(WaitOtherPlayerEvent{PlayerID: mover.id})
	opponent.handle.Send(ReceivedFireEvent{Outcome: outcome, Cell: r.cell})
	opponent.handle.Send(YourTurnEvent{PlayerID: opponent.id})
	m.turn = opponent.id
}

func (m *Match) entry(id PlayerID) *playerEntry {
	for _, p := range m.players {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (m *Match) opponent(id PlayerID) *playerEntry {
	for _, p := range m.players {
		if p.id != id {
			return p
		}
	}
	return nil
}
