package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/battleship/internal/game"
	"github.com/vovakirdan/battleship/internal/match"
)

var smallRules = game.Rules{Width: 5, Height: 5, ShipSizes: []int{1, 2}}

var (
	p1Ships = [][]game.Cell{{{X: 4, Y: 5}, {X: 5, Y: 5}}, {{X: 2, Y: 2}}}
	p2Ships = [][]game.Cell{{{X: 1, Y: 1}, {X: 1, Y: 2}}, {{X: 3, Y: 3}}}
)

func place(t *testing.T, d *Dispatcher, id match.PlayerID, ships [][]game.Cell) (*match.Match, *match.ChannelHandle) {
	t.Helper()
	h := match.NewChannelHandle(id, 32)
	m, err := d.PlacePlayer(ships, Options{PlayerID: id, Handle: h, Rules: smallRules})
	require.NoError(t, err)
	require.NotNil(t, m)
	return m, h
}

func TestPlacePlayerRequiresIdentity(t *testing.T) {
	d := New(nil)

	_, err := d.PlacePlayer(p1Ships, Options{Handle: match.NewChannelHandle("p1", 1)})
	assert.ErrorIs(t, err, ErrMissingPlayerID)

	_, err = d.PlacePlayer(p1Ships, Options{PlayerID: "p1"})
	assert.ErrorIs(t, err, ErrMissingHandle)
}

func TestPairsTwoPlayersIntoOneMatch(t *testing.T) {
	d := New(nil)

	m1, _ := place(t, d, "p1", p1Ships)
	assert.True(t, d.HasPending())

	m2, _ := place(t, d, "p2", p2Ships)
	assert.False(t, d.HasPending())
	assert.Equal(t, m1.ID(), m2.ID(), "both players must land in the same match")
	assert.Equal(t, 1, d.MatchCount())
}

func TestSequentialPairsGetDistinctMatches(t *testing.T) {
	d := New(nil)

	m1, _ := place(t, d, "a1", p1Ships)
	m1b, _ := place(t, d, "a2", p2Ships)
	m2, _ := place(t, d, "b1", p1Ships)
	m2b, _ := place(t, d, "b2", p2Ships)

	assert.Equal(t, m1.ID(), m1b.ID())
	assert.Equal(t, m2.ID(), m2b.ID())
	assert.NotEqual(t, m1.ID(), m2.ID())
	assert.Equal(t, 2, d.MatchCount())
}

func TestFailedJoinClearsPendingSlot(t *testing.T) {
	d := New(nil)

	place(t, d, "p1", p1Ships)
	require.True(t, d.HasPending())

	// Same id again: the join fails and the slot must not stay pending.
	_, err := d.PlacePlayer(p2Ships, Options{
		PlayerID: "p1",
		Handle:   match.NewChannelHandle("p1", 8),
		Rules:    smallRules,
	})
	require.ErrorIs(t, err, match.ErrPlayerIDTaken)
	assert.False(t, d.HasPending())

	// The next player starts a fresh match instead of joining the orphan.
	m, _ := place(t, d, "p3", p1Ships)
	assert.True(t, d.HasPending())
	_, ok := d.Match(m.ID())
	assert.True(t, ok)
}

func TestBadLayoutDoesNotRegisterMatch(t *testing.T) {
	d := New(nil)

	bad := [][]game.Cell{{{X: 1, Y: 1}, {X: 3, Y: 1}}}
	_, err := d.PlacePlayer(bad, Options{
		PlayerID: "p1",
		Handle:   match.NewChannelHandle("p1", 8),
		Rules:    smallRules,
	})
	require.Error(t, err)
	assert.True(t, game.IsKind(err, game.ErrNonContiguousShip), "got %v", err)
	assert.Equal(t, 0, d.MatchCount())
	assert.False(t, d.HasPending())
}

func TestDefaultRulesApplied(t *testing.T) {
	d := New(nil)

	// Standard fleet [2,3,3,4,5] laid out row by row on the default board.
	fleet := [][]game.Cell{
		{{X: 1, Y: 1}, {X: 2, Y: 1}},
		{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}},
		{{X: 1, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 3}},
		{{X: 1, Y: 4}, {X: 2, Y: 4}, {X: 3, Y: 4}, {X: 4, Y: 4}},
		{{X: 1, Y: 5}, {X: 2, Y: 5}, {X: 3, Y: 5}, {X: 4, Y: 5}, {X: 5, Y: 5}},
	}

	_, err := d.PlacePlayer(fleet, Options{
		PlayerID: "p1",
		Handle:   match.NewChannelHandle("p1", 8),
	})
	require.NoError(t, err)
	assert.True(t, d.HasPending())
}

func TestDropWaitingUsers(t *testing.T) {
	d := New(nil)

	m, _ := place(t, d, "p1", p1Ships)
	require.True(t, d.HasPending())

	d.DropWaitingUsers()
	assert.False(t, d.HasPending())
	assert.Equal(t, 0, d.MatchCount())

	// The dropped match is terminated for good.
	_, err := m.AddPlayer(p2Ships, "p2", match.NewChannelHandle("p2", 8), smallRules)
	assert.ErrorIs(t, err, match.ErrMatchClosed)
}

func TestTerminate(t *testing.T) {
	d := New(nil)

	m1, _ := place(t, d, "p1", p1Ships)
	place(t, d, "p2", p2Ships)

	assert.True(t, d.Terminate(m1.ID()))
	assert.Equal(t, 0, d.MatchCount())
	assert.False(t, d.Terminate(m1.ID()), "second terminate must report unknown match")
}

type captureSaver struct {
	results chan match.Result
}

func (s *captureSaver) SaveMatchResult(res match.Result) error {
	s.results <- res
	return nil
}

func TestFinishedMatchUnregisteredAndSaved(t *testing.T) {
	d := New(nil)
	saver := &captureSaver{results: make(chan match.Result, 1)}
	d.SetResultSaver(saver)

	m, h1 := place(t, d, "p1", p1Ships)
	_, h2 := place(t, d, "p2", p2Ships)

	// p1 sinks the whole p2 fleet; p2 answers with water shots in between.
	drain := func(h *match.ChannelHandle, n int) {
		for i := 0; i < n; i++ {
			select {
			case <-h.Events():
			case <-time.After(2 * time.Second):
				t.Fatal("timed out draining events")
			}
		}
	}
	drain(h1, 3) // wait, joined, your_turn
	drain(h2, 2) // joined, wait

	require.NoError(t, d.Fire(m.ID(), game.Cell{X: 1, Y: 1}, "p1"))
	drain(h1, 2)
	drain(h2, 2)
	require.NoError(t, d.Fire(m.ID(), game.Cell{X: 5, Y: 1}, "p2"))
	drain(h2, 2)
	drain(h1, 2)
	require.NoError(t, d.Fire(m.ID(), game.Cell{X: 1, Y: 2}, "p1"))
	drain(h1, 2)
	drain(h2, 2)
	require.NoError(t, d.Fire(m.ID(), game.Cell{X: 5, Y: 2}, "p2"))
	drain(h2, 2)
	drain(h1, 2)
	require.NoError(t, d.Fire(m.ID(), game.Cell{X: 3, Y: 3}, "p1"))

	select {
	case res := <-saver.results:
		assert.Equal(t, m.ID(), res.MatchID)
		assert.Equal(t, match.PlayerID("p1"), res.Winner)
		assert.Equal(t, match.PlayerID("p2"), res.Loser)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for saved result")
	}

	// Completion removes the match from the registry.
	deadline := time.After(2 * time.Second)
	for d.MatchCount() != 0 {
		select {
		case <-deadline:
			t.Fatal("finished match still registered")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSetResultSaverAfterMatchStarted(t *testing.T) {
	d := New(nil)
	rules := game.Rules{Width: 3, Height: 3, ShipSizes: []int{1}}

	h1 := match.NewChannelHandle("p1", 16)
	m, err := d.PlacePlayer([][]game.Cell{{{X: 2, Y: 2}}}, Options{PlayerID: "p1", Handle: h1, Rules: rules})
	require.NoError(t, err)
	h2 := match.NewChannelHandle("p2", 16)
	_, err = d.PlacePlayer([][]game.Cell{{{X: 1, Y: 1}}}, Options{PlayerID: "p2", Handle: h2, Rules: rules})
	require.NoError(t, err)

	// The saver arrives while the match is already live; its result must
	// still be observed on the completion goroutine.
	saver := &captureSaver{results: make(chan match.Result, 1)}
	d.SetResultSaver(saver)

	m.Fire(game.Cell{X: 1, Y: 1}, "p1")

	select {
	case res := <-saver.results:
		assert.Equal(t, match.PlayerID("p1"), res.Winner)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for saved result")
	}
}
