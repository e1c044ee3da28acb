package game

import "testing"

// testBoard builds a 5x5 board with a 2-ship at (4,5)-(5,5) and a 1-ship
// at (2,2), matching required lengths [1,2].
func testBoard(t *testing.T) *Board {
	t.Helper()
	rules := Rules{Width: 5, Height: 5, ShipSizes: []int{1, 2}}
	b, err := NewBoard([][]Cell{{{4, 5}, {5, 5}}, {{2, 2}}}, rules)
	if err != nil {
		t.Fatalf("board construction failed: %v", err)
	}
	return b
}

func TestFireMiss(t *testing.T) {
	b := testBoard(t)

	res, err := b.Fire(Cell{4, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != ShotMiss {
		t.Errorf("expected water, got %s", res)
	}
	if b.ShipsLeft() != 2 {
		t.Errorf("miss must not affect ships, have %d left", b.ShipsLeft())
	}
}

func TestFireHitThenSink(t *testing.T) {
	b := testBoard(t)

	res, err := b.Fire(Cell{4, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != ShotHit {
		t.Errorf("first hit on 2-ship: expected hit, got %s", res)
	}
	if b.ShipsLeft() != 2 {
		t.Errorf("ship with one cell left is still afloat, have %d ships", b.ShipsLeft())
	}

	res, err = b.Fire(Cell{5, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != ShotSunk {
		t.Errorf("second hit on 2-ship: expected ship_down, got %s", res)
	}
	if b.ShipsLeft() != 1 {
		t.Errorf("expected 1 ship left, have %d", b.ShipsLeft())
	}
}

func TestFireLastShipReportsAllSunk(t *testing.T) {
	b := testBoard(t)

	for _, c := range []Cell{{4, 5}, {5, 5}} {
		if _, err := b.Fire(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	res, err := b.Fire(Cell{2, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != ShotAllSunk {
		t.Errorf("expected all_sunk on last cell of last ship, got %s", res)
	}
	if !b.AllSunk() {
		t.Error("board should report all ships sunk")
	}
}

func TestFireSingleCellShipNotAllSunk(t *testing.T) {
	b := testBoard(t)

	// The 1-ship goes down first; the 2-ship is still afloat.
	res, err := b.Fire(Cell{2, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != ShotSunk {
		t.Errorf("expected ship_down, got %s", res)
	}
	if b.AllSunk() {
		t.Error("board must not report all sunk with a ship afloat")
	}
}

func TestFireErrorsDoNotMutate(t *testing.T) {
	b := testBoard(t)

	// Off-board shots never mutate and repeat identically.
	for i := 0; i < 2; i++ {
		_, err := b.Fire(Cell{0, 3})
		if !IsKind(err, ErrInvalidCoordinate) {
			t.Fatalf("attempt %d: expected invalid_coordinate, got %v", i+1, err)
		}
	}
	if len(b.fired) != 0 {
		t.Errorf("invalid shot must not mark cells, %d marked", len(b.fired))
	}

	// Second shot at the same cell errors and leaves the count intact.
	if _, err := b.Fire(Cell{4, 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := b.Fire(Cell{4, 5})
	if !IsKind(err, ErrAlreadyFired) {
		t.Fatalf("expected already_fired, got %v", err)
	}
	if b.remaining[0] != 1 {
		t.Errorf("repeated shot must not decrement remaining, have %d", b.remaining[0])
	}
	if len(b.fired) != 1 {
		t.Errorf("fired count changed on error path: %d", len(b.fired))
	}
}

func TestFiredCountNeverDecreases(t *testing.T) {
	b := testBoard(t)

	prev := 0
	for _, c := range []Cell{{1, 1}, {2, 2}, {3, 3}, {4, 5}, {5, 5}} {
		if _, err := b.Fire(c); err != nil {
			t.Fatalf("unexpected error at %s: %v", c, err)
		}
		if len(b.fired) < prev {
			t.Fatalf("fired count decreased: %d -> %d", prev, len(b.fired))
		}
		if len(b.fired) != prev+1 {
			t.Fatalf("each shot marks exactly one cell, %d -> %d", prev, len(b.fired))
		}
		prev = len(b.fired)
	}
}

func TestSnapshot(t *testing.T) {
	b := testBoard(t)

	if _, err := b.Fire(Cell{4, 5}); err != nil { // hit
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Fire(Cell{1, 1}); err != nil { // miss
		t.Fatalf("unexpected error: %v", err)
	}

	snap := b.Snapshot()
	if snap.Width != 5 || snap.Height != 5 {
		t.Fatalf("unexpected snapshot size %dx%d", snap.Width, snap.Height)
	}

	checks := []struct {
		c    Cell
		want CellState
	}{
		{Cell{4, 5}, CellHit},
		{Cell{5, 5}, CellShip},
		{Cell{2, 2}, CellShip},
		{Cell{1, 1}, CellMiss},
		{Cell{3, 3}, CellEmpty},
	}
	for _, ck := range checks {
		if got := snap.Cells[ck.c.Y-1][ck.c.X-1]; got != ck.want {
			t.Errorf("cell %s: got state %d, want %d", ck.c, got, ck.want)
		}
	}
}

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	if r.Width != 10 || r.Height != 10 {
		t.Errorf("expected 10x10 board, got %dx%d", r.Width, r.Height)
	}
	want := []int{2, 3, 3, 4, 5}
	if !equalInts(r.ShipSizes, want) {
		t.Errorf("expected fleet %v, got %v", want, r.ShipSizes)
	}
}
