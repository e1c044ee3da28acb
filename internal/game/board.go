package game

// shipID identifies one placed ship within a board. Never exposed outside
// the package.
type shipID int

// Board tracks one player's grid: which cells hold ships, which cells were
// fired at, and how many unfired cells each ship has left.
//
// A Board is not safe for concurrent use; it is exclusively owned by one
// match actor, which serializes all access.
type Board struct {
	rules     Rules
	occupied  map[Cell]shipID
	fired     map[Cell]bool
	remaining map[shipID]int
	nextShip  shipID
}

// NewBoard builds a board from the given ship placements. Placements are
// validated one at a time in order; the first failure aborts construction
// and no board is returned. After all ships are placed, the fleet is
// checked against the rules' required ship lengths.
func NewBoard(placements [][]Cell, rules Rules) (*Board, error) {
	b := &Board{
		rules:     rules,
		occupied:  make(map[Cell]shipID),
		fired:     make(map[Cell]bool),
		remaining: make(map[shipID]int),
	}

	for _, cells := range placements {
		if err := b.placeShip(cells); err != nil {
			return nil, err
		}
	}

	if err := validateFleet(b); err != nil {
		return nil, err
	}

	return b, nil
}

// placeShip validates one placement and records it under a fresh ship id.
func (b *Board) placeShip(cells []Cell) error {
	if err := validateShip(b, cells); err != nil {
		return err
	}

	id := b.nextShip
	b.nextShip++
	for _, c := range cells {
		b.occupied[c] = id
	}
	b.remaining[id] = len(cells)
	return nil
}

// Fire resolves a shot at the given cell. Error paths (off-board target,
// repeated target) leave the board untouched; every other path marks the
// cell fired exactly once.
func (b *Board) Fire(c Cell) (ShotResult, error) {
	if !b.rules.Contains(c) {
		return 0, cellError(ErrInvalidCoordinate, c)
	}
	if b.fired[c] {
		return 0, cellError(ErrAlreadyFired, c)
	}

	b.fired[c] = true

	id, hasShip := b.occupied[c]
	if !hasShip {
		return ShotMiss, nil
	}

	switch {
	case b.remaining[id] == 1 && len(b.remaining) == 1:
		// Last cell of the last ship: the fleet is gone.
		delete(b.remaining, id)
		return ShotAllSunk, nil
	case b.remaining[id] == 1:
		delete(b.remaining, id)
		return ShotSunk, nil
	default:
		b.remaining[id]--
		return ShotHit, nil
	}
}

// Rules returns the board's dimensions and required fleet.
func (b *Board) Rules() Rules {
	return b.rules
}

// ShipsLeft returns the number of ships with at least one unfired cell.
func (b *Board) ShipsLeft() int {
	return len(b.remaining)
}

// AllSunk reports whether every ship on the board has been destroyed.
func (b *Board) AllSunk() bool {
	return len(b.remaining) == 0
}

// Snapshot returns a read-only grid view of the board for rendering.
func (b *Board) Snapshot() Snapshot {
	snap := Snapshot{
		Width:  b.rules.Width,
		Height: b.rules.Height,
		Cells:  make([][]CellState, b.rules.Height),
	}
	for y := range snap.Cells {
		snap.Cells[y] = make([]CellState, b.rules.Width)
	}

	for c := range b.occupied {
		snap.Cells[c.Y-1][c.X-1] = CellShip
	}
	for c := range b.fired {
		if _, ship := b.occupied[c]; ship {
			snap.Cells[c.Y-1][c.X-1] = CellHit
		} else {
			snap.Cells[c.Y-1][c.X-1] = CellMiss
		}
	}
	return snap
}
