// Package game implements the per-player battleship board: ship placement
// validation and shot resolution. Boards contain pure state with no external
// dependencies; turn order and player notification live in the match package.
package game

import "fmt"

// Cell is a 1-indexed board coordinate. (1,1) is the top-left corner;
// valid coordinates run 1..Width horizontally and 1..Height vertically.
type Cell struct {
	X int
	Y int
}

// String returns the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Rules fixes the board dimensions and the required fleet for one board.
// The fleet is a multiset of ship lengths: every length listed must be
// placed exactly that many times.
type Rules struct {
	Width     int
	Height    int
	ShipSizes []int
}

// DefaultRules returns the classic 10x10 board with ships of
// lengths 2, 3, 3, 4 and 5.
func DefaultRules() Rules {
	return Rules{
		Width:     10,
		Height:    10,
		ShipSizes: []int{2, 3, 3, 4, 5},
	}
}

// Contains reports whether the cell lies on the board.
func (r Rules) Contains(c Cell) bool {
	return c.X >= 1 && c.X <= r.Width && c.Y >= 1 && c.Y <= r.Height
}

// ShotResult is the outcome of firing at a single cell.
type ShotResult int

const (
	// ShotMiss means the cell held no ship.
	ShotMiss ShotResult = iota

	// ShotHit means a ship was hit but still has unfired cells.
	ShotHit

	// ShotSunk means the hit destroyed the ship's last remaining cell.
	ShotSunk

	// ShotAllSunk means the hit destroyed the last cell of the last ship:
	// the board has lost.
	ShotAllSunk
)

// String returns a short name for the shot result.
func (s ShotResult) String() string {
	switch s {
	case ShotMiss:
		return "water"
	case ShotHit:
		return "hit"
	case ShotSunk:
		return "ship_down"
	case ShotAllSunk:
		return "all_sunk"
	default:
		return "unknown"
	}
}

// CellState is the observable state of one cell in a board snapshot.
type CellState int

const (
	CellEmpty CellState = iota // open water, not fired at
	CellShip                   // intact ship segment
	CellHit                    // fired at, was a ship segment
	CellMiss                   // fired at, was open water
)

// Snapshot is a read-only view of a board for rendering.
// Cells is indexed [y][x] with 0-based indices.
type Snapshot struct {
	Width  int
	Height int
	Cells  [][]CellState
}
