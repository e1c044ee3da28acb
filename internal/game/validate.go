package game

import (
	"fmt"
	"sort"
)

// validateShip checks one ship placement against the board's rules and the
// ships accepted so far. Checks run in a fixed order and the first failure
// wins: length, bounds, crossing, contiguity.
func validateShip(b *Board, cells []Cell) error {
	minLen, maxLen := sizeRange(b.rules.ShipSizes)
	if len(cells) < minLen || len(cells) > maxLen {
		return &Error{
			Kind:   ErrIncorrectSize,
			Detail: fmt.Sprintf("ship has %d cells, allowed %d..%d", len(cells), minLen, maxLen),
		}
	}

	for _, c := range cells {
		if !b.rules.Contains(c) {
			return cellError(ErrOutOfBoard, c)
		}
	}

	for _, c := range cells {
		if _, taken := b.occupied[c]; taken {
			return cellError(ErrCrossingShip, c)
		}
	}

	if !isContiguous(cells) {
		return &Error{Kind: ErrNonContiguousShip}
	}

	return nil
}

// validateFleet compares the multiset of placed ship lengths against the
// required multiset. Called once after all placements were accepted.
func validateFleet(b *Board) error {
	placed := make([]int, 0, len(b.remaining))
	for _, n := range b.remaining {
		placed = append(placed, n)
	}
	sort.Ints(placed)

	required := append([]int(nil), b.rules.ShipSizes...)
	sort.Ints(required)

	if !equalInts(placed, required) {
		return &Error{
			Kind:   ErrIncorrectShipSizes,
			Detail: fmt.Sprintf("placed lengths %v, required %v", placed, required),
		}
	}
	return nil
}

// isContiguous reports whether the cells form a straight, gapless run:
// all cells share one axis and each consecutive pair differs by exactly 1
// on the other. Monotonic steps rule out both gaps and repeats.
// A single cell is always contiguous.
func isContiguous(cells []Cell) bool {
	if len(cells) <= 1 {
		return true
	}

	sameX, sameY := true, true
	for _, c := range cells[1:] {
		if c.X != cells[0].X {
			sameX = false
		}
		if c.Y != cells[0].Y {
			sameY = false
		}
	}

	switch {
	case sameX:
		return stepsByOne(cells, func(c Cell) int { return c.Y })
	case sameY:
		return stepsByOne(cells, func(c Cell) int { return c.X })
	default:
		return false
	}
}

func stepsByOne(cells []Cell, axis func(Cell) int) bool {
	dir := axis(cells[1]) - axis(cells[0])
	if dir != 1 && dir != -1 {
		return false
	}
	for i := 1; i < len(cells); i++ {
		if axis(cells[i])-axis(cells[i-1]) != dir {
			return false
		}
	}
	return true
}

func sizeRange(sizes []int) (minLen, maxLen int) {
	if len(sizes) == 0 {
		return 0, 0
	}
	minLen, maxLen = sizes[0], sizes[0]
	for _, s := range sizes[1:] {
		if s < minLen {
			minLen = s
		}
		if s > maxLen {
			maxLen = s
		}
	}
	return minLen, maxLen
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
