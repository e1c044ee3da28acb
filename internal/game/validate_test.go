package game

import "testing"

func TestContiguity(t *testing.T) {
	tests := []struct {
		name  string
		cells []Cell
		want  bool
	}{
		{"single cell", []Cell{{3, 3}}, true},
		{"horizontal ascending", []Cell{{2, 5}, {3, 5}, {4, 5}}, true},
		{"horizontal descending", []Cell{{4, 5}, {3, 5}, {2, 5}}, true},
		{"vertical ascending", []Cell{{7, 1}, {7, 2}, {7, 3}}, true},
		{"vertical descending", []Cell{{7, 3}, {7, 2}}, true},
		{"diagonal", []Cell{{1, 1}, {2, 2}}, false},
		{"gap", []Cell{{1, 1}, {1, 3}}, false},
		{"zigzag revisits cell", []Cell{{1, 1}, {1, 2}, {1, 1}}, false},
		{"bent ship", []Cell{{1, 1}, {2, 1}, {2, 2}}, false},
		{"direction change", []Cell{{2, 2}, {3, 2}, {2, 2}, {1, 2}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isContiguous(tt.cells); got != tt.want {
				t.Errorf("isContiguous(%v) = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}

func TestPlacementValidationOrder(t *testing.T) {
	rules := Rules{Width: 5, Height: 5, ShipSizes: []int{1, 2}}

	tests := []struct {
		name       string
		placements [][]Cell
		wantKind   ErrorKind
	}{
		{
			"too long",
			[][]Cell{{{1, 1}, {2, 1}, {3, 1}}},
			ErrIncorrectSize,
		},
		{
			"too short",
			[][]Cell{{}},
			ErrIncorrectSize,
		},
		{
			"off board",
			[][]Cell{{{5, 5}, {6, 5}}},
			ErrOutOfBoard,
		},
		{
			"crossing",
			[][]Cell{{{2, 2}, {2, 3}}, {{2, 3}}},
			ErrCrossingShip,
		},
		{
			"not contiguous",
			[][]Cell{{{1, 1}, {2, 2}}},
			ErrNonContiguousShip,
		},
		{
			"incomplete fleet",
			[][]Cell{{{1, 1}, {2, 1}}},
			ErrIncorrectShipSizes,
		},
		{
			"wrong lengths",
			[][]Cell{{{1, 1}}, {{3, 3}}},
			ErrIncorrectShipSizes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBoard(tt.placements, rules)
			if b != nil {
				t.Fatalf("expected construction to fail, got a board")
			}
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !IsKind(err, tt.wantKind) {
				t.Errorf("got error %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}

func TestOutOfBoardNamesOffendingCell(t *testing.T) {
	rules := Rules{Width: 3, Height: 3, ShipSizes: []int{2}}
	_, err := NewBoard([][]Cell{{{3, 3}, {4, 3}}}, rules)

	ge, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ge.Cell == nil || *ge.Cell != (Cell{4, 3}) {
		t.Errorf("expected offending cell (4,3), got %v", ge.Cell)
	}
}
