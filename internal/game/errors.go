package game

import "errors"

// ErrorKind classifies board errors. Placement kinds are returned during
// board construction; InvalidCoordinate and AlreadyFired are returned by Fire.
type ErrorKind int

const (
	ErrIncorrectSize      ErrorKind = iota // ship length outside the allowed range
	ErrOutOfBoard                          // a placement cell lies off the board
	ErrCrossingShip                        // a placement cell is already occupied
	ErrNonContiguousShip                   // cells are not a straight, gapless run
	ErrIncorrectShipSizes                  // placed fleet does not match the rules
	ErrInvalidCoordinate                   // shot target lies off the board
	ErrAlreadyFired                        // shot target was already fired at
)

// String returns the kind's wire-style name.
func (k ErrorKind) String() string {
	switch k {
	case ErrIncorrectSize:
		return "incorrect_size"
	case ErrOutOfBoard:
		return "out_of_board"
	case ErrCrossingShip:
		return "crossing_ship"
	case ErrNonContiguousShip:
		return "non_contiguous_ship"
	case ErrIncorrectShipSizes:
		return "incorrect_ship_sizes"
	case ErrInvalidCoordinate:
		return "invalid_coordinate"
	case ErrAlreadyFired:
		return "already_fired"
	default:
		return "unknown"
	}
}

// Error is a typed board error. Cell names the offending cell when the
// failure is tied to one; Detail carries extra context for the message.
type Error struct {
	Kind   ErrorKind
	Cell   *Cell
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "game: " + e.Kind.String()
	if e.Cell != nil {
		msg += " at " + e.Cell.String()
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func cellError(kind ErrorKind, c Cell) *Error {
	return &Error{Kind: kind, Cell: &c}
}

// IsKind reports whether err is a board error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == kind
}

// KindOf extracts the error kind, or -1 if err is not a board error.
func KindOf(err error) ErrorKind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return -1
}
