package twophase

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeamusWaldron/twophase/internal/cubie"
)

// Face represents a cube face in standard notation.
type Face string

const (
	FaceU Face = "U" // Up
	FaceR Face = "R" // Right
	FaceF Face = "F" // Front
	FaceD Face = "D" // Down
	FaceL Face = "L" // Left
	FaceB Face = "B" // Back
)

var faceIndex = map[Face]cubie.Face{
	FaceU: cubie.FaceU,
	FaceR: cubie.FaceR,
	FaceF: cubie.FaceF,
	FaceD: cubie.FaceD,
	FaceL: cubie.FaceL,
	FaceB: cubie.FaceB,
}

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// quarters returns the clockwise quarter-turn count in 1..3, or 0 for an
// unknown turn.
func (t Turn) quarters() int {
	switch t {
	case CW:
		return 1
	case Double:
		return 2
	case CCW:
		return 3
	}
	return 0
}

func turnFromQuarters(q int) Turn {
	switch q {
	case 1:
		return CW
	case 2:
		return Double
	}
	return CCW
}

// Move represents a single cube move with face, turn direction, and optional timestamp.
type Move struct {
	Face Face      // Which face to turn
	Turn Turn      // Direction and amount
	Time time.Time // When the move occurred (optional)
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// WithTime returns a copy of the move with the specified timestamp.
func (m Move) WithTime(t time.Time) Move {
	m.Time = t
	return m
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Valid reports whether m names one of the 18 face turns.
func (m Move) Valid() bool {
	_, ok := toCubie(m)
	return ok
}

func toCubie(m Move) (cubie.Move, bool) {
	f, ok := faceIndex[m.Face]
	q := m.Turn.quarters()
	if !ok || q == 0 {
		return 0, false
	}
	return cubie.NewMove(f, q), true
}

func fromCubie(cm cubie.Move) Move {
	return Move{Face: Face(cm.Face().String()), Turn: turnFromQuarters(cm.Power())}
}

func fromCubieMoves(cms []cubie.Move) []Move {
	moves := make([]Move, len(cms))
	for i, cm := range cms {
		moves[i] = fromCubie(cm)
	}
	return moves
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
// Returns an error wrapping ErrInvalidNotation if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, fmt.Errorf("%w: empty move", ErrInvalidNotation)
	}

	var face Face
	switch s[0] {
	case 'R', 'r':
		face = FaceR
	case 'L', 'l':
		face = FaceL
	case 'U', 'u':
		face = FaceU
	case 'D', 'd':
		face = FaceD
	case 'F', 'f':
		face = FaceF
	case 'B', 'b':
		face = FaceB
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW
	switch s[1:] {
	case "":
	case "'", "`":
		turn = CCW
	case "2", "2'", "2`":
		turn = Double
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// Any invalid token fails the whole sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	for i, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, move)
	}
	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// MergeMoves merges adjacent same-face moves.
// For example: R R becomes R2, R R R becomes R', R R' cancels out.
// The merged move keeps the timestamp of the later move.
func MergeMoves(moves []Move) []Move {
	result := make([]Move, 0, len(moves))
	for _, move := range moves {
		n := len(result)
		if n == 0 || result[n-1].Face != move.Face {
			result = append(result, move)
			continue
		}

		q := (result[n-1].Turn.quarters() + move.Turn.quarters()) % 4
		if q == 0 {
			result = result[:n-1]
			continue
		}
		result[n-1] = Move{Face: move.Face, Turn: turnFromQuarters(q), Time: move.Time}
	}
	return result
}
