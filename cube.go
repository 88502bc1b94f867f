package twophase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/twophase/internal/coord"
	"github.com/SeamusWaldron/twophase/internal/cubie"
	"github.com/SeamusWaldron/twophase/internal/facelet"
)

// Color represents a sticker color in the standard scheme.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// faceColors holds the solved color of each face in U, R, F, D, L, B order.
var faceColors = [cubie.NumFaces]Color{White, Red, Green, Yellow, Orange, Blue}

// Cube represents a 3x3 cube state. The zero value is not usable; create one
// with NewCube or ParseFacelets.
type Cube struct {
	state cubie.Cube
}

// NewCube creates a solved cube with standard orientation:
// White on top, Green in front.
func NewCube() *Cube {
	return &Cube{state: cubie.Solved}
}

// ParseFacelets builds a cube from a 54-sticker layout.
//
// The error wraps ErrMalformedInput when the layout has the wrong length or
// uses a symbol that is not one of the six center symbols, and
// ErrInvalidCubeState when the stickers cannot come from a reachable cube.
// It also wraps the precise cause.
func ParseFacelets(s string) (*Cube, error) {
	state, err := facelet.Parse(s)
	if err != nil {
		if errors.Is(err, facelet.ErrLength) || errors.Is(err, facelet.ErrCenters) || errors.Is(err, facelet.ErrSymbol) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCubeState, err)
	}
	return &Cube{state: state}, nil
}

// Clone creates a copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Reset returns the cube to the solved state.
func (c *Cube) Reset() {
	c.state = cubie.Solved
}

// Apply applies moves in order. Moves that are not Valid are ignored.
func (c *Cube) Apply(moves ...Move) {
	for _, m := range moves {
		if cm, ok := toCubie(m); ok {
			c.state = c.state.Move(cm)
		}
	}
}

// ApplyNotation parses and applies a move sequence such as "R U R' U'".
// Nothing is applied if any token is invalid.
func (c *Cube) ApplyNotation(s string) error {
	moves, err := ParseMoves(s)
	if err != nil {
		return err
	}
	c.Apply(moves...)
	return nil
}

// IsSolved returns true if the cube is in the solved state.
func (c *Cube) IsSolved() bool {
	return c.state.IsSolved()
}

// Phase reports how far the cube is from solved in terms of the two-phase
// algorithm.
func (c *Cube) Phase() Phase {
	switch {
	case c.state.IsSolved():
		return PhaseSolved
	case coord.InSubgroup(c.state):
		return PhaseReduced
	default:
		return PhaseScrambled
	}
}

// Facelets returns the 54-sticker layout in face letters, the format
// ParseFacelets and Solver.Solve accept.
func (c *Cube) Facelets() string {
	return facelet.Format(c.state)
}

// Colors returns the 54-sticker layout in color letters (W, R, G, Y, O, B).
func (c *Cube) Colors() string {
	var symbols [cubie.NumFaces]rune
	for i, col := range faceColors {
		symbols[i] = rune(col.String()[0])
	}
	return facelet.Recolor(c.Facelets(), symbols)
}

// Sticker returns the color at a sticker index of the layout.
func (c *Cube) Sticker(i int) Color {
	idx := strings.IndexByte("URFDLB", c.Facelets()[i])
	return faceColors[idx]
}

// netRows lists, for each printed row, the faces laid out side by side.
var netRows = [3][]int{
	{-1, 0},      // U
	{4, 2, 1, 5}, // L F R B
	{-1, 3},      // D
}

// String returns the cube as a net of color letters:
//
//	      U
//	L F R B
//	      D
func (c *Cube) String() string {
	colors := c.Colors()
	var sb strings.Builder
	for _, faces := range netRows {
		for row := 0; row < 3; row++ {
			for _, face := range faces {
				if face < 0 {
					sb.WriteString("      ")
					continue
				}
				for col := 0; col < 3; col++ {
					sb.WriteByte(colors[face*9+row*3+col])
					sb.WriteByte(' ')
				}
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
