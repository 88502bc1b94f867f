// Package facelet converts between the 54-sticker layout of a cube and its
// cubie state.
//
// The layout lists the faces in U, R, F, D, L, B order, nine stickers each,
// row by row as seen from outside the face:
//
//	         |U1 U2 U3|
//	         |U4 U5 U6|
//	         |U7 U8 U9|
//	|L1 L2 L3|F1 F2 F3|R1 R2 R3|B1 B2 B3|
//	|L4 L5 L6|F4 F5 F6|R4 R5 R6|B4 B5 B6|
//	|L7 L8 L9|F7 F8 F9|R7 R8 R9|B7 B8 B9|
//	         |D1 D2 D3|
//	         |D4 D5 D6|
//	         |D7 D8 D9|
//
// Any six distinct symbols may be used; the center sticker of each face
// names that face's symbol.
package facelet

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SeamusWaldron/twophase/internal/cubie"
)

// Len is the number of stickers in a layout.
const Len = 54

// Errors returned by Parse.
var (
	ErrLength       = errors.New("facelet: layout must have 54 stickers")
	ErrCenters      = errors.New("facelet: center stickers must be six distinct symbols")
	ErrSymbol       = errors.New("facelet: sticker does not match any center")
	ErrColorCount   = errors.New("facelet: each face symbol must appear exactly nine times")
	ErrUnknownCubie = errors.New("facelet: sticker colors do not form a valid cubie")
)

// Solved is the layout of the solved cube in face letters.
const Solved = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

// Sticker offsets of each face's first sticker.
const (
	u = 0
	r = 9
	f = 18
	d = 27
	l = 36
	b = 45
)

// centers holds the index of each face's center sticker.
var centers = [cubie.NumFaces]int{u + 4, r + 4, f + 4, d + 4, l + 4, b + 4}

// cornerFacelet lists, per corner slot, its stickers starting with the U or D
// sticker and going clockwise.
var cornerFacelet = [cubie.NumCorners][3]int{
	cubie.URF: {u + 8, r + 0, f + 2},
	cubie.UFL: {u + 6, f + 0, l + 2},
	cubie.ULB: {u + 0, l + 0, b + 2},
	cubie.UBR: {u + 2, b + 0, r + 2},
	cubie.DFR: {d + 2, f + 8, r + 6},
	cubie.DLF: {d + 0, l + 8, f + 6},
	cubie.DBL: {d + 6, b + 8, l + 6},
	cubie.DRB: {d + 8, r + 8, b + 6},
}

// edgeFacelet lists the two stickers of each edge slot.
var edgeFacelet = [cubie.NumEdges][2]int{
	cubie.UR: {u + 5, r + 1},
	cubie.UF: {u + 7, f + 1},
	cubie.UL: {u + 3, l + 1},
	cubie.UB: {u + 1, b + 1},
	cubie.DR: {d + 5, r + 7},
	cubie.DF: {d + 1, f + 7},
	cubie.DL: {d + 3, l + 7},
	cubie.DB: {d + 7, b + 7},
	cubie.FR: {f + 5, r + 3},
	cubie.FL: {f + 3, l + 5},
	cubie.BL: {b + 5, l + 3},
	cubie.BR: {b + 3, r + 5},
}

var cornerColor = [cubie.NumCorners][3]cubie.Face{
	cubie.URF: {cubie.FaceU, cubie.FaceR, cubie.FaceF},
	cubie.UFL: {cubie.FaceU, cubie.FaceF, cubie.FaceL},
	cubie.ULB: {cubie.FaceU, cubie.FaceL, cubie.FaceB},
	cubie.UBR: {cubie.FaceU, cubie.FaceB, cubie.FaceR},
	cubie.DFR: {cubie.FaceD, cubie.FaceF, cubie.FaceR},
	cubie.DLF: {cubie.FaceD, cubie.FaceL, cubie.FaceF},
	cubie.DBL: {cubie.FaceD, cubie.FaceB, cubie.FaceL},
	cubie.DRB: {cubie.FaceD, cubie.FaceR, cubie.FaceB},
}

var edgeColor = [cubie.NumEdges][2]cubie.Face{
	cubie.UR: {cubie.FaceU, cubie.FaceR},
	cubie.UF: {cubie.FaceU, cubie.FaceF},
	cubie.UL: {cubie.FaceU, cubie.FaceL},
	cubie.UB: {cubie.FaceU, cubie.FaceB},
	cubie.DR: {cubie.FaceD, cubie.FaceR},
	cubie.DF: {cubie.FaceD, cubie.FaceF},
	cubie.DL: {cubie.FaceD, cubie.FaceL},
	cubie.DB: {cubie.FaceD, cubie.FaceB},
	cubie.FR: {cubie.FaceF, cubie.FaceR},
	cubie.FL: {cubie.FaceF, cubie.FaceL},
	cubie.BL: {cubie.FaceB, cubie.FaceL},
	cubie.BR: {cubie.FaceB, cubie.FaceR},
}

// Parse converts a sticker layout into a verified cube state.
//
// Errors wrapping ErrLength, ErrCenters or ErrSymbol mean the input is
// malformed. Errors wrapping ErrColorCount, ErrUnknownCubie or one of the
// cubie verification errors mean the layout is well formed but describes no
// reachable cube.
func Parse(s string) (cubie.Cube, error) {
	faces, err := stickers(s)
	if err != nil {
		return cubie.Cube{}, err
	}

	var count [cubie.NumFaces]int
	for _, fc := range faces {
		count[fc]++
	}
	for fc, n := range count {
		if n != 9 {
			return cubie.Cube{}, fmt.Errorf("%w: %s appears %d times", ErrColorCount, cubie.Face(fc), n)
		}
	}

	var c cubie.Cube
	for i := 0; i < cubie.NumCorners; i++ {
		ori := 0
		for ; ori < 3; ori++ {
			fc := faces[cornerFacelet[i][ori]]
			if fc == cubie.FaceU || fc == cubie.FaceD {
				break
			}
		}
		if ori == 3 {
			return cubie.Cube{}, fmt.Errorf("%w: corner slot %s has no U or D sticker", ErrUnknownCubie, cubie.Corner(i))
		}
		col1 := faces[cornerFacelet[i][(ori+1)%3]]
		col2 := faces[cornerFacelet[i][(ori+2)%3]]
		found := false
		for j := 0; j < cubie.NumCorners; j++ {
			if col1 == cornerColor[j][1] && col2 == cornerColor[j][2] {
				c.CP[i] = cubie.Corner(j)
				c.CO[i] = uint8(ori)
				found = true
				break
			}
		}
		if !found {
			return cubie.Cube{}, fmt.Errorf("%w: corner slot %s", ErrUnknownCubie, cubie.Corner(i))
		}
	}

	for i := 0; i < cubie.NumEdges; i++ {
		a, bb := faces[edgeFacelet[i][0]], faces[edgeFacelet[i][1]]
		found := false
		for j := 0; j < cubie.NumEdges; j++ {
			if a == edgeColor[j][0] && bb == edgeColor[j][1] {
				c.EP[i], c.EO[i] = cubie.Edge(j), 0
				found = true
				break
			}
			if a == edgeColor[j][1] && bb == edgeColor[j][0] {
				c.EP[i], c.EO[i] = cubie.Edge(j), 1
				found = true
				break
			}
		}
		if !found {
			return cubie.Cube{}, fmt.Errorf("%w: edge slot %s", ErrUnknownCubie, cubie.Edge(i))
		}
	}

	if err := c.Verify(); err != nil {
		return cubie.Cube{}, err
	}
	return c, nil
}

// stickers maps every sticker of s to the face whose center carries the same
// symbol.
func stickers(s string) ([Len]cubie.Face, error) {
	var faces [Len]cubie.Face
	if !utf8.ValidString(s) {
		return faces, fmt.Errorf("%w: invalid UTF-8", ErrSymbol)
	}
	symbols := []rune(s)
	if len(symbols) != Len {
		return faces, fmt.Errorf("%w: got %d", ErrLength, len(symbols))
	}

	lookup := make(map[rune]cubie.Face, cubie.NumFaces)
	for fc, idx := range centers {
		sym := symbols[idx]
		if _, dup := lookup[sym]; dup {
			return faces, fmt.Errorf("%w: %q repeats", ErrCenters, sym)
		}
		lookup[sym] = cubie.Face(fc)
	}

	for i, sym := range symbols {
		fc, ok := lookup[sym]
		if !ok {
			return faces, fmt.Errorf("%w: %q at position %d", ErrSymbol, sym, i)
		}
		faces[i] = fc
	}
	return faces, nil
}

// Format renders c in face letters (U, R, F, D, L, B).
func Format(c cubie.Cube) string {
	var faces [Len]cubie.Face
	for fc, idx := range centers {
		faces[idx] = cubie.Face(fc)
	}
	for i := 0; i < cubie.NumCorners; i++ {
		j, ori := c.CP[i], int(c.CO[i])
		for n := 0; n < 3; n++ {
			faces[cornerFacelet[i][(n+ori)%3]] = cornerColor[j][n]
		}
	}
	for i := 0; i < cubie.NumEdges; i++ {
		j, ori := c.EP[i], int(c.EO[i])
		for n := 0; n < 2; n++ {
			faces[edgeFacelet[i][(n+ori)%2]] = edgeColor[j][n]
		}
	}

	var sb strings.Builder
	sb.Grow(Len)
	for _, fc := range faces {
		sb.WriteString(fc.String())
	}
	return sb.String()
}

// Recolor replaces face letters in a layout produced by Format with the
// given symbols, indexed by face in U, R, F, D, L, B order.
func Recolor(layout string, symbols [cubie.NumFaces]rune) string {
	var sb strings.Builder
	sb.Grow(len(layout))
	for _, ch := range layout {
		idx := strings.IndexRune("URFDLB", ch)
		if idx < 0 {
			sb.WriteRune(ch)
			continue
		}
		sb.WriteRune(symbols[idx])
	}
	return sb.String()
}
