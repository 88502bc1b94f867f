package tables

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/SeamusWaldron/twophase/internal/coord"
	"github.com/SeamusWaldron/twophase/internal/cubie"
)

// FormatVersion identifies the serialized layout. Caches keyed by an older
// version must be rebuilt.
const FormatVersion = 1

var magic = [4]byte{'T', 'P', 'H', 'T'}

// ErrCorrupt is returned by Decode for input that is not a table set written
// by Encode at FormatVersion.
var ErrCorrupt = errors.New("tables: corrupt table data")

// Encode writes t to w as a zstd-compressed little-endian stream.
func Encode(w io.Writer, t *Tables) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create compressor: %w", err)
	}
	bw := bufio.NewWriter(zw)

	if err := writeAll(bw, t); err != nil {
		zw.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		zw.Close()
		return fmt.Errorf("failed to flush tables: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish compressed stream: %w", err)
	}
	return nil
}

func writeAll(w io.Writer, t *Tables) error {
	if _, err := w.Write(magic[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, mt := range t.moves {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(mt.data))); err != nil {
			return fmt.Errorf("failed to write %s table: %w", mt.kind, err)
		}
		if err := binary.Write(w, binary.LittleEndian, mt.data); err != nil {
			return fmt.Errorf("failed to write %s table: %w", mt.kind, err)
		}
	}
	for _, pt := range t.Pruning() {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(pt.data))); err != nil {
			return fmt.Errorf("failed to write %s table: %w", pt.name, err)
		}
		if _, err := w.Write(pt.data); err != nil {
			return fmt.Errorf("failed to write %s table: %w", pt.name, err)
		}
	}
	return nil
}

// Decode reads a table set written by Encode. Every entry is range checked,
// so a successful Decode yields tables as safe to search with as Build's.
func Decode(r io.Reader) (*Tables, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed stream: %w", err)
	}
	defer zr.Close()
	br := bufio.NewReader(zr)

	var head [4]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if head != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, head[:])
	}
	var version uint32
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrCorrupt, version, FormatVersion)
	}

	t := &Tables{}
	for k := coord.Kind(0); k < coord.NumKinds; k++ {
		data := make([]uint16, k.Size()*cubie.NumMoves)
		if err := readLen(br, len(data), k.String()); err != nil {
			return nil, err
		}
		if err := binary.Read(br, binary.LittleEndian, data); err != nil {
			return nil, fmt.Errorf("%w: %s table: %w", ErrCorrupt, k, err)
		}
		mt := &MoveTable{kind: k, data: data}
		if err := mt.check(); err != nil {
			return nil, err
		}
		t.moves[k] = mt
	}

	var pruning [len(pruneSpecs)]*PruningTable
	for i, spec := range pruneSpecs {
		a, b := t.moves[spec.a], t.moves[spec.b]
		nb := spec.b.Size()
		data := make([]uint8, spec.a.Size()*nb)
		if err := readLen(br, len(data), spec.name); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, fmt.Errorf("%w: %s table: %w", ErrCorrupt, spec.name, err)
		}
		if data[0] != 0 {
			return nil, fmt.Errorf("%w: %s table: solved pair has distance %d", ErrCorrupt, spec.name, data[0])
		}
		for j, v := range data {
			if v == unvisited {
				return nil, fmt.Errorf("%w: %s table: pair %d unvisited", ErrCorrupt, spec.name, j)
			}
		}
		pruning[i] = &PruningTable{name: spec.name, a: a, b: b, nb: nb, data: data}
	}
	t.TwistSlice, t.FlipSlice, t.CornerSlice, t.EdgeSlice = pruning[0], pruning[1], pruning[2], pruning[3]

	if _, err := br.ReadByte(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrCorrupt)
	}
	return t, nil
}

func readLen(r io.Reader, want int, name string) error {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return fmt.Errorf("%w: %s length: %w", ErrCorrupt, name, err)
	}
	if int(n) != want {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrCorrupt, name, n, want)
	}
	return nil
}

// check verifies that every defined entry is in range and that exactly the
// moves the coordinate is defined under have entries.
func (t *MoveTable) check() error {
	size := t.kind.Size()
	defined := [cubie.NumMoves]bool{}
	for _, m := range movesFor(t.kind) {
		defined[m] = true
	}
	for c := 0; c < size; c++ {
		for m := 0; m < cubie.NumMoves; m++ {
			v := t.data[c*cubie.NumMoves+m]
			switch {
			case !defined[m] && v != noEntry:
				return fmt.Errorf("%w: %s table defines move %s", ErrCorrupt, t.kind, cubie.Move(m))
			case defined[m] && int(v) >= size:
				return fmt.Errorf("%w: %s table entry %d out of range", ErrCorrupt, t.kind, v)
			}
		}
	}
	return nil
}
