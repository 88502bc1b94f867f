package twophase

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/twophase/internal/tables"
)

// TablesFormatVersion identifies the layout written by (*Tables).WriteTo.
// Persisted tables with another version must be rebuilt.
const TablesFormatVersion = tables.FormatVersion

// Tables holds the precomputed move and pruning tables. A Tables value is
// immutable and may be shared by any number of concurrent solves.
type Tables struct {
	t *tables.Tables
}

// BuildTables computes a fresh table set. It takes a few seconds and only
// fails if ctx is done first.
func BuildTables(ctx context.Context, logger *zap.Logger) (*Tables, error) {
	t, err := tables.Build(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build tables: %w", err)
	}
	return &Tables{t: t}, nil
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// DefaultTables returns the process-wide table set, building it on first use.
func DefaultTables() *Tables {
	defaultOnce.Do(func() {
		t, err := tables.Build(context.Background(), nil)
		if err != nil {
			panic(fmt.Sprintf("twophase: building tables without a deadline failed: %v", err))
		}
		defaultTables = &Tables{t: t}
	})
	return defaultTables
}

// ReadTables loads a table set written by (*Tables).WriteTo.
func ReadTables(r io.Reader) (*Tables, error) {
	t, err := tables.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables: %w", err)
	}
	return &Tables{t: t}, nil
}

// WriteTo writes the tables in a compressed binary form.
func (t *Tables) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := tables.Encode(cw, t.t); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
