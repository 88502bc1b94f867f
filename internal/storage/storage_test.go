package storage

import (
	"bytes"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTemp(t)

	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
	assert.Equal(t, "test.db", filepath.Base(db.Path()))
}

func TestReopenKeepsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	require.NoError(t, err)
	_, err = NewSolveRepository(db).Create(&Solve{Facelets: "x", Solution: "R"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	n, err := NewSolveRepository(db).Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTableCache(t *testing.T) {
	cache := NewTableCache(openTemp(t))

	_, err := cache.Load(1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cache.Status(1)
	assert.ErrorIs(t, err, ErrNotFound)

	data := bytes.Repeat([]byte{0xAB, 0x01}, 1000)
	require.NoError(t, cache.Save(1, data))

	got, err := cache.Load(1)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, cache.Save(1, []byte("newer")))
	got, err = cache.Load(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("newer"), got)

	st, err := cache.Status(1)
	require.NoError(t, err)
	assert.Equal(t, 1, st.FormatVersion)
	assert.EqualValues(t, 5, st.SizeBytes)
	assert.WithinDuration(t, time.Now(), st.CreatedAt, time.Minute)
}

func TestTableCachePrune(t *testing.T) {
	cache := NewTableCache(openTemp(t))
	require.NoError(t, cache.Save(1, []byte("old")))
	require.NoError(t, cache.Save(2, []byte("new")))

	n, err := cache.Prune(2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = cache.Load(1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cache.Load(2)
	assert.NoError(t, err)
}

func TestSolveRepository(t *testing.T) {
	repo := NewSolveRepository(openTemp(t))

	scramble := "R U"
	s := &Solve{
		Facelets:     "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB",
		ScrambleText: &scramble,
		Solution:     "U' R'",
		Phase1Len:    2,
		Phase2Len:    0,
		MaxLength:    23,
		Nodes:        12,
		DurationMs:   3,
	}
	id, err := repo.Create(s)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, s.SolveID)

	got, err := repo.Get(id)
	require.NoError(t, err)
	assert.True(t, s.CreatedAt.Equal(got.CreatedAt))
	got.CreatedAt = s.CreatedAt
	assert.Equal(t, s, got)

	_, err = repo.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSolveRepositoryList(t *testing.T) {
	repo := NewSolveRepository(openTemp(t))

	var ids []string
	for _, sol := range []string{"R", "U", "F"} {
		id, err := repo.Create(&Solve{Facelets: "x", Solution: sol})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	list, err := repo.List(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].SolveID)
	assert.Equal(t, ids[1], list[1].SolveID)
	assert.Nil(t, list[0].ScrambleText)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestTransactionRollback(t *testing.T) {
	db := openTemp(t)
	cache := NewTableCache(db)

	err := db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO table_cache (format_version, data, size_bytes, created_at)
			VALUES (9, x'00', 1, '2024-01-01T00:00:00Z')`); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	_, err = cache.Load(9)
	assert.ErrorIs(t, err, ErrNotFound)
}
