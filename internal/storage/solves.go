package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Solve is one recorded solver run.
type Solve struct {
	SolveID      string
	CreatedAt    time.Time
	Facelets     string
	ScrambleText *string
	Solution     string
	Phase1Len    int
	Phase2Len    int
	MaxLength    int
	Nodes        int
	DurationMs   int64
}

// SolveRepository provides access to the solve history.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create stores s and returns its new ID. SolveID and CreatedAt are set by
// Create.
func (r *SolveRepository) Create(s *Solve) (string, error) {
	s.SolveID = uuid.New().String()
	s.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, created_at, facelets, scramble_text, solution,
			phase1_len, phase2_len, max_length, nodes, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.SolveID, s.CreatedAt.Format(time.RFC3339), s.Facelets, s.ScrambleText, s.Solution,
		s.Phase1Len, s.Phase2Len, s.MaxLength, s.Nodes, s.DurationMs)
	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}
	return s.SolveID, nil
}

const solveColumns = `solve_id, created_at, facelets, scramble_text, solution,
	phase1_len, phase2_len, max_length, nodes, duration_ms`

type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (*Solve, error) {
	var s Solve
	var createdAt string
	err := row.Scan(&s.SolveID, &createdAt, &s.Facelets, &s.ScrambleText, &s.Solution,
		&s.Phase1Len, &s.Phase2Len, &s.MaxLength, &s.Nodes, &s.DurationMs)
	if err != nil {
		return nil, err
	}
	s.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &s, nil
}

// Get retrieves a solve by ID, or returns ErrNotFound.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	row := r.db.QueryRow("SELECT "+solveColumns+" FROM solves WHERE solve_id = ?", solveID)
	s, err := scanSolve(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return s, nil
}

// List returns the most recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(
		"SELECT "+solveColumns+" FROM solves ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}
	return solves, rows.Err()
}

// Count returns the number of recorded solves.
func (r *SolveRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM solves").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count solves: %w", err)
	}
	return n, nil
}
