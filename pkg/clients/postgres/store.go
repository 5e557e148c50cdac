package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/tapright/waitlist-api/pkg/models"
)

const uniqueViolation pq.ErrorCode = "23505"

// Store writes signups straight to the Postgres table behind Supabase
type Store struct {
	db    *sql.DB
	table string
}

// Open connects to Postgres using the lib/pq driver
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return db, nil
}

func NewStore(db *sql.DB, table string) *Store {
	return &Store{db: db, table: table}
}

func (s *Store) Configured() bool {
	return s.db != nil && s.table != ""
}

func (s *Store) InsertSignup(ctx context.Context, record models.SignupRecord) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (full_name, email, spend_focus, notes, opt_in, joined_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		pq.QuoteIdentifier(s.table),
	)
	_, err := s.db.ExecContext(ctx, query,
		record.FullName, record.Email, record.SpendFocus, record.Notes, record.OptIn, record.JoinedAt)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %w", models.ErrDuplicateSignup, err)
	}
	return fmt.Errorf("error inserting signup: %w", err)
}

func (s *Store) CountSignups(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, pq.QuoteIdentifier(s.table))

	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting signups: %w", err)
	}
	return n, nil
}
