package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"miigate/internal/mii/models"
	"miigate/internal/sentinel"
)

// Postgres persists Mii records on the users table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// GetMii returns the record for a username.
func (s *Postgres) GetMii(ctx context.Context, username string) (models.MiiRecord, error) {
	query := `
		SELECT mii_type, mii_data, COALESCE(cmoc_entry_no, '')
		FROM users
		WHERE username = $1
	`
	var record models.MiiRecord
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&record.MiiType,
		&record.MiiData,
		&record.CMOCEntryNo,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MiiRecord{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.MiiRecord{}, fmt.Errorf("query mii record: %w", err)
	}
	return record, nil
}

// SetMii replaces the whole record for a username. The cmoc entry number is
// cleared for non-cmoc types so a stale number never survives a type switch.
func (s *Postgres) SetMii(ctx context.Context, username string, record models.MiiRecord) error {
	query := `
		UPDATE users
		SET mii_type = $2, mii_data = $3, cmoc_entry_no = NULLIF($4, '')
		WHERE username = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		username,
		string(record.MiiType),
		record.MiiData,
		record.CMOCEntryNo,
	)
	if err != nil {
		return fmt.Errorf("update mii record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update mii record: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
