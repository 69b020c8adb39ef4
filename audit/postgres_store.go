package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store backed by PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed Store. The evaluations
// table must exist; run cmd/migrate first.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts a new record.
func (s *PostgresStore) Save(rec *Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record ID is required")
	}

	rec.CreatedAt = time.Now()
	_, err := s.db.Exec(`
		INSERT INTO evaluations (id, facility_name, verdict, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.FacilityName, rec.Verdict, []byte(rec.Result), rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert evaluation record: %w", err)
	}

	return nil
}

// Get retrieves a record by ID.
func (s *PostgresStore) Get(id string) (*Record, error) {
	var rec Record
	err := s.db.QueryRow(`
		SELECT id, facility_name, verdict, result, created_at
		FROM evaluations
		WHERE id = $1
	`, id).Scan(
		&rec.ID,
		&rec.FacilityName,
		&rec.Verdict,
		&rec.Result,
		&rec.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("record %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation record: %w", err)
	}

	return &rec, nil
}

// ListRecent returns up to limit records, newest first.
func (s *PostgresStore) ListRecent(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, facility_name, verdict, result, created_at
		FROM evaluations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluation records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.FacilityName, &rec.Verdict,
			&rec.Result, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation record: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluation records: %w", err)
	}

	return records, nil
}
