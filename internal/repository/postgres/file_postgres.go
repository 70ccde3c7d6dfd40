package postgres

import (
	"context"
	"database/sql"
	"errors"

	"imageapi/internal/model"
	"imageapi/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

// Create inserts a new file row.
func (r *FilePostgres) Create(ctx context.Context, rec model.FileRecord) error {
	const q = `INSERT INTO files (id, name) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, q, rec.ID, rec.Name)
	return err
}

// FindByID fetches a single row by id. sql.ErrNoRows is reported as not found.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (model.FileRecord, bool, error) {
	const q = `SELECT id, name FROM files WHERE id = $1`
	var rec model.FileRecord
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&rec.ID, &rec.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FileRecord{}, false, nil
		}
		return model.FileRecord{}, false, err
	}
	return rec, true, nil
}

// List returns all rows without an explicit order.
func (r *FilePostgres) List(ctx context.Context) ([]model.FileRecord, error) {
	const q = `SELECT id, name FROM files`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FileRecord, 0)
	for rows.Next() {
		var rec model.FileRecord
		if err := rows.Scan(&rec.ID, &rec.Name); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Ping checks database connectivity.
func (r *FilePostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
