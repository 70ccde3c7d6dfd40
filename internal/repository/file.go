package repository

import (
	"context"

	"imageapi/internal/model"
)

// FileRepository defines persistence for file metadata records.
// Implementations hold persistence only, no business logic.
type FileRepository interface {
	// Create inserts a new record. Records are never updated afterwards.
	Create(ctx context.Context, rec model.FileRecord) error

	// FindByID looks up a record. A missing record is reported as found == false
	// with a nil error; err is reserved for store failures.
	FindByID(ctx context.Context, id string) (rec model.FileRecord, found bool, err error)

	// List returns every record in store-native order. The slice is never nil.
	List(ctx context.Context) ([]model.FileRecord, error)

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
