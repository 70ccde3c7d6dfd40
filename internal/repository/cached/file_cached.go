package cached

import (
	"context"

	"github.com/sirupsen/logrus"

	"imageapi/internal/cache"
	"imageapi/internal/model"
	"imageapi/internal/repository"
)

// FileCached puts a read-through record cache in front of a FileRepository.
// Cache failures are logged and never fail the call.
type FileCached struct {
	next  repository.FileRepository
	cache cache.RecordCache
	log   logrus.FieldLogger
}

// NewFileCached wraps next with c.
func NewFileCached(next repository.FileRepository, c cache.RecordCache, log logrus.FieldLogger) *FileCached {
	return &FileCached{
		next:  next,
		cache: c,
		log:   log.WithField("component", "record_cache"),
	}
}

var _ repository.FileRepository = (*FileCached)(nil)

// Create writes through to the store and primes the cache.
func (r *FileCached) Create(ctx context.Context, rec model.FileRecord) error {
	if err := r.next.Create(ctx, rec); err != nil {
		return err
	}
	if err := r.cache.Set(ctx, rec); err != nil {
		r.log.WithError(err).WithField("file_id", rec.ID).Warn("cache set failed")
	}
	return nil
}

// FindByID serves from cache when possible. Absent records are not cached.
func (r *FileCached) FindByID(ctx context.Context, id string) (model.FileRecord, bool, error) {
	rec, found, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.WithError(err).WithField("file_id", id).Warn("cache get failed")
	} else if found {
		return rec, true, nil
	}

	rec, found, err = r.next.FindByID(ctx, id)
	if err != nil || !found {
		return rec, found, err
	}
	if err := r.cache.Set(ctx, rec); err != nil {
		r.log.WithError(err).WithField("file_id", id).Warn("cache set failed")
	}
	return rec, true, nil
}

// List always goes to the store.
func (r *FileCached) List(ctx context.Context) ([]model.FileRecord, error) {
	return r.next.List(ctx)
}

// Ping checks the store only; the cache is optional.
func (r *FileCached) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}
