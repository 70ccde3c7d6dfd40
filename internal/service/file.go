package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"imageapi/internal/model"
	"imageapi/internal/repository"
	"imageapi/internal/storage"
)

var (
	ErrFileRequired = errors.New("file is required")
	ErrNotImage     = errors.New("file is not an image")
	ErrIDRequired   = errors.New("id is required")
	ErrNotFound     = errors.New("file not found")
	ErrBlobMissing  = errors.New("file content missing")
)

// DefaultContentType is declared for stored files whose extension is not a known image type.
const DefaultContentType = "image/jpeg"

var tracer = otel.Tracer("imageapi/internal/service")

// FileContent is an opened file ready for streaming. The caller closes Body.
type FileContent struct {
	Record      model.FileRecord
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// FileService defines the use cases for handling image files.
type FileService interface {
	// Upload writes the bytes to blob storage, then inserts the metadata record.
	// The stored blob name is the new id plus the original extension.
	Upload(ctx context.Context, in UploadInput) (*model.FileRecord, error)

	// List returns every record.
	List(ctx context.Context) ([]model.FileRecord, error)

	// Open looks up a record and opens its blob.
	Open(ctx context.Context, id string) (*FileContent, error)
}

type fileService struct {
	store storage.Storage
	repo  repository.FileRepository
	log   logrus.FieldLogger
	newID func() string
}

// NewFileService constructs a new FileService.
func NewFileService(store storage.Storage, repo repository.FileRepository, log logrus.FieldLogger) FileService {
	return &fileService{
		store: store,
		repo:  repo,
		log:   log.WithField("component", "file_service"),
		newID: uuid.NewString,
	}
}

func (s *fileService) Upload(ctx context.Context, in UploadInput) (_ *model.FileRecord, err error) {
	if !in.valid() {
		return nil, ErrFileRequired
	}

	rec := model.FileRecord{ID: s.newID(), Name: in.filename}
	key := rec.StoredName()

	ctx, span := tracer.Start(ctx, "FileService.Upload", trace.WithAttributes(
		attribute.String("file.id", rec.ID),
		attribute.String("file.key", key),
	))
	defer func() { endSpan(span, err) }()

	// Blob first: a record must never be visible before its bytes are.
	if _, err := s.store.Put(ctx, key, in.r, storage.PutObjectOptions{
		Size:        in.size,
		ContentType: in.contentType,
		Metadata:    map[string]string{"original-filename": in.filename},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.WithFields(logrus.Fields{
			"event":   "orphaned_blob",
			"file_id": rec.ID,
			"key":     key,
		}).WithError(err).Warn("metadata insert failed after blob write")
		return nil, fmt.Errorf("save metadata: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"event":   "file_uploaded",
		"file_id": rec.ID,
		"key":     key,
	}).Info("file uploaded")
	return &rec, nil
}

func (s *fileService) List(ctx context.Context) (_ []model.FileRecord, err error) {
	ctx, span := tracer.Start(ctx, "FileService.List")
	defer func() { endSpan(span, err) }()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("file.count", len(items)))
	return items, nil
}

func (s *fileService) Open(ctx context.Context, id string) (_ *FileContent, err error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	ctx, span := tracer.Start(ctx, "FileService.Open", trace.WithAttributes(attribute.String("file.id", id)))
	defer func() { endSpan(span, err) }()

	rec, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	key := rec.StoredName()
	body, info, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			s.log.WithFields(logrus.Fields{
				"event":   "blob_missing",
				"file_id": rec.ID,
				"key":     key,
			}).Error("metadata present but blob missing")
			return nil, fmt.Errorf("%w: %s", ErrBlobMissing, key)
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}

	return &FileContent{
		Record:      rec,
		Body:        body,
		ContentType: contentTypeFor(rec.Name),
		Size:        info.Size,
	}, nil
}

// contentTypeFor maps the stored name's extension to an image type,
// falling back to DefaultContentType.
func contentTypeFor(name string) string {
	ext := model.Extension(name)
	if ext == "" {
		return DefaultContentType
	}
	ct := mime.TypeByExtension("." + strings.ToLower(ext))
	if mt, _, err := mime.ParseMediaType(ct); err == nil && strings.HasPrefix(mt, "image/") {
		return ct
	}
	return DefaultContentType
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
