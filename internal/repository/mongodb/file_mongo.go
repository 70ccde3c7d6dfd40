package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"imageapi/internal/model"
	"imageapi/internal/repository"
)

// fileDocument is the stored shape of a record in the files collection.
type fileDocument struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

// FileMongo implements repository.FileRepository on a document collection.
// The collection handle is shared; it is safe for concurrent use.
type FileMongo struct {
	coll *mongo.Collection
}

// NewFileMongo wraps an existing collection handle.
func NewFileMongo(coll *mongo.Collection) *FileMongo {
	return &FileMongo{coll: coll}
}

var _ repository.FileRepository = (*FileMongo)(nil)

// Create inserts one document keyed by the record id.
func (r *FileMongo) Create(ctx context.Context, rec model.FileRecord) error {
	_, err := r.coll.InsertOne(ctx, fileDocument{ID: rec.ID, Name: rec.Name})
	return err
}

// FindByID returns the record with the given id. mongo.ErrNoDocuments is reported as not found.
func (r *FileMongo) FindByID(ctx context.Context, id string) (model.FileRecord, bool, error) {
	var doc fileDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.FileRecord{}, false, nil
		}
		return model.FileRecord{}, false, err
	}
	return model.FileRecord{ID: doc.ID, Name: doc.Name}, true, nil
}

// List returns every document with an empty filter and no sort.
func (r *FileMongo) List(ctx context.Context) ([]model.FileRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]model.FileRecord, 0)
	for cursor.Next(ctx) {
		var doc fileDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, model.FileRecord{ID: doc.ID, Name: doc.Name})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Ping checks the primary is reachable through the shared client.
func (r *FileMongo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
