package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/errors"
)

// MongoStore persists records in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the mongodb:// connection string.
	URI string

	// Database is the database name (default "sketchflow").
	Database string

	// Collection is the collection name (default "diagrams").
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "sketchflow"
	}
	if cfg.Collection == "" {
		cfg.Collection = "diagrams"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Put stores a document under a fresh id.
func (s *MongoStore) Put(ctx context.Context, doc diagram.Document) (Record, error) {
	rec := newRecord(doc)
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "insert diagram")
	}
	return rec, nil
}

// Get retrieves a record by id.
func (s *MongoStore) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return Record{}, errNotFound(id)
	}
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "find diagram")
	}
	return rec, nil
}

// List returns the most recent records, newest first.
func (s *MongoStore) List(ctx context.Context, limit int64) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list diagrams")
	}
	defer cursor.Close(ctx)

	var out []Record
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode diagrams")
	}
	return out, nil
}

// Delete removes a record.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete diagram")
	}
	if res.DeletedCount == 0 {
		return errNotFound(id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
