package history

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo defaults.
const (
	DefaultDatabase   = "inscribe"
	DefaultCollection = "history"
)

// MongoStore keeps entries in a MongoDB collection, indexed by creation
// time.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig selects the server and collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

func (c MongoConfig) withDefaults() MongoConfig {
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	return c
}

// NewMongoStore connects, pings and makes sure the created_at index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	cfg = cfg.withDefaults()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Add(ctx context.Context, e Entry) (Entry, error) {
	e = prepare(e)
	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		return Entry{}, fmt.Errorf("insert: %w", err)
	}
	return e, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.find(ctx, bson.D{}, findOptions(limit))
}

func (s *MongoStore) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("find %s: %w", id, err)
	}
	return e, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]Entry, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return entries, nil
}

// findOptions sorts newest first and applies the limit.
func findOptions(limit int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}

var _ Store = (*MongoStore)(nil)
