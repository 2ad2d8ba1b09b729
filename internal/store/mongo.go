package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ Repository = (*Mongo)(nil)

// Mongo is a Repository backed by a MongoDB collection.
type Mongo struct {
	collection *mongo.Collection
}

// NewMongo wraps collection.
func NewMongo(collection *mongo.Collection) *Mongo {
	return &Mongo{collection: collection}
}

// ConnectMongo dials uri, pings the server and returns the client. Callers
// disconnect it on shutdown.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: ping mongo: %w", err)
	}
	return client, nil
}

func (m *Mongo) Create(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return ErrMissingID
	}
	stamp(record, time.Now().UTC())
	if _, err := m.collection.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("store: insert profile: %w", err)
	}
	return nil
}

func (m *Mongo) FindByID(ctx context.Context, id string) (*Record, error) {
	var record Record
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: find profile: %w", err)
	}
	return &record, nil
}
