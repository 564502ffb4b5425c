package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/meetscribe/internal/audio"
)

// MongoSink persists records to a MongoDB collection.
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoSink(ctx context.Context, uri, database, collection string) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Info().
		Str("database", database).
		Str("collection", collection).
		Msg("Connected to MongoDB")

	return &MongoSink{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoSink) Insert(ctx context.Context, rec *audio.Record) error {
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (s *MongoSink) Records(ctx context.Context, conversationID string) ([]audio.Record, error) {
	// BSON datetimes are millisecond resolution, so records from the same
	// chunk can share created_at; start_time breaks the tie.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "start_time", Value: 1}})

	cursor, err := s.coll.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []audio.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	return records, nil
}

func (s *MongoSink) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
