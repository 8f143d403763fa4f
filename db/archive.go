package db

import (
	"context"
	"fmt"
	"time"

	"currency-bot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Archive stores generated user-export files in MongoDB so operators can
// re-download past snapshots.
type Archive struct {
	client  *mongo.Client
	exports *mongo.Collection
}

// NewArchive connects to MongoDB and prepares the exports collection
func NewArchive(ctx context.Context, uri string) (*Archive, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Archive{
		client:  client,
		exports: client.Database("currencybot").Collection("exports"),
	}, nil
}

// SaveExport archives an export file and fills in its generated ID
func (a *Archive) SaveExport(ctx context.Context, export *models.Export) error {
	if export.CreatedAt.IsZero() {
		export.CreatedAt = time.Now()
	}

	res, err := a.exports.InsertOne(ctx, export)
	if err != nil {
		return err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		export.ID = id
	}
	return nil
}

// ListExports returns the most recent export records, newest first,
// without the file contents.
func (a *Archive) ListExports(ctx context.Context, limit int64) ([]models.Export, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.D{{Key: "file_data", Value: 0}})

	cursor, err := a.exports.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exports []models.Export
	if err := cursor.All(ctx, &exports); err != nil {
		return nil, err
	}

	return exports, nil
}

// GetExport loads a single archived export including the file contents
func (a *Archive) GetExport(ctx context.Context, id primitive.ObjectID) (*models.Export, error) {
	var export models.Export
	err := a.exports.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&export)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &export, nil
}

// Close disconnects from MongoDB
func (a *Archive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}
