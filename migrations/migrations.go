package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureLedgerIndexes creates the unique registration index on the member
// ledger. Partition indexes are handled by the partition registry when it
// materializes a collection.
func EnsureLedgerIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("members").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "registration", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
