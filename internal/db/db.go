package db

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect initializes the mongo client and ensures the indexes the service
// relies on.
func Connect(ctx context.Context) (*mongo.Database, error) {
	uri := getEnv("MONGO_URL", "mongodb://localhost:27017")
	name := getEnv("MONGO_DB", "forum")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	database := client.Database(name)
	if err := ensureIndexes(ctx, database); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return database, nil
}

func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"user": {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		"post": {
			{
				Keys:    bson.D{{Key: "title", Value: "text"}},
				Options: options.Index().SetName("title_index"),
			},
		},
		"comment": {
			{
				Keys: bson.D{{Key: "parent_id", Value: 1}},
			},
		},
		"chatroom": {
			{
				Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "guest", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		"session": {
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(0),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("collection %s: %w", collection, err)
		}
	}
	log.Println("database indexes ensured")
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
