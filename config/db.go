package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultDatabase = "clinic"

// ConnectDB dials MongoDB using MONGO_URI and verifies the connection with a
// ping. The server refuses to start without a reachable database.
func ConnectDB(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
		log.Println("MONGO_URI not set, using", uri)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, err
	}

	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = defaultDatabase
	}
	return client, client.Database(name), nil
}

// Disconnect closes the Mongo client, logging rather than failing on error.
func Disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Println("Error from Disconnect:", err)
	}
}
