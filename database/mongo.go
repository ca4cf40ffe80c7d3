package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the service.
const (
	Categories    = "categories"
	Products      = "products"
	Variants      = "variants"
	Orders        = "orders"
	Users         = "users"
	Banners       = "banners"
	Notifications = "notifications"
	RevokedTokens = "revoked_tokens"
)

// Connect opens a Mongo client and pings it before returning the handle.
func Connect(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client.Database(dbName), nil
}
