package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

type NewMongoParams struct {
	URI            string
	DBName         string
	TracingEnabled bool
}

// NewMongoDatabase connects to the mongo deployment holding sensor readings
// and returns the client together with the configured database handle.
func NewMongoDatabase(ctx context.Context, params NewMongoParams) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().ApplyURI(params.URI)
	if params.TracingEnabled {
		opts = opts.SetMonitor(otelmongo.NewMonitor())
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, client.Database(params.DBName), nil
}
