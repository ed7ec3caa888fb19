package performance

import (
	"context"
	"fmt"

	"github.com/totalfit/backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
)

const (
	readingsCollection = "sensor_readings"

	// listings are capped, clients page through history via the dashboard
	listLimit = 100
)

type Repo struct {
	coll *mongo.Collection
}

func NewRepo(ctx context.Context, mongoDB *mongo.Database) (*Repo, error) {
	coll := mongoDB.Collection(readingsCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "athleteId", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: 1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("create sensor readings indexes: %w", err)
	}

	log.Debugf("performance repo connected to collection: %s", readingsCollection)

	return &Repo{coll: coll}, nil
}

func (r *Repo) Add(ctx context.Context, reading SensorReading) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "performance.repo.add")
	defer span.End()

	if _, err := r.coll.InsertOne(ctx, reading); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("insert reading: %s", err))
		return fmt.Errorf("insert sensor reading: %w", err)
	}

	return nil
}

// List returns up to 100 readings, newest first. An empty athleteID returns
// readings across all athletes.
func (r *Repo) List(ctx context.Context, athleteID string) ([]SensorReading, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "performance.repo.list")
	defer span.End()

	filter := bson.M{}
	if athleteID != "" {
		filter["athleteId"] = athleteID
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(listLimit)

	cursor, err := r.coll.Find(ctx, filter, findOptions)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("find readings: %s", err))
		return nil, fmt.Errorf("find sensor readings: %w", err)
	}
	defer cursor.Close(ctx)

	readings := make([]SensorReading, 0)
	if err := cursor.All(ctx, &readings); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("decode readings: %s", err))
		return nil, fmt.Errorf("decode sensor readings: %w", err)
	}

	return readings, nil
}
