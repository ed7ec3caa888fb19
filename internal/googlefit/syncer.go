package googlefit

import (
	"context"
	"strings"
	"time"

	"github.com/totalfit/backend/internal/performance"
	"github.com/totalfit/backend/internal/telemetry/metrics"
	"github.com/totalfit/backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=syncer_mocks_test.go -package=googlefit

type fitnessAPI interface {
	Aggregate(ctx context.Context, accessToken string, start, end time.Time) (AggregateResponse, error)
}

type readingsRepo interface {
	Add(ctx context.Context, reading performance.SensorReading) error
}

// SyncResult carries the raw extracted metrics, nil when the provider
// reported no data for a metric. The stored reading maps nil to zero.
type SyncResult struct {
	Steps     *float64
	Calories  *float64
	HeartRate *float64
}

type Syncer struct {
	tokenStore TokenStore
	api        fitnessAPI
	readings   readingsRepo
	metrics    *metrics.Manager
	now        func() time.Time
}

func NewSyncer(
	tokenStore TokenStore,
	api fitnessAPI,
	readings readingsRepo,
	metricsManager *metrics.Manager,
) *Syncer {
	return &Syncer{
		tokenStore: tokenStore,
		api:        api,
		readings:   readings,
		metrics:    metricsManager,
		now:        time.Now,
	}
}

// SyncUser pulls today's aggregate from Google Fit and stores exactly one
// sensor reading for the user. The window runs from local midnight to now.
// An empty bucket list means no data and no write, not an error.
func (s *Syncer) SyncUser(ctx context.Context, userID string) (SyncResult, error) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "googlefit.syncer.syncUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("sync.user.id", userID))

	defer func(start time.Time) {
		s.metrics.HistSyncDuration.Observe(time.Since(start).Seconds())
	}(s.now())

	record, err := s.tokenStore.Get(ctx, userID)
	if err != nil {
		return SyncResult{}, err
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	aggregateResp, err := s.api.Aggregate(ctx, record.AccessToken, midnight, now)
	if err != nil {
		return SyncResult{}, err
	}

	if len(aggregateResp.Bucket) == 0 {
		log.Debugf("google fit sync for [%s]: no buckets returned, nothing to store", userID)
		return SyncResult{}, nil
	}

	bucket := aggregateResp.Bucket[0]
	result := SyncResult{
		Steps:     extractValue(bucket, DataTypeSteps),
		Calories:  extractValue(bucket, DataTypeCalories),
		HeartRate: extractValue(bucket, DataTypeHeartRate),
	}

	reading := performance.SensorReading{
		AthleteID: userID,
		Steps:     valueOrZero(result.Steps),
		Calories:  valueOrZero(result.Calories),
		HeartRate: valueOrZero(result.HeartRate),
		Timestamp: s.now(),
	}
	if err = s.readings.Add(ctx, reading); err != nil {
		return SyncResult{}, err
	}

	s.metrics.CounterSyncs.Inc()
	s.metrics.CounterSensorReadings.Inc()

	return result, nil
}

// extractValue digs out a single metric from the first matching dataset:
// first point, first value, intVal preferred over fpVal, nil when missing.
func extractValue(bucket AggregateBucket, dataTypeName string) *float64 {
	for _, dataset := range bucket.Dataset {
		if !strings.Contains(dataset.DataSourceID, dataTypeName) {
			continue
		}
		if len(dataset.Point) == 0 {
			return nil
		}
		point := dataset.Point[0]
		if len(point.Value) == 0 {
			return nil
		}
		value := point.Value[0]
		if value.IntVal != nil {
			floatVal := float64(*value.IntVal)
			return &floatVal
		}
		if value.FpVal != nil {
			fpVal := *value.FpVal
			return &fpVal
		}
		return nil
	}
	return nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
