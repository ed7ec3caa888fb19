package performance

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/totalfit/backend/internal/telemetry/metrics"
	"github.com/totalfit/backend/internal/telemetry/tracing"
	"github.com/totalfit/backend/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=performance_test

type readingsRepo interface {
	Add(ctx context.Context, reading SensorReading) error
	List(ctx context.Context, athleteID string) ([]SensorReading, error)
}

type Handler struct {
	repo    readingsRepo
	metrics *metrics.Manager
	now     func() time.Time
}

func NewHandler(repo readingsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
		now:     time.Now,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.performance.list")
	defer span.End()

	athleteID := r.URL.Query().Get("userId")

	readings, err := handler.repo.List(ctx, athleteID)
	if err != nil {
		log.Errorf("failed to list sensor readings for [%s]: %s", athleteID, err)
		pkg.SendJsonError(w, http.StatusInternalServerError, "failed to get performance data")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, readings)
}

type syncRequest struct {
	AthleteID string   `json:"athleteId"`
	Steps     *float64 `json:"steps"`
	HeartRate *float64 `json:"heartRate"`
	Calories  *float64 `json:"calories"`
	// distance is accepted but not stored, readings have no distance field
	Distance  *float64 `json:"distance"`
	Timestamp string   `json:"timestamp"`
}

func (handler *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.performance.sync")
	defer span.End()

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("performance sync, unmarshal json params: %s", err)
		pkg.SendJsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.AthleteID == "" {
		pkg.SendJsonError(w, http.StatusBadRequest, "athleteId is required")
		return
	}

	timestamp := handler.now()
	if req.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			timestamp = parsed
		} else {
			log.Tracef("performance sync, unparseable timestamp [%s]: %s", req.Timestamp, err)
		}
	}

	reading := SensorReading{
		AthleteID: req.AthleteID,
		Steps:     valueOrZero(req.Steps),
		HeartRate: valueOrZero(req.HeartRate),
		Calories:  valueOrZero(req.Calories),
		Timestamp: timestamp,
	}

	if err := handler.repo.Add(ctx, reading); err != nil {
		log.Errorf("failed to persist sensor reading for [%s]: %s", req.AthleteID, err)
		pkg.SendJsonError(w, http.StatusInternalServerError, "failed to persist performance data")
		return
	}

	handler.metrics.CounterSensorReadings.Inc()

	pkg.SendJsonResponse(w, http.StatusCreated, map[string]bool{"ok": true})
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
