package athletes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/totalfit/backend/internal/telemetry/tracing"
	"github.com/totalfit/backend/pkg"

	log "github.com/sirupsen/logrus"
)

type athletesRepo interface {
	Add(ctx context.Context, athlete Athlete) (*Athlete, error)
	List(ctx context.Context) ([]Athlete, error)
}

type Handler struct {
	repo athletesRepo
}

func NewHandler(repo athletesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.athletes.list")
	defer span.End()

	athletes, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("failed to list athletes: %s", err)
		pkg.SendJsonError(w, http.StatusInternalServerError, "failed to get athletes")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, athletes)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.athletes.add")
	defer span.End()

	var athlete Athlete
	if err := json.NewDecoder(r.Body).Decode(&athlete); err != nil {
		log.Tracef("new athlete, unmarshal json params: %s", err)
		pkg.SendJsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if athlete.Name == "" || athlete.Sport == "" {
		pkg.SendJsonError(w, http.StatusBadRequest, "athlete name or sport empty")
		return
	}

	if athlete.CreatedAt.IsZero() {
		athlete.CreatedAt = time.Now()
	}

	addedAthlete, err := handler.repo.Add(ctx, athlete)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			pkg.SendJsonError(w, http.StatusConflict, "athlete already exists")
			return
		}
		log.Errorf("failed to add new athlete [%s]: %s", athlete.Name, err)
		pkg.SendJsonError(w, http.StatusInternalServerError, "failed to add athlete")
		return
	}

	pkg.SendJsonResponse(w, http.StatusCreated, addedAthlete)
}
