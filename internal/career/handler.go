package career

import (
	"context"
	"net/http"

	"github.com/totalfit/backend/internal/telemetry/tracing"
	"github.com/totalfit/backend/pkg"

	log "github.com/sirupsen/logrus"
)

type careerRepo interface {
	List(ctx context.Context) ([]Milestone, error)
}

type Handler struct {
	repo careerRepo
}

func NewHandler(repo careerRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.career.list")
	defer span.End()

	milestones, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("failed to list career milestones: %s", err)
		pkg.SendJsonError(w, http.StatusInternalServerError, "failed to get career milestones")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, milestones)
}
