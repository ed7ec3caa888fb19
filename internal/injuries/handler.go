package injuries

import (
	"context"
	"net/http"

	"github.com/totalfit/backend/internal/telemetry/tracing"
	"github.com/totalfit/backend/pkg"

	log "github.com/sirupsen/logrus"
)

type injuriesRepo interface {
	List(ctx context.Context) ([]Injury, error)
}

type Handler struct {
	repo injuriesRepo
}

func NewHandler(repo injuriesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.injuries.list")
	defer span.End()

	injuries, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("failed to list injuries: %s", err)
		pkg.SendJsonError(w, http.StatusInternalServerError, "failed to get injuries")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, injuries)
}
