package finance

import (
	"context"
	"net/http"

	"github.com/totalfit/backend/internal/telemetry/tracing"
	"github.com/totalfit/backend/pkg"

	log "github.com/sirupsen/logrus"
)

type financeRepo interface {
	List(ctx context.Context) ([]Transaction, error)
}

type Handler struct {
	repo financeRepo
}

func NewHandler(repo financeRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.finance.list")
	defer span.End()

	transactions, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("failed to list transactions: %s", err)
		pkg.SendJsonError(w, http.StatusInternalServerError, "failed to get transactions")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, transactions)
}
