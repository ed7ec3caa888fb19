package injuries

import (
	"context"
	"fmt"
	"time"

	"github.com/totalfit/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Injury struct {
	ID          int        `json:"id"`
	AthleteID   int        `json:"athleteId"`
	Title       string     `json:"title"`
	Note        string     `json:"note,omitempty"`
	InjuredAt   time.Time  `json:"injuredAt"`
	RecoveredAt *time.Time `json:"recoveredAt,omitempty"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context) (_ []Injury, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.injuries.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, athlete_id, title, note, injured_at, recovered_at
			FROM injury
			ORDER BY injured_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	injuries := make([]Injury, 0)
	for rows.Next() {
		var injury Injury
		if err := rows.Scan(
			&injury.ID, &injury.AthleteID, &injury.Title,
			&injury.Note, &injury.InjuredAt, &injury.RecoveredAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		injuries = append(injuries, injury)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return injuries, nil
}
