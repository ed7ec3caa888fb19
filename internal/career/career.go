package career

import (
	"context"
	"fmt"
	"time"

	"github.com/totalfit/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Milestone struct {
	ID        int       `json:"id"`
	AthleteID int       `json:"athleteId"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context) (_ []Milestone, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.career.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, athlete_id, title, date
			FROM career_milestone
			ORDER BY date;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	milestones := make([]Milestone, 0)
	for rows.Next() {
		var milestone Milestone
		if err := rows.Scan(
			&milestone.ID, &milestone.AthleteID,
			&milestone.Title, &milestone.Date,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		milestones = append(milestones, milestone)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return milestones, nil
}
