package athletes

import (
	"context"
	"errors"
	"fmt"

	"github.com/totalfit/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, athlete Athlete) (_ *Athlete, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.athletes.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO athlete_profile
				(name, sport, team, position, date_of_birth, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		athlete.Name, athlete.Sport, athlete.Team, athlete.Position, athlete.DateOfBirth, athlete.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("athlete.id", id))

	athlete.ID = id
	return &athlete, nil
}

func (r *Repo) List(ctx context.Context) (_ []Athlete, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.athletes.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, sport, team, position, date_of_birth, created_at
			FROM athlete_profile
			ORDER BY name;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	athletes := make([]Athlete, 0)
	for rows.Next() {
		var athlete Athlete
		if err := rows.Scan(
			&athlete.ID, &athlete.Name, &athlete.Sport,
			&athlete.Team, &athlete.Position,
			&athlete.DateOfBirth, &athlete.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		athletes = append(athletes, athlete)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return athletes, nil
}
