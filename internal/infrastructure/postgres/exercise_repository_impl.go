package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/exercise-tracker/internal/domain/repository"
)

type ExerciseRepository struct {
	pool *pgxpool.Pool
}

func NewExerciseRepository(pool *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{pool: pool}
}

func (r *ExerciseRepository) Create(ctx context.Context, e *entity.Exercise) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO exercises (user_id, description, duration, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, e.UserID, e.Description, e.Duration, e.Date)

	if err := row.Scan(&e.ID); err != nil {
		return fmt.Errorf("insert exercise: %w", err)
	}
	return nil
}

func (r *ExerciseRepository) Find(ctx context.Context, q repository.ExerciseQuery) ([]entity.Exercise, error) {
	if !validUUID(q.UserID) {
		return []entity.Exercise{}, nil
	}
	sql, args := buildFindSQL(q)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Exercise, error) {
		var e entity.Exercise
		err := row.Scan(&e.ID, &e.UserID, &e.Description, &e.Duration, &e.Date)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan exercises: %w", err)
	}
	if out == nil {
		out = []entity.Exercise{}
	}
	return out, nil
}

func buildFindSQL(q repository.ExerciseQuery) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT id, user_id::text, description, duration, date FROM exercises WHERE user_id = $1`)
	args := []any{q.UserID}
	if q.From != nil {
		args = append(args, *q.From)
		fmt.Fprintf(&b, " AND date >= $%d", len(args))
	}
	if q.To != nil {
		args = append(args, *q.To)
		fmt.Fprintf(&b, " AND date <= $%d", len(args))
	}
	b.WriteString(" ORDER BY date, id")
	if q.Limit >= 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}

var _ repository.ExerciseRepository = (*ExerciseRepository)(nil)
