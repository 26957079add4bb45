package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowbook/salon-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	// GetActiveByWeekday returns the active template for a Monday-based
	// weekday, or ErrNotFound when none is configured.
	GetActiveByWeekday(ctx context.Context, dayOfWeek int) (*Template, error)
	List(ctx context.Context) ([]*Template, error)
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id string) error
	// ReplaceAll swaps the whole weekly schedule in one transaction.
	ReplaceAll(ctx context.Context, templates []*Template) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const templateColumns = "id, day_of_week, start_time, end_time, interval_minutes, is_active"

func scanTemplate(row pgx.Row) (*Template, error) {
	var (
		t          Template
		start, end pgtype.Time
	)
	if err := row.Scan(&t.ID, &t.DayOfWeek, &start, &end, &t.IntervalMinutes, &t.IsActive); err != nil {
		return nil, err
	}
	t.Start = db.TimeOfDay(start)
	t.End = db.TimeOfDay(end)
	return &t, nil
}

func (r *pgxRepository) Create(ctx context.Context, t *Template) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("schedule_templates").
		Columns("day_of_week", "start_time", "end_time", "interval_minutes", "is_active").
		Values(t.DayOfWeek, db.PgTime(t.Start), db.PgTime(t.End), t.IntervalMinutes, t.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create template query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("create template failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Template, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(templateColumns).
		From("schedule_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get template query failed: %w", err)
	}

	t, err := scanTemplate(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get template failed: %w", err)
	}
	return t, nil
}

func (r *pgxRepository) GetActiveByWeekday(ctx context.Context, dayOfWeek int) (*Template, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(templateColumns).
		From("schedule_templates").
		Where(squirrel.Eq{"day_of_week": dayOfWeek, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get template by weekday query failed: %w", err)
	}

	t, err := scanTemplate(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get template by weekday failed: %w", err)
	}
	return t, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Template, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(templateColumns).
		From("schedule_templates").
		OrderBy("day_of_week").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list templates query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates failed: %w", err)
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template failed: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Template) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("schedule_templates").
		Set("day_of_week", t.DayOfWeek).
		Set("start_time", db.PgTime(t.Start)).
		Set("end_time", db.PgTime(t.End)).
		Set("interval_minutes", t.IntervalMinutes).
		Set("is_active", t.IsActive).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update template query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("update template failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ReplaceAll(ctx context.Context, templates []*Template) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace templates failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM schedule_templates"); err != nil {
		return fmt.Errorf("clear templates failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	for _, t := range templates {
		query, args, err := psql.Insert("schedule_templates").
			Columns("day_of_week", "start_time", "end_time", "interval_minutes", "is_active").
			Values(t.DayOfWeek, db.PgTime(t.Start), db.PgTime(t.End), t.IntervalMinutes, t.IsActive).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build replace template query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&t.ID); err != nil {
			return fmt.Errorf("insert replacement template failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace templates failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("schedule_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete template query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete template failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
