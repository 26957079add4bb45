package slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowbook/salon-backend/internal/db"
)

type Repository interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	GetByID(ctx context.Context, id string) (*Slot, error)
	// GetForUpdate reads the slot under FOR UPDATE inside tx. The row
	// stays locked until the transaction commits or rolls back, so the
	// caller's status check and mutation are race-free.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Slot, error)
	SetStatusTx(ctx context.Context, tx pgx.Tx, id string, status Status) error
	// CreateBatch inserts one row per interval on the given date.
	CreateBatch(ctx context.Context, date time.Time, intervals []Interval) (int, error)
	ExistsOnDate(ctx context.Context, date time.Time) (bool, error)
	ListByDate(ctx context.Context, date time.Time) ([]*Slot, error)
	ListByDateStatus(ctx context.Context, date time.Time, status Status) ([]*Slot, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const slotColumns = "id, date, start_time, end_time, status"

func (r *pgxRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func scanSlot(row pgx.Row) (*Slot, error) {
	var (
		s          Slot
		start, end pgtype.Time
	)
	if err := row.Scan(&s.ID, &s.Date, &start, &end, &s.Status); err != nil {
		return nil, err
	}
	s.Start = db.TimeOfDay(start)
	s.End = db.TimeOfDay(end)
	return &s, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get slot query failed: %w", err)
	}

	s, err := scanSlot(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slot failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock slot query failed: %w", err)
	}

	s, err := scanSlot(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock slot failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) SetStatusTx(ctx context.Context, tx pgx.Tx, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("slots").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set slot status query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set slot status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreateBatch(ctx context.Context, date time.Time, intervals []Interval) (int, error) {
	if len(intervals) == 0 {
		return 0, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Insert("slots").Columns("id", "date", "start_time", "end_time", "status")
	for _, iv := range intervals {
		builder = builder.Values(uuid.NewString(), date, db.PgTime(iv.Start), db.PgTime(iv.End), StatusAvailable)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build create slots query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("create slots failed: %w", err)
	}
	return int(ct.RowsAffected()), nil
}

func (r *pgxRepository) ExistsOnDate(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM slots WHERE date = $1)", date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slots on date failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ListByDate(ctx context.Context, date time.Time) ([]*Slot, error) {
	return r.list(ctx, squirrel.Eq{"date": date})
}

func (r *pgxRepository) ListByDateStatus(ctx context.Context, date time.Time, status Status) ([]*Slot, error) {
	return r.list(ctx, squirrel.Eq{"date": date, "status": status})
}

func (r *pgxRepository) list(ctx context.Context, where squirrel.Eq) ([]*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(slotColumns).
		From("slots").
		Where(where).
		OrderBy("date", "start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot failed: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
