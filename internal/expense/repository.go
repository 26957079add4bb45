package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id string) (*Expense, error)
	// ListByMonth returns expenses for one month key, newest first.
	ListByMonth(ctx context.Context, month string) ([]*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const expenseColumns = "id, name, amount, month, created_at"

func (r *pgxRepository) Create(ctx context.Context, e *Expense) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("expenses").
		Columns("name", "amount", "month").
		Values(e.Name, e.Amount, e.Month).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create expense query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Expense, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(expenseColumns).
		From("expenses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get expense query failed: %w", err)
	}

	var e Expense
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.Name, &e.Amount, &e.Month, &e.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get expense failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) ListByMonth(ctx context.Context, month string) ([]*Expense, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(expenseColumns).
		From("expenses").
		Where(squirrel.Eq{"month": month}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list expenses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses failed: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &e.Month, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense failed: %w", err)
		}
		expenses = append(expenses, &e)
	}
	return expenses, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Expense) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("expenses").
		Set("name", e.Name).
		Set("amount", e.Amount).
		Set("month", e.Month).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update expense query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update expense failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("expenses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete expense query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete expense failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
