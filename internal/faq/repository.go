package faq

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const itemColumns = "id, question, answer, order_index"

func (r *pgxRepository) Create(ctx context.Context, item *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("faq_items").
		Columns("question", "answer", "order_index").
		Values(item.Question, item.Answer, item.OrderIndex).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create faq item query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&item.ID)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(itemColumns).
		From("faq_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get faq item query failed: %w", err)
	}

	var item Item
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&item.ID, &item.Question, &item.Answer, &item.OrderIndex,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get faq item failed: %w", err)
	}
	return &item, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(itemColumns).
		From("faq_items").
		OrderBy("order_index", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list faq items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list faq items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Question, &item.Answer, &item.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan faq item failed: %w", err)
		}
		items = append(items, &item)
	}
	return items, nil
}

func (r *pgxRepository) Update(ctx context.Context, item *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("faq_items").
		Set("question", item.Question).
		Set("answer", item.Answer).
		Set("order_index", item.OrderIndex).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update faq item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update faq item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("faq_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete faq item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete faq item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
