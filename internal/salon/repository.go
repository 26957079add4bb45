package salon

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Get returns the profile row, or nil when none has been saved yet.
	Get(ctx context.Context) (*Info, error)
	// Save inserts the row on first write and updates it afterwards.
	Save(ctx context.Context, info *Info) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const infoColumns = "id, name, description, address, phone, working_hours_text, preparation_text, instagram"

func (r *pgxRepository) Get(ctx context.Context) (*Info, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(infoColumns).
		From("salon_info").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get salon info query failed: %w", err)
	}

	var info Info
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&info.ID, &info.Name, &info.Description, &info.Address,
		&info.Phone, &info.WorkingHoursText, &info.PreparationText, &info.Instagram,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get salon info failed: %w", err)
	}
	return &info, nil
}

func (r *pgxRepository) Save(ctx context.Context, info *Info) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	if info.ID == "" {
		query, args, err := psql.Insert("salon_info").
			Columns("name", "description", "address", "phone", "working_hours_text", "preparation_text", "instagram").
			Values(info.Name, info.Description, info.Address, info.Phone,
				info.WorkingHoursText, info.PreparationText, info.Instagram).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert salon info query failed: %w", err)
		}
		return r.pool.QueryRow(ctx, query, args...).Scan(&info.ID)
	}

	query, args, err := psql.Update("salon_info").
		Set("name", info.Name).
		Set("description", info.Description).
		Set("address", info.Address).
		Set("phone", info.Phone).
		Set("working_hours_text", info.WorkingHoursText).
		Set("preparation_text", info.PreparationText).
		Set("instagram", info.Instagram).
		Where(squirrel.Eq{"id": info.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update salon info query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update salon info failed: %w", err)
	}
	return nil
}
