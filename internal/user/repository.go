package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
	// Upsert inserts the user or refreshes the Telegram-sourced fields
	// (username, first name, role) of an existing row.
	Upsert(ctx context.Context, u *User) error
	UpdateProfile(ctx context.Context, u *User) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const userColumns = "id, telegram_id, username, first_name, phone, role, consent_given, consent_date, created_at"

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.Phone,
		&u.Role, &u.ConsentGiven, &u.ConsentDate, &u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user failed: %w", err)
	}
	return &u, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*User, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query failed: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user by telegram id query failed: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) Upsert(ctx context.Context, u *User) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("users").
		Columns("telegram_id", "username", "first_name", "role").
		Values(u.TelegramID, u.Username, u.FirstName, u.Role).
		Suffix(`ON CONFLICT (telegram_id) DO UPDATE
			SET username = EXCLUDED.username,
			    first_name = EXCLUDED.first_name,
			    role = EXCLUDED.role`).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert user query failed: %w", err)
	}

	saved, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return err
	}
	*u = *saved
	return nil
}

func (r *pgxRepository) UpdateProfile(ctx context.Context, u *User) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("users").
		Set("phone", u.Phone).
		Set("consent_given", u.ConsentGiven).
		Set("consent_date", u.ConsentDate).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update profile query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update profile failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
