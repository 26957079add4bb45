package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowbook/salon-backend/internal/db"
	"github.com/glowbook/salon-backend/internal/slot"
)

// Filter narrows admin booking listings.
type Filter struct {
	Date     *time.Time
	Status   Status
	Page     int
	PageSize int
}

// Row is the un-joined bookings table record, used inside locking
// transactions where the joined view is not needed.
type Row struct {
	ID       string
	ClientID string
	SlotID   string
	Status   Status
}

type Repository interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	// CreateTx inserts the booking inside tx. A unique violation on
	// slot_id means another booking holds the slot.
	CreateTx(ctx context.Context, tx pgx.Tx, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// GetForUpdateTx locks the bookings row so its status cannot change
	// under a concurrent cancel or reschedule.
	GetForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (*Row, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id string, status Status) error
	// ReassignSlotTx points the booking at a new slot and re-arms the
	// reminder flag.
	ReassignSlotTx(ctx context.Context, tx pgx.Tx, id, slotID string) error

	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	ListByClient(ctx context.Context, clientID string) ([]*Booking, error)

	ListConfirmedUnreminded(ctx context.Context) ([]*Booking, error)
	// ListConfirmedByDate returns confirmed non-admin bookings for the
	// date ordered by slot start, for the morning digest.
	ListConfirmedByDate(ctx context.Context, date time.Time) ([]*Booking, error)
	ListConfirmedInRange(ctx context.Context, from, to time.Time) ([]*Booking, error)
	ListCompletedFeedbackPending(ctx context.Context, from, to time.Time) ([]*Booking, error)

	MarkReminded(ctx context.Context, ids []string) error
	MarkFeedbackSent(ctx context.Context, id string) error
	// CompleteBatch flips the bookings to completed, skipping any that
	// are no longer confirmed.
	CompleteBatch(ctx context.Context, ids []string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `b.id, b.client_id, b.service_id, b.slot_id, b.status,
	b.remind_before_hours, b.reminded, b.feedback_sent, b.created_at,
	u.telegram_id, u.first_name, u.username, u.phone,
	sv.name, sv.duration_minutes, sv.price,
	sl.date, sl.start_time, sl.end_time, sl.status`

func joined(psql squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return psql.Select(bookingColumns).
		From("bookings b").
		Join("users u ON u.id = b.client_id").
		Join("services sv ON sv.id = b.service_id").
		Join("slots sl ON sl.id = b.slot_id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var (
		b          Booking
		start, end pgtype.Time
	)
	if err := row.Scan(
		&b.ID, &b.ClientID, &b.ServiceID, &b.SlotID, &b.Status,
		&b.RemindBeforeHours, &b.Reminded, &b.FeedbackSent, &b.CreatedAt,
		&b.ClientTelegramID, &b.ClientFirstName, &b.ClientUsername, &b.ClientPhone,
		&b.ServiceName, &b.ServiceDurationMin, &b.ServicePrice,
		&b.SlotDate, &start, &end, &b.SlotStatus,
	); err != nil {
		return nil, err
	}
	b.SlotStart = db.TimeOfDay(start)
	b.SlotEnd = db.TimeOfDay(end)
	return &b, nil
}

func (r *pgxRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *pgxRepository) CreateTx(ctx context.Context, tx pgx.Tx, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("bookings").
		Columns("client_id", "service_id", "slot_id", "status", "remind_before_hours").
		Values(b.ClientID, b.ServiceID, b.SlotID, b.Status, b.RemindBeforeHours).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return slot.ErrNotAvailable
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := joined(psql).Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (*Row, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "client_id", "slot_id", "status").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock booking query failed: %w", err)
	}

	var row Row
	if err := tx.QueryRow(ctx, query, args...).Scan(&row.ID, &row.ClientID, &row.SlotID, &row.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock booking failed: %w", err)
	}
	return &row, nil
}

func (r *pgxRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ReassignSlotTx(ctx context.Context, tx pgx.Tx, id, slotID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("bookings").
		Set("slot_id", slotID).
		Set("reminded", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build reassign booking slot query failed: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return slot.ErrNotAvailable
		}
		return fmt.Errorf("reassign booking slot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	where := squirrel.And{}
	if filter.Date != nil {
		where = append(where, squirrel.Eq{"sl.date": *filter.Date})
	}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"b.status": filter.Status})
	}

	countQuery := psql.Select("COUNT(*)").
		From("bookings b").
		Join("slots sl ON sl.id = b.slot_id")
	listQuery := joined(psql)
	if len(where) > 0 {
		countQuery = countQuery.Where(where)
		listQuery = listQuery.Where(where)
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count bookings query failed: %w", err)
	}
	var total int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings failed: %w", err)
	}

	listQuery = listQuery.OrderBy("sl.date DESC", "sl.start_time DESC")
	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		listQuery = listQuery.Limit(uint64(filter.PageSize)).Offset(uint64(offset))
	}

	bookings, err := r.queryMany(ctx, listQuery)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *pgxRepository) ListByClient(ctx context.Context, clientID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return r.queryMany(ctx, joined(psql).
		Where(squirrel.Eq{"b.client_id": clientID}).
		OrderBy("sl.date DESC", "sl.start_time DESC"))
}

func (r *pgxRepository) ListConfirmedUnreminded(ctx context.Context) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return r.queryMany(ctx, joined(psql).
		Where(squirrel.Eq{"b.status": StatusConfirmed, "b.reminded": false}))
}

func (r *pgxRepository) ListConfirmedByDate(ctx context.Context, date time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return r.queryMany(ctx, joined(psql).
		Where(squirrel.Eq{"b.status": StatusConfirmed, "sl.date": date}).
		Where(squirrel.NotEq{"u.role": "admin"}).
		OrderBy("sl.start_time"))
}

func (r *pgxRepository) ListConfirmedInRange(ctx context.Context, from, to time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return r.queryMany(ctx, joined(psql).
		Where(squirrel.Eq{"b.status": StatusConfirmed}).
		Where(squirrel.GtOrEq{"sl.date": from}).
		Where(squirrel.LtOrEq{"sl.date": to}))
}

func (r *pgxRepository) ListCompletedFeedbackPending(ctx context.Context, from, to time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return r.queryMany(ctx, joined(psql).
		Where(squirrel.Eq{"b.status": StatusCompleted, "b.feedback_sent": false}).
		Where(squirrel.GtOrEq{"sl.date": from}).
		Where(squirrel.LtOrEq{"sl.date": to}))
}

func (r *pgxRepository) queryMany(ctx context.Context, builder squirrel.SelectBuilder) ([]*Booking, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *pgxRepository) MarkReminded(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("bookings").
		Set("reminded", true).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark reminded query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("mark reminded failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) MarkFeedbackSent(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("bookings").
		Set("feedback_sent", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark feedback sent query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("mark feedback sent failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) CompleteBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("bookings").
		Set("status", StatusCompleted).
		Where(squirrel.Eq{"id": ids, "status": StatusConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build complete bookings query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("complete bookings failed: %w", err)
	}
	return nil
}
