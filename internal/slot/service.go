package slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/pkg/apperror"
)

type GenerateRequest struct {
	Date        time.Time
	Start       clock.TimeOfDay
	End         clock.TimeOfDay
	IntervalMin int
}

type SlotService interface {
	// ListAvailable returns bookable slots for the date. For today,
	// slots starting within the creation cutoff are hidden since a
	// reservation attempt on them would be rejected anyway.
	ListAvailable(ctx context.Context, date time.Time) ([]*Slot, error)
	ListAll(ctx context.Context, date time.Time) ([]*Slot, error)
	Generate(ctx context.Context, req GenerateRequest) (int, error)
	Block(ctx context.Context, id string) (*Slot, error)
	Unblock(ctx context.Context, id string) (*Slot, error)
	Delete(ctx context.Context, id string) error
}

type slotService struct {
	repo         Repository
	clock        clock.Clock
	createCutoff time.Duration
}

func NewService(repo Repository, clk clock.Clock, createCutoff time.Duration) SlotService {
	return &slotService{repo: repo, clock: clk, createCutoff: createCutoff}
}

func (s *slotService) ListAvailable(ctx context.Context, date time.Time) ([]*Slot, error) {
	slots, err := s.repo.ListByDateStatus(ctx, date, StatusAvailable)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !clock.SameDate(date, now) {
		return slots, nil
	}

	earliest := now.Add(s.createCutoff)
	visible := slots[:0]
	for _, sl := range slots {
		if sl.StartAt(s.clock.Location()).After(earliest) {
			visible = append(visible, sl)
		}
	}
	return visible, nil
}

func (s *slotService) ListAll(ctx context.Context, date time.Time) ([]*Slot, error) {
	return s.repo.ListByDate(ctx, date)
}

func (s *slotService) Generate(ctx context.Context, req GenerateRequest) (int, error) {
	today := clock.Today(s.clock)
	if req.Date.Before(today) {
		return 0, ErrPastDate
	}
	if req.End <= req.Start {
		return 0, apperror.BadRequest("end time must be after start time")
	}
	if req.IntervalMin <= 0 {
		return 0, apperror.BadRequest("interval must be positive")
	}

	exists, err := s.repo.ExistsOnDate(ctx, req.Date)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDateHasSlots
	}

	intervals := BuildIntervals(req.Start, req.End, req.IntervalMin)
	if len(intervals) == 0 {
		return 0, apperror.BadRequest("no slots fit the given range")
	}

	n, err := s.repo.CreateBatch(ctx, req.Date, intervals)
	if err != nil {
		// Two concurrent generations for the same date can both pass
		// the existence check; the unique constraint settles it.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, ErrDateHasSlots
		}
		return 0, err
	}
	return n, nil
}

// Block takes an available slot out of circulation. The row is locked
// first so a concurrent reservation cannot slip in between the status
// check and the update.
func (s *slotService) Block(ctx context.Context, id string) (*Slot, error) {
	return s.setStatusLocked(ctx, id, StatusBlocked, func(cur Status) error {
		switch cur {
		case StatusAvailable:
			return nil
		case StatusBooked:
			return ErrBookedBlocked
		default:
			return apperror.Conflict("slot is already blocked")
		}
	})
}

func (s *slotService) Unblock(ctx context.Context, id string) (*Slot, error) {
	return s.setStatusLocked(ctx, id, StatusAvailable, func(cur Status) error {
		if cur != StatusBlocked {
			return apperror.Conflict("slot is not blocked")
		}
		return nil
	})
}

func (s *slotService) setStatusLocked(ctx context.Context, id string, to Status, check func(cur Status) error) (*Slot, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin slot transaction failed: %w", err)
	}
	defer tx.Rollback(ctx)

	sl, err := s.repo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := check(sl.Status); err != nil {
		return nil, err
	}
	if err := s.repo.SetStatusTx(ctx, tx, id, to); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit slot transaction failed: %w", err)
	}

	sl.Status = to
	return sl, nil
}

func (s *slotService) Delete(ctx context.Context, id string) error {
	sl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sl.Status == StatusBooked {
		return apperror.Conflict("cannot delete a booked slot")
	}
	return s.repo.Delete(ctx, id)
}
