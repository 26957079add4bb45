package template

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-backend/internal/clock"
)

type fakeRepo struct {
	Repository

	byDay map[int]*Template
	next  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byDay: make(map[int]*Template)}
}

func (r *fakeRepo) Create(ctx context.Context, t *Template) error {
	if _, ok := r.byDay[t.DayOfWeek]; ok {
		return ErrDuplicate
	}
	r.next++
	t.ID = "tpl-" + strconv.Itoa(r.next)
	r.byDay[t.DayOfWeek] = t
	return nil
}

func (r *fakeRepo) ReplaceAll(ctx context.Context, templates []*Template) error {
	r.byDay = make(map[int]*Template)
	for _, t := range templates {
		r.next++
		t.ID = "tpl-" + strconv.Itoa(r.next)
		r.byDay[t.DayOfWeek] = t
	}
	return nil
}

func mustTime(t *testing.T, s string) clock.TimeOfDay {
	t.Helper()
	tod, err := clock.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestCreateTemplate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	tpl, err := svc.Create(context.Background(), CreateRequest{
		DayOfWeek:       0,
		Start:           mustTime(t, "09:00"),
		End:             mustTime(t, "18:00"),
		IntervalMinutes: 30,
		IsActive:        true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)

	_, err = svc.Create(context.Background(), CreateRequest{
		DayOfWeek:       0,
		Start:           mustTime(t, "10:00"),
		End:             mustTime(t, "16:00"),
		IntervalMinutes: 30,
		IsActive:        true,
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateTemplateRejectsInvalidRule(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateRequest{
		DayOfWeek:       1,
		Start:           mustTime(t, "18:00"),
		End:             mustTime(t, "09:00"),
		IntervalMinutes: 30,
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{
		DayOfWeek:       7,
		Start:           mustTime(t, "09:00"),
		End:             mustTime(t, "18:00"),
		IntervalMinutes: 30,
	})
	assert.Error(t, err)
}

func TestReplaceSchedule(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateRequest{
		DayOfWeek:       3,
		Start:           mustTime(t, "09:00"),
		End:             mustTime(t, "18:00"),
		IntervalMinutes: 30,
		IsActive:        true,
	})
	require.NoError(t, err)

	templates, err := svc.Replace(context.Background(), []CreateRequest{
		{DayOfWeek: 0, Start: mustTime(t, "10:00"), End: mustTime(t, "19:00"), IntervalMinutes: 20, IsActive: true},
		{DayOfWeek: 1, Start: mustTime(t, "10:00"), End: mustTime(t, "19:00"), IntervalMinutes: 20, IsActive: true},
	})
	require.NoError(t, err)
	require.Len(t, templates, 2)

	// the old Thursday rule is gone
	assert.Nil(t, repo.byDay[3])
	assert.NotNil(t, repo.byDay[0])
	assert.NotNil(t, repo.byDay[1])
}

func TestReplaceRejectsDuplicateWeekday(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Replace(context.Background(), []CreateRequest{
		{DayOfWeek: 2, Start: mustTime(t, "09:00"), End: mustTime(t, "18:00"), IntervalMinutes: 30},
		{DayOfWeek: 2, Start: mustTime(t, "10:00"), End: mustTime(t, "16:00"), IntervalMinutes: 30},
	})
	assert.Error(t, err)
}
