package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	doctorRepo "github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/doctor"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/ptr"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

type fakeDoctorRepo struct {
	doctors map[int64]*domain.Doctor
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id int64) (*domain.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	return d, nil
}

type fakeScheduleService struct {
	resolved    *domain.ResolvedShifts
	slotMinutes int
}

func (f *fakeScheduleService) ResolveShifts(_ context.Context, _ int64, _ time.Time) (*domain.ResolvedShifts, error) {
	return f.resolved, nil
}

func (f *fakeScheduleService) SlotMinutes(_ context.Context, _ *domain.Doctor, _ time.Time) (int, error) {
	return f.slotMinutes, nil
}

type fakeAppointmentRepo struct {
	booked []types.TimeString
}

func (f *fakeAppointmentRepo) GetBookedTimes(_ context.Context, _ int64, _ time.Time, _ []domain.AppointmentStatus) ([]types.TimeString, error) {
	return f.booked, nil
}

type fakeCache struct {
	entries map[string][]string
	getErr  error
	sets    int
}

func (f *fakeCache) Get(_ context.Context, key string) ([]string, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	slots, ok := f.entries[key]
	return slots, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, slots []string) error {
	f.sets++
	if f.entries == nil {
		f.entries = make(map[string][]string)
	}
	f.entries[key] = slots
	return nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(doctor *domain.Doctor, resolved *domain.ResolvedShifts, slotMinutes int, booked []types.TimeString, cache SlotCache) *UseCase {
	uc := NewUseCase(
		&fakeDoctorRepo{doctors: map[int64]*domain.Doctor{doctor.ID: doctor}},
		&fakeScheduleService{resolved: resolved, slotMinutes: slotMinutes},
		&fakeAppointmentRepo{booked: booked},
		cache,
		noopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_OpenSlotsExcludeBooked(t *testing.T) {
	doctor := &domain.Doctor{ID: 7, TimeSlotMinutes: ptr.Ptr(30)}
	resolved := &domain.ResolvedShifts{
		Morning: shift(domain.ShiftMorning, "09:00", "11:00", nil),
	}
	booked := []types.TimeString{"09:30", "10:30"}

	uc := newTestUseCase(doctor, resolved, 30, booked, nil)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, slotStrings(resp.Slots))
}

func TestExecute_DoctorNotFound(t *testing.T) {
	doctor := &domain.Doctor{ID: 7}
	uc := newTestUseCase(doctor, &domain.ResolvedShifts{}, 30, nil, nil)

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 999, Date: futureDate})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_NoShiftsReturnsEmpty(t *testing.T) {
	doctor := &domain.Doctor{ID: 7, TimeSlotMinutes: ptr.Ptr(30)}
	uc := newTestUseCase(doctor, &domain.ResolvedShifts{}, 30, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InvalidInput(t *testing.T) {
	doctor := &domain.Doctor{ID: 7}
	uc := newTestUseCase(doctor, &domain.ResolvedShifts{}, 30, nil, nil)

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 0, Date: futureDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{DoctorID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CacheHitSkipsComputation(t *testing.T) {
	doctor := &domain.Doctor{ID: 7, TimeSlotMinutes: ptr.Ptr(30)}
	cache := &fakeCache{entries: map[string][]string{
		"doctor:7:slots:2026-09-10": {"09:00", "09:30"},
	}}
	// Репозитории вернули бы другой результат - кэш должен победить
	resolved := &domain.ResolvedShifts{
		Morning: shift(domain.ShiftMorning, "14:00", "15:00", nil),
	}
	uc := newTestUseCase(doctor, resolved, 30, nil, cache)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slotStrings(resp.Slots))
	assert.Zero(t, cache.sets)
}

func TestExecute_CacheMissStoresResult(t *testing.T) {
	doctor := &domain.Doctor{ID: 7, TimeSlotMinutes: ptr.Ptr(60)}
	resolved := &domain.ResolvedShifts{
		Morning: shift(domain.ShiftMorning, "09:00", "11:00", nil),
	}
	cache := &fakeCache{}
	uc := newTestUseCase(doctor, resolved, 60, nil, cache)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, slotStrings(resp.Slots))
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, []string{"09:00", "10:00"}, cache.entries["doctor:7:slots:2026-09-10"])
}

func TestExecute_CacheErrorIsTreatedAsMiss(t *testing.T) {
	doctor := &domain.Doctor{ID: 7, TimeSlotMinutes: ptr.Ptr(60)}
	resolved := &domain.ResolvedShifts{
		Morning: shift(domain.ShiftMorning, "09:00", "10:00", nil),
	}
	cache := &fakeCache{getErr: errors.New("redis down")}
	uc := newTestUseCase(doctor, resolved, 60, nil, cache)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, slotStrings(resp.Slots))
}
