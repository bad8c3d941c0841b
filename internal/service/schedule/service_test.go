package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/ptr"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

type fakeScheduleRepo struct {
	schedules []*domain.Schedule
}

func (f *fakeScheduleRepo) GetForDoctorAndDate(_ context.Context, _ int64, _ time.Time, _ domain.DayOfWeek) ([]*domain.Schedule, error) {
	return f.schedules, nil
}

type fakeExclusionRepo struct {
	limited  []*domain.ExcludedDate
	complete []*domain.ExcludedDate
}

func (f *fakeExclusionRepo) GetLimitedFor(_ context.Context, _ int64, _ time.Time) ([]*domain.ExcludedDate, error) {
	return f.limited, nil
}

func (f *fakeExclusionRepo) GetCompleteFor(_ context.Context, _ int64) ([]*domain.ExcludedDate, error) {
	return f.complete, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

func recurringShift(period domain.ShiftPeriod, start, end string, patients *int) *domain.Schedule {
	dow := domain.DayOfWeekOf(testDate)
	return &domain.Schedule{
		DoctorID:               1,
		ShiftPeriod:            period,
		StartTime:              types.TimeString(start),
		EndTime:                types.TimeString(end),
		NumberOfPatientsPerDay: patients,
		DayOfWeek:              &dow,
		IsActive:               true,
	}
}

func dateShift(period domain.ShiftPeriod, start, end string) *domain.Schedule {
	d := testDate
	return &domain.Schedule{
		DoctorID:    1,
		ShiftPeriod: period,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Date:        &d,
		IsActive:    true,
	}
}

func TestResolveShifts_RecurringSchedule(t *testing.T) {
	svc := NewService(
		&fakeScheduleRepo{schedules: []*domain.Schedule{
			recurringShift(domain.ShiftMorning, "08:00", "12:00", nil),
			recurringShift(domain.ShiftAfternoon, "14:00", "18:00", nil),
		}},
		&fakeExclusionRepo{},
		noopLogger{},
	)

	resolved, err := svc.ResolveShifts(context.Background(), 1, testDate)
	require.NoError(t, err)
	require.NotNil(t, resolved.Morning)
	require.NotNil(t, resolved.Afternoon)
	assert.Equal(t, "08:00", resolved.Morning.StartTime.String())
	assert.Equal(t, "14:00", resolved.Afternoon.StartTime.String())
}

func TestResolveShifts_DateSpecificWinsOverRecurring(t *testing.T) {
	svc := NewService(
		&fakeScheduleRepo{schedules: []*domain.Schedule{
			recurringShift(domain.ShiftMorning, "08:00", "12:00", nil),
			dateShift(domain.ShiftMorning, "10:00", "13:00"),
		}},
		&fakeExclusionRepo{},
		noopLogger{},
	)

	resolved, err := svc.ResolveShifts(context.Background(), 1, testDate)
	require.NoError(t, err)
	require.NotNil(t, resolved.Morning)
	assert.Equal(t, "10:00", resolved.Morning.StartTime.String())
	assert.Nil(t, resolved.Afternoon)
}

func TestResolveShifts_LimitedExclusionReplacesSchedule(t *testing.T) {
	svc := NewService(
		&fakeScheduleRepo{schedules: []*domain.Schedule{
			recurringShift(domain.ShiftMorning, "08:00", "12:00", nil),
			recurringShift(domain.ShiftAfternoon, "14:00", "18:00", nil),
		}},
		&fakeExclusionRepo{limited: []*domain.ExcludedDate{{
			DoctorID:      ptr.Ptr(int64(1)),
			StartDate:     testDate,
			ExclusionType: domain.ExclusionLimited,
			StartTime:     "09:00",
			EndTime:       "11:00",
			ShiftPeriod:   domain.ShiftMorning,
			IsActive:      true,
		}}},
		noopLogger{},
	)

	resolved, err := svc.ResolveShifts(context.Background(), 1, testDate)
	require.NoError(t, err)
	require.NotNil(t, resolved.Morning)
	assert.Equal(t, "09:00", resolved.Morning.StartTime.String())
	assert.Equal(t, "11:00", resolved.Morning.EndTime.String())
	// Обычная дневная смена не подмешивается: исключение замещает расписание целиком
	assert.Nil(t, resolved.Afternoon)
}

func TestResolveShifts_NoScheduleIsEmpty(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeExclusionRepo{}, noopLogger{})

	resolved, err := svc.ResolveShifts(context.Background(), 1, testDate)
	require.NoError(t, err)
	assert.True(t, resolved.IsEmpty())
}

func TestSlotMinutes_FixedSlotDoctor(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeExclusionRepo{}, noopLogger{})
	doctor := &domain.Doctor{ID: 1, TimeSlotMinutes: ptr.Ptr(20)}

	minutes, err := svc.SlotMinutes(context.Background(), doctor, testDate)
	require.NoError(t, err)
	assert.Equal(t, 20, minutes)
}

func TestSlotMinutes_DerivedFromPatients(t *testing.T) {
	svc := NewService(
		&fakeScheduleRepo{schedules: []*domain.Schedule{
			recurringShift(domain.ShiftMorning, "08:00", "12:00", ptr.Ptr(6)),
			recurringShift(domain.ShiftAfternoon, "14:00", "16:00", ptr.Ptr(2)),
		}},
		&fakeExclusionRepo{},
		noopLogger{},
	)
	doctor := &domain.Doctor{ID: 1, PatientsBasedOnTime: true}

	// 360 минут на 8 пациентов = 45
	minutes, err := svc.SlotMinutes(context.Background(), doctor, testDate)
	require.NoError(t, err)
	assert.Equal(t, 45, minutes)
}

func TestSlotMinutes_DefaultWithoutPatients(t *testing.T) {
	svc := NewService(
		&fakeScheduleRepo{schedules: []*domain.Schedule{
			recurringShift(domain.ShiftMorning, "08:00", "12:00", nil),
		}},
		&fakeExclusionRepo{},
		noopLogger{},
	)
	doctor := &domain.Doctor{ID: 1}

	minutes, err := svc.SlotMinutes(context.Background(), doctor, testDate)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotMinutes, minutes)
}

func TestSlotMinutes_ClampedToMinimum(t *testing.T) {
	svc := NewService(
		&fakeScheduleRepo{schedules: []*domain.Schedule{
			recurringShift(domain.ShiftMorning, "08:00", "09:00", ptr.Ptr(100)),
		}},
		&fakeExclusionRepo{},
		noopLogger{},
	)
	doctor := &domain.Doctor{ID: 1}

	minutes, err := svc.SlotMinutes(context.Background(), doctor, testDate)
	require.NoError(t, err)
	assert.Equal(t, domain.MinSlotMinutes, minutes)
}

func TestIsFullyExcluded(t *testing.T) {
	svc := NewService(
		&fakeScheduleRepo{},
		&fakeExclusionRepo{complete: []*domain.ExcludedDate{{
			StartDate:     testDate.AddDate(0, 0, -1),
			EndDate:       ptr.Ptr(testDate.AddDate(0, 0, 1)),
			ExclusionType: domain.ExclusionComplete,
			IsActive:      true,
		}}},
		noopLogger{},
	)

	excluded, err := svc.IsFullyExcluded(context.Background(), 1, testDate)
	require.NoError(t, err)
	assert.True(t, excluded)

	excluded, err = svc.IsFullyExcluded(context.Background(), 1, testDate.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.False(t, excluded)
}

func TestMatchesCompleteExclusion_SingleDayAndRange(t *testing.T) {
	single := &domain.ExcludedDate{
		StartDate:     testDate,
		ExclusionType: domain.ExclusionComplete,
		IsActive:      true,
	}
	limited := &domain.ExcludedDate{
		StartDate:     testDate,
		ExclusionType: domain.ExclusionLimited,
		IsActive:      true,
	}

	assert.True(t, MatchesCompleteExclusion([]*domain.ExcludedDate{single}, testDate))
	assert.False(t, MatchesCompleteExclusion([]*domain.ExcludedDate{single}, testDate.AddDate(0, 0, 1)))
	// Limited-исключение не делает дату недоступной
	assert.False(t, MatchesCompleteExclusion([]*domain.ExcludedDate{limited}, testDate))
}
