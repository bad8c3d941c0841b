package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/ptr"
)

func TestDayOfWeekOf(t *testing.T) {
	// 6 сентября 2026 - воскресенье
	assert.Equal(t, Sunday, DayOfWeekOf(time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Monday, DayOfWeekOf(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Saturday, DayOfWeekOf(time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)))
}

func TestExcludedDate_Matches(t *testing.T) {
	single := &ExcludedDate{
		StartDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		ExclusionType: ExclusionComplete,
		IsActive:      true,
	}

	assert.True(t, single.Matches(time.Date(2026, 9, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, single.Matches(time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, single.Matches(time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)))

	ranged := &ExcludedDate{
		StartDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:       ptr.Ptr(time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)),
		ExclusionType: ExclusionComplete,
		IsActive:      true,
	}

	assert.True(t, ranged.Matches(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, ranged.Matches(time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)))
	assert.False(t, ranged.Matches(time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)))
}

func TestAppointment_BlocksSlot(t *testing.T) {
	blocking := []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusPending, StatusDone}
	for _, s := range blocking {
		a := &Appointment{Status: s}
		assert.True(t, a.BlocksSlot(), "status %s must block its slot", s)
	}

	canceled := &Appointment{Status: StatusCanceled}
	assert.False(t, canceled.BlocksSlot())
	assert.True(t, canceled.IsCanceled())
}

func TestResolvedShifts_Totals(t *testing.T) {
	resolved := &ResolvedShifts{
		Morning: &Schedule{
			StartTime:              "08:00",
			EndTime:                "12:00",
			NumberOfPatientsPerDay: ptr.Ptr(6),
		},
		Afternoon: &Schedule{
			StartTime:              "14:00",
			EndTime:                "16:00",
			NumberOfPatientsPerDay: ptr.Ptr(2),
		},
	}

	assert.Equal(t, 360, resolved.TotalMinutes())
	assert.Equal(t, 8, resolved.TotalPatients())
	assert.False(t, resolved.IsEmpty())
	assert.Len(t, resolved.All(), 2)

	empty := &ResolvedShifts{}
	assert.True(t, empty.IsEmpty())
	assert.Empty(t, empty.All())
}

func TestDoctor_HasFixedSlot(t *testing.T) {
	assert.False(t, (&Doctor{}).HasFixedSlot())
	assert.False(t, (&Doctor{TimeSlotMinutes: ptr.Ptr(0)}).HasFixedSlot())
	assert.True(t, (&Doctor{TimeSlotMinutes: ptr.Ptr(30)}).HasFixedSlot())
}

func TestDateOnlyAndSameDay(t *testing.T) {
	a := time.Date(2026, 9, 10, 15, 30, 45, 0, time.UTC)
	b := time.Date(2026, 9, 10, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), DateOnly(a))
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}
