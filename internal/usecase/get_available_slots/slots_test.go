package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/ptr"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

func shift(period domain.ShiftPeriod, start, end string, patients *int) *domain.Schedule {
	return &domain.Schedule{
		ShiftPeriod:            period,
		StartTime:              types.TimeString(start),
		EndTime:                types.TimeString(end),
		NumberOfPatientsPerDay: patients,
		IsActive:               true,
	}
}

func fixedDoctor(slotMinutes int) *domain.Doctor {
	return &domain.Doctor{ID: 1, TimeSlotMinutes: ptr.Ptr(slotMinutes)}
}

func patientDoctor() *domain.Doctor {
	return &domain.Doctor{ID: 1, PatientsBasedOnTime: true}
}

var (
	futureDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	morningNow = time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC)
)

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestGenerateCandidateSlots_FixedStep(t *testing.T) {
	resolved := &domain.ResolvedShifts{
		Morning: shift(domain.ShiftMorning, "09:00", "10:30", nil),
	}

	slots := generateCandidateSlots(resolved, fixedDoctor(30), 30, futureDate, morningNow)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStrings(slots))
}

func TestFixedShiftSlots_DropsShiftEnd(t *testing.T) {
	s := shift(domain.ShiftMorning, "09:00", "10:30", nil)

	slots := fixedShiftSlots(s, 30, false, "")
	// 10:30 совпадает с концом смены и не предлагается
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStrings(slots))
}

func TestFixedShiftSlots_UnevenTail(t *testing.T) {
	s := shift(domain.ShiftMorning, "09:00", "10:20", nil)

	slots := fixedShiftSlots(s, 30, false, "")
	// Последний слот 10:00 начинается до конца смены, хвост в 20 минут остается
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStrings(slots))
}

func TestPatientShiftSlots_SinglePatient(t *testing.T) {
	s := shift(domain.ShiftMorning, "09:00", "12:00", ptr.Ptr(1))

	slots := patientShiftSlots(s, false, "")
	assert.Equal(t, []string{"09:00"}, slotStrings(slots))
}

func TestPatientShiftSlots_EvenDistribution(t *testing.T) {
	// 180 минут на 4 пациентов: шаг 60, последний слот на конце смены
	s := shift(domain.ShiftMorning, "09:00", "12:00", ptr.Ptr(4))

	slots := patientShiftSlots(s, false, "")
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, slotStrings(slots))
}

func TestPatientShiftSlots_RoundsPositions(t *testing.T) {
	// 100 минут на 3 пациентов: позиции 0, 50, 100
	s := shift(domain.ShiftMorning, "08:00", "09:40", ptr.Ptr(3))

	slots := patientShiftSlots(s, false, "")
	assert.Equal(t, []string{"08:00", "08:50", "09:40"}, slotStrings(slots))
}

func TestPatientShiftSlots_NoPatientsConfigured(t *testing.T) {
	s := shift(domain.ShiftMorning, "09:00", "12:00", nil)

	assert.Empty(t, patientShiftSlots(s, false, ""))
}

func TestGenerateCandidateSlots_SameDayBuffer(t *testing.T) {
	resolved := &domain.ResolvedShifts{
		Morning: shift(domain.ShiftMorning, "09:00", "12:00", nil),
	}
	// Сейчас 09:57, буфер 5 минут: слоты 10:02 и раньше отбрасываются
	now := time.Date(2026, 9, 10, 9, 57, 0, 0, time.UTC)

	slots := generateCandidateSlots(resolved, fixedDoctor(30), 30, futureDate, now)
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, slotStrings(slots))
}

func TestGenerateCandidateSlots_BufferBoundaryIsExclusive(t *testing.T) {
	resolved := &domain.ResolvedShifts{
		Morning: shift(domain.ShiftMorning, "09:00", "12:00", nil),
	}
	// Буфер ровно 10:00: слот 10:00 не строго позже и отбрасывается
	now := time.Date(2026, 9, 10, 9, 55, 0, 0, time.UTC)

	slots := generateCandidateSlots(resolved, fixedDoctor(60), 60, futureDate, now)
	assert.Equal(t, []string{"11:00"}, slotStrings(slots))
}

func TestGenerateCandidateSlots_TwoShiftsSortedAndDeduped(t *testing.T) {
	resolved := &domain.ResolvedShifts{
		Morning:   shift(domain.ShiftMorning, "09:00", "12:00", nil),
		Afternoon: shift(domain.ShiftAfternoon, "11:00", "13:00", nil),
	}

	slots := generateCandidateSlots(resolved, fixedDoctor(60), 60, futureDate, morningNow)
	// 11:00 попадает в обе смены, но выдается один раз
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, slotStrings(slots))
}

func TestSubtractBooked(t *testing.T) {
	candidates := []types.TimeString{"09:00", "09:30", "10:00", "10:30"}
	booked := []types.TimeString{"09:30", "10:30", "15:00"}

	open := subtractBooked(candidates, booked)
	assert.Equal(t, []string{"09:00", "10:00"}, slotStrings(open))
}

func TestSubtractBooked_IsSubsetOfCandidates(t *testing.T) {
	candidates := []types.TimeString{"09:00", "09:30", "10:00"}
	open := subtractBooked(candidates, []types.TimeString{"09:30"})

	candidateSet := make(map[types.TimeString]bool)
	for _, c := range candidates {
		candidateSet[c] = true
	}
	for _, s := range open {
		require.True(t, candidateSet[s], "open slot %s is not a candidate", s)
	}
}

func TestSlotCountHalvesWithDoubledSlotSize(t *testing.T) {
	s := shift(domain.ShiftMorning, "08:00", "12:00", nil)

	small := fixedShiftSlots(s, 15, false, "")
	large := fixedShiftSlots(s, 30, false, "")
	assert.Len(t, small, 16)
	assert.Len(t, large, 8)
}
