package get_available_slots

import (
	"math"
	"sort"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// generateCandidateSlots разворачивает резолвленные смены в кандидатные слоты
//
// Режим генерации зависит от врача:
//   - фиксированный слот: шаг slotMinutes от начала смены до ее конца
//   - по числу пациентов: ровно N слотов, равномерно распределенных по смене
//
// Для сегодняшней даты применяется буферный фильтр: слот должен начинаться
// строго позже now + SameDayBufferMinutes. Результат объединен по сменам,
// дедуплицирован и отсортирован по возрастанию времени
func generateCandidateSlots(
	resolved *domain.ResolvedShifts,
	doctor *domain.Doctor,
	slotMinutes int,
	date time.Time,
	now time.Time,
) []types.TimeString {
	isToday := domain.SameDay(date, now)
	buffer := types.NewTimeString(now.Add(domain.SameDayBufferMinutes * time.Minute))

	slots := make([]types.TimeString, 0)
	for _, shift := range resolved.All() {
		if doctor.HasFixedSlot() {
			slots = append(slots, fixedShiftSlots(shift, slotMinutes, isToday, buffer)...)
		} else {
			slots = append(slots, patientShiftSlots(shift, isToday, buffer)...)
		}
	}

	return dedupeSorted(slots)
}

// fixedShiftSlots генерирует слоты смены с фиксированным шагом
// Число итераций floor(длительность/шаг)+1, слоты на границе конца смены
// и позже отбрасываются
func fixedShiftSlots(shift *domain.Schedule, slotMinutes int, isToday bool, buffer types.TimeString) []types.TimeString {
	totalMinutes := shift.ShiftMinutes()
	if totalMinutes <= 0 || slotMinutes <= 0 {
		return nil
	}

	totalSlots := totalMinutes/slotMinutes + 1
	slots := make([]types.TimeString, 0, totalSlots)

	for i := 0; i < totalSlots; i++ {
		slot, err := shift.StartTime.AddMinutes(i * slotMinutes)
		if err != nil {
			break
		}
		// Слот, достигший конца смены, не предлагается
		if !slot.IsBefore(shift.EndTime) {
			break
		}
		if isToday && !slot.IsAfter(buffer) {
			continue
		}
		slots = append(slots, slot)
	}

	return slots
}

// patientShiftSlots распределяет ровно N слотов равномерно по смене
// При N == 1 единственный слот ставится на начало смены.
// Смена без заданного числа пациентов слотов не дает
func patientShiftSlots(shift *domain.Schedule, isToday bool, buffer types.TimeString) []types.TimeString {
	if shift.NumberOfPatientsPerDay == nil {
		return nil
	}
	patients := *shift.NumberOfPatientsPerDay
	if patients <= 0 {
		return nil
	}

	if patients == 1 {
		if isToday && !shift.StartTime.IsAfter(buffer) {
			return nil
		}
		return []types.TimeString{shift.StartTime}
	}

	totalMinutes := shift.ShiftMinutes()
	if totalMinutes <= 0 {
		return nil
	}

	step := float64(totalMinutes) / float64(patients-1)
	slots := make([]types.TimeString, 0, patients)

	for i := 0; i < patients; i++ {
		minutesToAdd := int(math.Round(float64(i) * step))
		slot, err := shift.StartTime.AddMinutes(minutesToAdd)
		if err != nil {
			break
		}
		if isToday && !slot.IsAfter(buffer) {
			continue
		}
		slots = append(slots, slot)
	}

	return slots
}

// dedupeSorted сортирует слоты по возрастанию и убирает дубликаты
func dedupeSorted(slots []types.TimeString) []types.TimeString {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].IsBefore(slots[j])
	})

	result := slots[:0]
	var prev types.TimeString
	for _, s := range slots {
		if s == prev && len(result) > 0 {
			continue
		}
		result = append(result, s)
		prev = s
	}
	return result
}

// subtractBooked вычитает занятые времена из кандидатных слотов,
// сохраняя порядок кандидатов
func subtractBooked(candidates []types.TimeString, booked []types.TimeString) []types.TimeString {
	if len(booked) == 0 {
		return candidates
	}

	taken := make(map[types.TimeString]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}

	open := make([]types.TimeString, 0, len(candidates))
	for _, c := range candidates {
		if !taken[c] {
			open = append(open, c)
		}
	}
	return open
}
