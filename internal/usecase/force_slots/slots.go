package force_slots

import (
	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// defaultGrid генерирует дефолтную сетку слотов [start, end) с шагом slotMinutes
// Используется, когда на дату нет обычных смен для опоры
func defaultGrid(start, end types.TimeString, slotMinutes int) []types.TimeString {
	if slotMinutes <= 0 || !start.IsBefore(end) {
		return nil
	}

	slots := make([]types.TimeString, 0)
	current := start
	for current.IsBefore(end) {
		slots = append(slots, current)
		next, err := current.AddMinutes(slotMinutes)
		if err != nil {
			break
		}
		current = next
	}
	return slots
}

// gapSlots генерирует слоты в разрыве между концом утренней
// и началом дневной смены
func gapSlots(resolved *domain.ResolvedShifts, slotMinutes int) []types.TimeString {
	if resolved.Morning == nil || resolved.Afternoon == nil {
		return nil
	}
	return defaultGrid(resolved.Morning.EndTime, resolved.Afternoon.StartTime, slotMinutes)
}

// additionalSlots генерирует count слотов после конца последней смены
func additionalSlots(resolved *domain.ResolvedShifts, slotMinutes, count int) []types.TimeString {
	last := lastShiftEnd(resolved)
	if last == nil || slotMinutes <= 0 {
		return nil
	}

	slots := make([]types.TimeString, 0, count)
	current := *last
	for i := 0; i < count; i++ {
		slots = append(slots, current)
		next, err := current.AddMinutes(slotMinutes)
		if err != nil {
			break
		}
		current = next
	}
	return slots
}

// lastShiftEnd возвращает конец самой поздней смены
func lastShiftEnd(resolved *domain.ResolvedShifts) *types.TimeString {
	var last *types.TimeString
	for _, shift := range resolved.All() {
		end := shift.EndTime
		if last == nil || end.IsAfter(*last) {
			last = &end
		}
	}
	return last
}

// subtractBooked вычитает занятые времена, сохраняя порядок кандидатов
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
