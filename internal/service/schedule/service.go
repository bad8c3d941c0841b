package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
)

// Service сервис резолюции расписаний врачей
// Отвечает на вопросы "какие смены у врача в эту дату", "какой длины слот"
// и "полностью ли врач недоступен в эту дату". Все вызывающие контуры
// (расчет слотов, поиск следующей даты) обязаны ходить через него,
// чтобы логика limited-исключений не дублировалась
type Service struct {
	scheduleRepo  ScheduleRepository
	exclusionRepo ExclusionRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	exclusionRepo ExclusionRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		exclusionRepo: exclusionRepo,
		logger:        logger,
	}
}

// ResolveShifts резолвит 0-2 смены врача на дату
//
// Приоритет источников:
//  1. Активное limited-исключение, попадающее в дату - его подменные смены
//     становятся ЕДИНСТВЕННЫМ источником, обычное расписание не читается.
//     Так представляется, например, день с временно сокращенными часами
//  2. Иначе активные правила расписания: на конкретную дату либо еженедельные.
//     При конфликте за один период смены правило на конкретную дату побеждает
//
// Пустой результат означает "врач не работает в эту дату"
func (s *Service) ResolveShifts(ctx context.Context, doctorID int64, date time.Time) (*domain.ResolvedShifts, error) {
	limited, err := s.exclusionRepo.GetLimitedFor(ctx, doctorID, date)
	if err != nil {
		s.logger.Error("ResolveShifts: failed to get limited exclusions for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: ResolveShifts - exclusion repository: %v", ErrInternal, err)
	}

	if len(limited) > 0 {
		resolved := &domain.ResolvedShifts{}
		for _, e := range limited {
			s.assignOverride(resolved, e)
		}
		s.logger.Info("ResolveShifts: doctor=%d date=%s resolved from limited exclusion",
			doctorID, date.Format(domain.DateFormat))
		return resolved, nil
	}

	dayOfWeek := domain.DayOfWeekOf(date)
	schedules, err := s.scheduleRepo.GetForDoctorAndDate(ctx, doctorID, date, dayOfWeek)
	if err != nil {
		s.logger.Error("ResolveShifts: failed to get schedules for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: ResolveShifts - schedule repository: %v", ErrInternal, err)
	}

	resolved := &domain.ResolvedShifts{}
	for _, sch := range schedules {
		s.assignSchedule(resolved, sch)
	}

	return resolved, nil
}

// assignOverride ставит подменную смену исключения в свой период
// Первая запись периода побеждает
func (s *Service) assignOverride(resolved *domain.ResolvedShifts, e *domain.ExcludedDate) {
	override := e.AsSchedule()
	switch e.ShiftPeriod {
	case domain.ShiftMorning:
		if resolved.Morning == nil {
			resolved.Morning = override
		}
	case domain.ShiftAfternoon:
		if resolved.Afternoon == nil {
			resolved.Afternoon = override
		}
	}
}

// assignSchedule ставит смену в свой период с приоритетом правил на конкретную дату
func (s *Service) assignSchedule(resolved *domain.ResolvedShifts, sch *domain.Schedule) {
	var slot **domain.Schedule
	switch sch.ShiftPeriod {
	case domain.ShiftMorning:
		slot = &resolved.Morning
	case domain.ShiftAfternoon:
		slot = &resolved.Afternoon
	default:
		return
	}

	if *slot == nil {
		*slot = sch
		return
	}
	// Правило на конкретную дату вытесняет еженедельное
	if sch.IsDateSpecific() && (*slot).IsRecurring() {
		*slot = sch
	}
}

// SlotMinutes вычисляет эффективную длительность слота для (врач, дата)
//
// Если у врача задан фиксированный слот - возвращается он.
// Иначе длительность выводится из резолвленных смен:
// floor(суммарные минуты смен / суммарное число пациентов),
// при отсутствии пациентов - DefaultSlotMinutes.
// Результат всегда >= MinSlotMinutes, чтобы генератор слотов не зациклился
func (s *Service) SlotMinutes(ctx context.Context, doctor *domain.Doctor, date time.Time) (int, error) {
	if doctor.HasFixedSlot() {
		return *doctor.TimeSlotMinutes, nil
	}

	resolved, err := s.ResolveShifts(ctx, doctor.ID, date)
	if err != nil {
		return 0, err
	}

	totalPatients := resolved.TotalPatients()
	if totalPatients <= 0 {
		return domain.DefaultSlotMinutes, nil
	}

	minutes := resolved.TotalMinutes() / totalPatients
	if minutes < domain.MinSlotMinutes {
		minutes = domain.MinSlotMinutes
	}
	return minutes, nil
}

// IsFullyExcluded проверяет, полностью ли врач недоступен в дату
// Учитываются только complete-исключения: limited-исключение не делает
// дату недоступной, а лишь подменяет расписание (см. ResolveShifts)
func (s *Service) IsFullyExcluded(ctx context.Context, doctorID int64, date time.Time) (bool, error) {
	exclusions, err := s.exclusionRepo.GetCompleteFor(ctx, doctorID)
	if err != nil {
		s.logger.Error("IsFullyExcluded: failed to get complete exclusions for doctor=%d: %v", doctorID, err)
		return false, fmt.Errorf("%w: IsFullyExcluded - exclusion repository: %v", ErrInternal, err)
	}

	return MatchesCompleteExclusion(exclusions, date), nil
}

// MatchesCompleteExclusion проверяет дату против уже загруженного списка исключений
// Выделено отдельно, чтобы поиск следующей даты мог загрузить исключения один раз
func MatchesCompleteExclusion(exclusions []*domain.ExcludedDate, date time.Time) bool {
	for _, e := range exclusions {
		if e.ExclusionType != domain.ExclusionComplete {
			continue
		}
		if e.Matches(date) {
			return true
		}
	}
	return false
}
