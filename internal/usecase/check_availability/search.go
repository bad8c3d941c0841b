package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	scheduleService "github.com/hodaifayahia/AppointmentSystem-maine/internal/service/schedule"
	getAvailableSlots "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/get_available_slots"
)

// searchContext предзагруженные данные одного поиска
// Флаги месяцев и complete-исключения загружаются один раз на весь поиск,
// чтобы проход по дням не ходил в БД на каждую дату
type searchContext struct {
	doctorID        int64
	today           time.Time
	availableMonths map[int]map[int]bool
	exclusions      []*domain.ExcludedDate
}

// prepareSearch загружает данные, общие для всех проверяемых дат
func (uc *UseCase) prepareSearch(ctx context.Context, doctorID int64, now time.Time) (*searchContext, error) {
	today := domain.DateOnly(now)

	months, err := uc.monthRepo.GetAvailableFrom(ctx, doctorID, today.Year())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get available months: %v", ErrInternal, err)
	}

	exclusions, err := uc.exclusionRepo.GetCompleteFor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get exclusions: %v", ErrInternal, err)
	}

	return &searchContext{
		doctorID:        doctorID,
		today:           today,
		availableMonths: months,
		exclusions:      exclusions,
	}, nil
}

// monthAvailable проверяет флаг доступности месяца даты
func (sc *searchContext) monthAvailable(date time.Time) bool {
	months := sc.availableMonths[date.Year()]
	return months != nil && months[int(date.Month())]
}

// findUnbounded ищет первую дату со свободным слотом день за днем
//
// Жесткая граница - 31 декабря текущего года, что гарантирует завершение.
// Месяцы без флага доступности пропускаются целиком (переход к первому
// числу следующего месяца), даты complete-исключений - по одной
func (uc *UseCase) findUnbounded(ctx context.Context, sc *searchContext, startDate time.Time) (*time.Time, error) {
	endOfYear := time.Date(sc.today.Year(), time.December, 31, 0, 0, 0, 0, sc.today.Location())

	current := domain.DateOnly(startDate)
	for !current.After(endOfYear) {
		// Прошедшие даты никогда не подходят
		if current.Before(sc.today) {
			current = current.AddDate(0, 0, 1)
			continue
		}

		// Недоступный месяц пропускается без по-дневных вычислений
		if !sc.monthAvailable(current) {
			current = time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location()).
				AddDate(0, 1, 0)
			continue
		}

		if scheduleService.MatchesCompleteExclusion(sc.exclusions, current) {
			current = current.AddDate(0, 0, 1)
			continue
		}

		open, err := uc.openSlotCount(ctx, sc.doctorID, current)
		if err != nil {
			return nil, err
		}
		if open > 0 {
			found := current
			return &found, nil
		}

		current = current.AddDate(0, 0, 1)
	}

	return nil, nil
}

// findWithinRange ищет самую раннюю доступную дату в окне
// [startDate - rangeDays, startDate + rangeDays]
//
// Каждая дата проходит ту же проверку пригодности, что и в неограниченном
// поиске; limited-исключение дату не дисквалифицирует, а лишь подменяет
// расписание на уровне резолюции смен
func (uc *UseCase) findWithinRange(ctx context.Context, sc *searchContext, startDate time.Time, rangeDays int) (*time.Time, error) {
	start := domain.DateOnly(startDate)

	for offset := -rangeDays; offset <= rangeDays; offset++ {
		candidate := start.AddDate(0, 0, offset)

		available, err := uc.isDateAvailable(ctx, sc, candidate)
		if err != nil {
			return nil, err
		}
		if available {
			found := candidate
			return &found, nil
		}
	}

	return nil, nil
}

// isDateAvailable проверяет одну дату: не в прошлом, месяц доступен,
// нет complete-исключения, смены резолвятся и есть хотя бы один свободный слот
func (uc *UseCase) isDateAvailable(ctx context.Context, sc *searchContext, date time.Time) (bool, error) {
	if date.Before(sc.today) {
		return false, nil
	}

	if !sc.monthAvailable(date) {
		return false, nil
	}

	if scheduleService.MatchesCompleteExclusion(sc.exclusions, date) {
		return false, nil
	}

	open, err := uc.openSlotCount(ctx, sc.doctorID, date)
	if err != nil {
		return false, err
	}
	return open > 0, nil
}

// openSlotCount возвращает число свободных слотов врача на дату
// Пустое расписание дает 0 без ошибки
func (uc *UseCase) openSlotCount(ctx context.Context, doctorID int64, date time.Time) (int, error) {
	resolved, err := uc.scheduleService.ResolveShifts(ctx, doctorID, date)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to resolve shifts: %v", ErrInternal, err)
	}
	if resolved.IsEmpty() {
		return 0, nil
	}

	resp, err := uc.slotsUseCase.Execute(ctx, &getAvailableSlots.Request{
		DoctorID: doctorID,
		Date:     date,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get open slots: %v", ErrInternal, err)
	}

	return len(resp.Slots), nil
}
