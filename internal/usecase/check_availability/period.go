package check_availability

import (
	"fmt"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
)

// formatPeriod форматирует число дней в человекочитаемый период
//
// Границы: >= 365 дней - годы (+ остаток дней), >= 30 дней - месяцы
// (+ остаток дней), иначе дни. Вход - модуль разницы в днях,
// прошлое и будущее не различаются
func formatPeriod(days int) string {
	if days < 0 {
		days = -days
	}

	if days >= domain.DaysPerYear {
		years := days / domain.DaysPerYear
		remaining := days % domain.DaysPerYear
		if remaining > 0 {
			return fmt.Sprintf("%d year(s) and %d day(s)", years, remaining)
		}
		return fmt.Sprintf("%d year(s)", years)
	}

	if days >= domain.DaysPerMonth {
		months := days / domain.DaysPerMonth
		remaining := days % domain.DaysPerMonth
		if remaining > 0 {
			return fmt.Sprintf("%d month(s) and %d day(s)", months, remaining)
		}
		return fmt.Sprintf("%d month(s)", months)
	}

	return fmt.Sprintf("%d day(s)", days)
}

// daysBetween возвращает модуль разницы календарных дат в днях
func daysBetween(a, b time.Time) int {
	diff := domain.DateOnly(a).Sub(domain.DateOnly(b))
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (24 * time.Hour))
}
