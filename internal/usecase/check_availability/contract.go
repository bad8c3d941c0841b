package check_availability

import (
	"context"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	getAvailableSlots "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/get_available_slots"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// ScheduleService интерфейс сервиса резолюции расписаний
type ScheduleService interface {
	// ResolveShifts резолвит 0-2 смены врача на дату
	ResolveShifts(ctx context.Context, doctorID int64, date time.Time) (*domain.ResolvedShifts, error)
}

// ExclusionRepository интерфейс репозитория периодов исключений
type ExclusionRepository interface {
	// GetCompleteFor получает активные complete-исключения врача, включая глобальные
	GetCompleteFor(ctx context.Context, doctorID int64) ([]*domain.ExcludedDate, error)
}

// MonthRepository интерфейс репозитория флагов доступности месяцев
type MonthRepository interface {
	// GetAvailableFrom получает доступные месяцы врача, сгруппированные год -> месяцы
	GetAvailableFrom(ctx context.Context, doctorID int64, fromYear int) (map[int]map[int]bool, error)
}

// SlotsUseCase интерфейс расчета свободных слотов на конкретную дату
type SlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
