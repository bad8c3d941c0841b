package available_appointments

import (
	"context"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	checkAvailability "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/check_availability"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
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
	// IsAvailable проверяет флаг доступности врача в конкретном месяце
	IsAvailable(ctx context.Context, doctorID int64, year, month int) (bool, error)
}

// AppointmentRepository интерфейс репозитория записей на прием
type AppointmentRepository interface {
	// GetCanceledFuture получает отмененные записи врача, чье время еще не прошло
	GetCanceledFuture(ctx context.Context, doctorID int64, now time.Time) ([]*domain.Appointment, error)
	// IsSlotRebooked проверяет, занято ли время неотмененной записью
	IsSlotRebooked(ctx context.Context, doctorID int64, date time.Time, slot types.TimeString) (bool, error)
}

// AvailabilityUseCase интерфейс поиска ближайшей доступной даты
type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error)
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
