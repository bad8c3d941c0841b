package force_slots

import (
	"context"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// ForcerRepository интерфейс репозитория настроек форсирования
type ForcerRepository interface {
	// GetByDoctorID получает настройки форсирования врача
	GetByDoctorID(ctx context.Context, doctorID int64) (*domain.AppointmentForcer, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	// HasActiveSchedule проверяет, есть ли у врача хоть одно активное расписание
	HasActiveSchedule(ctx context.Context, doctorID int64) (bool, error)
}

// ScheduleService интерфейс сервиса резолюции расписаний
type ScheduleService interface {
	// ResolveShifts резолвит 0-2 смены врача на дату
	ResolveShifts(ctx context.Context, doctorID int64, date time.Time) (*domain.ResolvedShifts, error)
	// SlotMinutes вычисляет эффективную длительность слота для (врач, дата)
	SlotMinutes(ctx context.Context, doctor *domain.Doctor, date time.Time) (int, error)
}

// ExclusionRepository интерфейс репозитория периодов исключений
type ExclusionRepository interface {
	// GetLimitedFor получает активные limited-исключения врача на дату
	GetLimitedFor(ctx context.Context, doctorID int64, date time.Time) ([]*domain.ExcludedDate, error)
}

// AppointmentRepository интерфейс репозитория записей на прием
type AppointmentRepository interface {
	// GetBookedTimes получает занятые времена врача на дату
	GetBookedTimes(ctx context.Context, doctorID int64, date time.Time, excludedStatuses []domain.AppointmentStatus) ([]types.TimeString, error)
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
