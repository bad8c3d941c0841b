package get_available_slots

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

// ScheduleService интерфейс сервиса резолюции расписаний
type ScheduleService interface {
	// ResolveShifts резолвит 0-2 смены врача на дату
	ResolveShifts(ctx context.Context, doctorID int64, date time.Time) (*domain.ResolvedShifts, error)
	// SlotMinutes вычисляет эффективную длительность слота для (врач, дата)
	SlotMinutes(ctx context.Context, doctor *domain.Doctor, date time.Time) (int, error)
}

// AppointmentRepository интерфейс репозитория записей на прием
type AppointmentRepository interface {
	// GetBookedTimes получает занятые времена врача на дату ("HH:MM", дедуплицированные)
	GetBookedTimes(ctx context.Context, doctorID int64, date time.Time, excludedStatuses []domain.AppointmentStatus) ([]types.TimeString, error)
}

// SlotCache интерфейс кэша списков слотов с коротким TTL
// Кэш не является источником истины: любая ошибка трактуется как промах
type SlotCache interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Set(ctx context.Context, key string, slots []string) error
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
