package schedule

import (
	"context"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	// GetForDoctorAndDate получает активные смены врача, применимые к дате
	GetForDoctorAndDate(ctx context.Context, doctorID int64, date time.Time, dayOfWeek domain.DayOfWeek) ([]*domain.Schedule, error)
}

// ExclusionRepository интерфейс репозитория периодов исключений
type ExclusionRepository interface {
	// GetLimitedFor получает активные limited-исключения врача на дату
	GetLimitedFor(ctx context.Context, doctorID int64, date time.Time) ([]*domain.ExcludedDate, error)
	// GetCompleteFor получает активные complete-исключения врача, включая глобальные
	GetCompleteFor(ctx context.Context, doctorID int64) ([]*domain.ExcludedDate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
