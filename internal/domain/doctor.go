package domain

import (
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// Doctor справочные данные врача, нужные для расчета слотов
type Doctor struct {
	ID int64
	// TimeSlotMinutes фиксированная длительность слота в минутах
	// nil или <= 0 означает, что длительность выводится из числа пациентов
	TimeSlotMinutes *int
	// PatientsBasedOnTime режим распределения пациентов по времени смены
	PatientsBasedOnTime bool
}

// HasFixedSlot возвращает true, если у врача задан фиксированный слот
func (d *Doctor) HasFixedSlot() bool {
	return d.TimeSlotMinutes != nil && *d.TimeSlotMinutes > 0
}

// AvailableMonth флаг доступности врача в конкретном месяце
// Грубый предфильтр: месяц без флага is_available=true целиком
// пропускается поиском следующей доступной даты
type AvailableMonth struct {
	ID          int64
	DoctorID    int64
	Year        int
	Month       int
	IsAvailable bool
}

// AppointmentForcer настройки принудительной записи для врача
// Задает сетку по умолчанию, когда у врача нет расписания на дату
type AppointmentForcer struct {
	ID               int64
	DoctorID         int64
	StartTime        *types.TimeString
	EndTime          *types.TimeString
	NumberOfPatients *int
}

// HasExplicitWindow возвращает true, если окно принудительной записи задано полностью
func (f *AppointmentForcer) HasExplicitWindow() bool {
	return f.StartTime != nil && f.EndTime != nil
}

// DateOnly обнуляет время суток, оставляя только календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay возвращает true, если обе даты приходятся на один календарный день
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
