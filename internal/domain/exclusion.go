package domain

import (
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/ptr"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// ExclusionType тип периода исключения
type ExclusionType string

const (
	// ExclusionComplete врач полностью недоступен в даты периода
	ExclusionComplete ExclusionType = "complete"
	// ExclusionLimited период с подменным (обычно сокращенным) расписанием
	ExclusionLimited ExclusionType = "limited"
)

// IsValid проверяет, что тип принадлежит закрытому множеству значений
func (t ExclusionType) IsValid() bool {
	return t == ExclusionComplete || t == ExclusionLimited
}

// ExcludedDate период исключения из обычного расписания
// DoctorID == nil означает, что период действует для всех врачей.
// EndDate == nil означает исключение на один день (StartDate).
// Для limited-исключений поля StartTime/EndTime/NumberOfPatientsPerDay/ShiftPeriod
// задают подменную смену, которая на совпадающие даты полностью замещает
// обычное расписание (без слияния)
type ExcludedDate struct {
	ID                     int64
	DoctorID               *int64
	StartDate              time.Time
	EndDate                *time.Time
	ExclusionType          ExclusionType
	StartTime              types.TimeString
	EndTime                types.TimeString
	NumberOfPatientsPerDay *int
	ShiftPeriod            ShiftPeriod
	IsActive               bool
}

// Matches возвращает true, если дата попадает в период исключения
// Сравнение только по календарной дате, время суток игнорируется
func (e *ExcludedDate) Matches(date time.Time) bool {
	d := DateOnly(date)
	start := DateOnly(e.StartDate)
	end := start
	if e.EndDate != nil {
		end = DateOnly(*e.EndDate)
	}
	return !d.Before(start) && !d.After(end)
}

// AsSchedule представляет limited-исключение как подменную смену
func (e *ExcludedDate) AsSchedule() *Schedule {
	return &Schedule{
		DoctorID:               ptr.Deref(e.DoctorID),
		ShiftPeriod:            e.ShiftPeriod,
		StartTime:              e.StartTime,
		EndTime:                e.EndTime,
		NumberOfPatientsPerDay: e.NumberOfPatientsPerDay,
		IsActive:               e.IsActive,
	}
}
