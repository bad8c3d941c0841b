package domain

import (
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// ShiftPeriod период смены врача
type ShiftPeriod string

const (
	ShiftMorning   ShiftPeriod = "morning"
	ShiftAfternoon ShiftPeriod = "afternoon"
)

// IsValid проверяет, что период принадлежит закрытому множеству значений
func (p ShiftPeriod) IsValid() bool {
	return p == ShiftMorning || p == ShiftAfternoon
}

// DayOfWeek день недели, 0=воскресенье .. 6=суббота
// Совпадает с time.Weekday и с соглашением хранимых расписаний
type DayOfWeek int

const (
	Sunday    DayOfWeek = 0
	Monday    DayOfWeek = 1
	Tuesday   DayOfWeek = 2
	Wednesday DayOfWeek = 3
	Thursday  DayOfWeek = 4
	Friday    DayOfWeek = 5
	Saturday  DayOfWeek = 6
)

// DayOfWeekOf возвращает день недели календарной даты
func DayOfWeekOf(t time.Time) DayOfWeek {
	return DayOfWeek(t.Weekday())
}

// Schedule определение смены врача
// Либо повторяющееся еженедельное правило (DayOfWeek задан, Date nil),
// либо правило на конкретную дату (Date задан)
type Schedule struct {
	ID                     int64
	DoctorID               int64
	ShiftPeriod            ShiftPeriod
	StartTime              types.TimeString
	EndTime                types.TimeString
	NumberOfPatientsPerDay *int
	DayOfWeek              *DayOfWeek
	Date                   *time.Time
	IsActive               bool
}

// IsRecurring возвращает true для еженедельного правила
func (s *Schedule) IsRecurring() bool {
	return s.Date == nil
}

// IsDateSpecific возвращает true для правила на конкретную дату
func (s *Schedule) IsDateSpecific() bool {
	return s.Date != nil
}

// ShiftMinutes возвращает длительность смены в минутах
// Смена с EndTime <= StartTime считается пустой
func (s *Schedule) ShiftMinutes() int {
	if !s.EndTime.IsAfter(s.StartTime) {
		return 0
	}
	minutes, err := s.StartTime.MinutesBetween(s.EndTime)
	if err != nil {
		return 0
	}
	return minutes
}

// ResolvedShifts смены врача на конкретную дату после резолюции
// На дату приходится не более одной смены каждого периода
type ResolvedShifts struct {
	Morning   *Schedule
	Afternoon *Schedule
}

// IsEmpty возвращает true, если врач не работает в эту дату
func (r *ResolvedShifts) IsEmpty() bool {
	return r.Morning == nil && r.Afternoon == nil
}

// All возвращает присутствующие смены в порядке morning, afternoon
func (r *ResolvedShifts) All() []*Schedule {
	shifts := make([]*Schedule, 0, 2)
	if r.Morning != nil {
		shifts = append(shifts, r.Morning)
	}
	if r.Afternoon != nil {
		shifts = append(shifts, r.Afternoon)
	}
	return shifts
}

// TotalMinutes суммарная длительность присутствующих смен в минутах
func (r *ResolvedShifts) TotalMinutes() int {
	total := 0
	for _, s := range r.All() {
		total += s.ShiftMinutes()
	}
	return total
}

// TotalPatients суммарное число пациентов по присутствующим сменам
// nil трактуется как 0
func (r *ResolvedShifts) TotalPatients() int {
	total := 0
	for _, s := range r.All() {
		if s.NumberOfPatientsPerDay != nil {
			total += *s.NumberOfPatientsPerDay
		}
	}
	return total
}
