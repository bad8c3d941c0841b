package domain

import (
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// AppointmentStatus статус записи на прием
type AppointmentStatus int

const (
	StatusScheduled AppointmentStatus = 0
	StatusConfirmed AppointmentStatus = 1
	StatusCanceled  AppointmentStatus = 2
	StatusPending   AppointmentStatus = 3
	StatusDone      AppointmentStatus = 4
)

// String возвращает человекочитаемое название статуса
func (s AppointmentStatus) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusConfirmed:
		return "confirmed"
	case StatusCanceled:
		return "canceled"
	case StatusPending:
		return "pending"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// IsValid проверяет, что статус принадлежит закрытому множеству значений
func (s AppointmentStatus) IsValid() bool {
	return s >= StatusScheduled && s <= StatusDone
}

// ExcludedStatuses статусы, при которых запись НЕ занимает слот
// Единый именованный набор: используется и при вычитании занятых слотов,
// и при переиспользовании отмененных записей
var ExcludedStatuses = []AppointmentStatus{
	StatusCanceled,
}

// Appointment запись на прием (read-only проекция для расчета доступности)
type Appointment struct {
	ID              int64
	DoctorID        int64
	PatientID       int64
	AppointmentDate time.Time
	AppointmentTime types.TimeString
	Status          AppointmentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BlocksSlot возвращает true, если запись занимает свой слот
func (a *Appointment) BlocksSlot() bool {
	for _, s := range ExcludedStatuses {
		if a.Status == s {
			return false
		}
	}
	return true
}

// IsCanceled возвращает true для отмененной записи
func (a *Appointment) IsCanceled() bool {
	return a.Status == StatusCanceled
}
