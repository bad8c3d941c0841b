package available_appointments

import (
	"context"

	availableAppointments "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/available_appointments"
)

type AvailableAppointmentsUseCase interface {
	Execute(ctx context.Context, req *availableAppointments.Request) (*availableAppointments.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
