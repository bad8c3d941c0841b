package force_slots

import (
	"context"

	forceSlots "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/force_slots"
)

type ForceSlotsUseCase interface {
	Execute(ctx context.Context, req *forceSlots.Request) (*forceSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
