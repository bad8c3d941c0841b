package available_appointments

import (
	"time"

	checkAvailability "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/check_availability"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// Request параметры подбора освободившихся слотов
type Request struct {
	DoctorID int64
}

// CanceledDay освободившиеся слоты одной даты
type CanceledDay struct {
	Date  time.Time          `json:"date"`
	Slots []types.TimeString `json:"slots"`
}

// Response освободившиеся из-за отмен слоты плюс обычный результат
// поиска ближайшей доступной даты
type Response struct {
	DoctorID             int64                       `json:"doctor_id"`
	CanceledAppointments []CanceledDay               `json:"canceled_appointments"`
	NormalAppointment    *checkAvailability.Response `json:"normal_appointment"`
}
