package available_appointments

import (
	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	availableAppointments "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/available_appointments"
)

// CanceledDayResponse освободившиеся слоты одной даты
type CanceledDayResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// NormalAppointmentResponse обычный результат поиска ближайшей даты
type NormalAppointmentResponse struct {
	NextAvailableDate *string  `json:"nextAvailableDate"`
	Period            string   `json:"period,omitempty"`
	AvailableSlots    []string `json:"availableSlots,omitempty"`
}

// AvailableAppointmentsResponse HTTP response model
type AvailableAppointmentsResponse struct {
	DoctorID             int64                      `json:"doctorId"`
	CanceledAppointments []CanceledDayResponse      `json:"canceledAppointments"`
	NormalAppointment    *NormalAppointmentResponse `json:"normalAppointment"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *availableAppointments.Response) *AvailableAppointmentsResponse {
	days := make([]CanceledDayResponse, len(resp.CanceledAppointments))
	for i, day := range resp.CanceledAppointments {
		slots := make([]string, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = slot.String()
		}
		days[i] = CanceledDayResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: slots,
		}
	}

	out := &AvailableAppointmentsResponse{
		DoctorID:             resp.DoctorID,
		CanceledAppointments: days,
	}

	if resp.NormalAppointment != nil {
		normal := &NormalAppointmentResponse{
			Period: resp.NormalAppointment.Period,
		}
		if resp.NormalAppointment.NextAvailableDate != nil {
			formatted := resp.NormalAppointment.NextAvailableDate.Format(domain.DateFormat)
			normal.NextAvailableDate = &formatted
		}
		if resp.NormalAppointment.AvailableSlots != nil {
			slots := make([]string, len(resp.NormalAppointment.AvailableSlots))
			for i, slot := range resp.NormalAppointment.AvailableSlots {
				slots[i] = slot.String()
			}
			normal.AvailableSlots = slots
		}
		out.NormalAppointment = normal
	}

	return out
}
