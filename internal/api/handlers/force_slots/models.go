package force_slots

import (
	"strconv"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	forceSlots "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/force_slots"
)

// ForceSlotsResponse HTTP response model
type ForceSlotsResponse struct {
	DoctorID        int64    `json:"doctorId"`
	Date            string   `json:"date"`
	SlotMinutes     int      `json:"slotMinutes"`
	GapSlots        []string `json:"gapSlots"`
	AdditionalSlots []string `json:"additionalSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *forceSlots.Response) *ForceSlotsResponse {
	gap := make([]string, len(resp.GapSlots))
	for i, slot := range resp.GapSlots {
		gap[i] = slot.String()
	}

	additional := make([]string, len(resp.AdditionalSlots))
	for i, slot := range resp.AdditionalSlots {
		additional[i] = slot.String()
	}

	return &ForceSlotsResponse{
		DoctorID:        resp.DoctorID,
		Date:            resp.Date.Format(domain.DateFormat),
		SlotMinutes:     resp.SlotMinutes,
		GapSlots:        gap,
		AdditionalSlots: additional,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(doctorID int64, dateStr, daysStr string) (*forceSlots.Request, error) {
	req := &forceSlots.Request{DoctorID: doctorID}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return nil, err
		}
		req.Days = days
	}

	return req, nil
}
