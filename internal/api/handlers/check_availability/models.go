package check_availability

import (
	"strconv"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	checkAvailability "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/check_availability"
)

// CheckAvailabilityResponse HTTP response model
// NextAvailableDate null, когда поиск исчерпан без результата
type CheckAvailabilityResponse struct {
	CurrentDate       string   `json:"currentDate"`
	NextAvailableDate *string  `json:"nextAvailableDate"`
	Period            string   `json:"period,omitempty"`
	AvailableSlots    []string `json:"availableSlots,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	out := &CheckAvailabilityResponse{
		CurrentDate: resp.CurrentDate.Format(domain.DateFormat),
		Period:      resp.Period,
	}

	if resp.NextAvailableDate != nil {
		formatted := resp.NextAvailableDate.Format(domain.DateFormat)
		out.NextAvailableDate = &formatted
	}

	if resp.AvailableSlots != nil {
		slots := make([]string, len(resp.AvailableSlots))
		for i, slot := range resp.AvailableSlots {
			slots[i] = slot.String()
		}
		out.AvailableSlots = slots
	}

	return out
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(doctorID int64, dateStr, daysStr, rangeStr, includeSlotsStr string) (*checkAvailability.Request, error) {
	req := &checkAvailability.Request{DoctorID: doctorID}

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

	if rangeStr != "" {
		rangeDays, err := strconv.Atoi(rangeStr)
		if err != nil {
			return nil, err
		}
		req.RangeDays = rangeDays
	}

	if includeSlotsStr != "" {
		includeSlots, err := strconv.ParseBool(includeSlotsStr)
		if err != nil {
			return nil, err
		}
		req.IncludeSlots = includeSlots
	}

	return req, nil
}
