package force_slots

import (
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// Request параметры подбора форсированных слотов
// Date имеет приоритет над Days; при обоих нулевых берется сегодня
type Request struct {
	DoctorID int64
	Date     *time.Time
	Days     int
}

// Response форсированные слоты врача на дату
//
// GapSlots - слоты в разрыве между утренней и дневной сменами,
// AdditionalSlots - слоты после конца последней смены либо слоты
// дефолтной сетки, когда смен на дату нет
type Response struct {
	DoctorID        int64              `json:"doctor_id"`
	Date            time.Time          `json:"date"`
	SlotMinutes     int                `json:"slot_minutes"`
	GapSlots        []types.TimeString `json:"gap_slots"`
	AdditionalSlots []types.TimeString `json:"additional_slots"`
}
