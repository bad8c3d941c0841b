package get_available_slots

import (
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	DoctorID int64     // ID врача
	Date     time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	DoctorID int64              // ID врача
	Date     time.Time          // Дата, на которую запрашивались слоты
	Slots    []types.TimeString // Свободные слоты по возрастанию времени
}
