package check_availability

import (
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// Request модель запроса поиска ближайшей доступной даты
type Request struct {
	DoctorID int64 // ID врача

	// Date явная стартовая дата поиска
	// Если не задана, старт вычисляется как сегодня + Days
	Date *time.Time
	// Days смещение старта поиска в днях от сегодня (используется при Date == nil)
	Days int

	// RangeDays полуширина симметричного окна поиска
	// 0 означает неограниченный поиск вперед до конца текущего года
	RangeDays int

	// IncludeSlots включить в ответ список свободных слотов найденной даты
	IncludeSlots bool
}

// Response модель ответа поиска ближайшей доступной даты
// NextAvailableDate == nil означает, что доступная дата не найдена
type Response struct {
	CurrentDate       time.Time          // Сегодняшняя дата на момент поиска
	NextAvailableDate *time.Time         // Найденная дата, nil если не найдена
	Period            string             // Человекочитаемый период до даты ("N day(s)" и т.п.)
	AvailableSlots    []types.TimeString // Свободные слоты найденной даты (при IncludeSlots)
}

// Found возвращает true, если доступная дата найдена
func (r *Response) Found() bool {
	return r.NextAvailableDate != nil
}
