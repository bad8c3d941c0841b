package domain

// Default configuration values
const (
	// DefaultSlotMinutes длительность слота, когда ее нельзя вывести из расписания
	DefaultSlotMinutes = 30

	// MinSlotMinutes нижняя граница длительности слота
	// Защита от нулевого шага при patients > minutes
	MinSlotMinutes = 1

	// SameDayBufferMinutes буфер от текущего времени для слотов на сегодня
	SameDayBufferMinutes = 5
)

// Force-appointment defaults
const (
	DefaultForceStartTime = "08:00"
	DefaultForceEndTime   = "17:00"

	// AdditionalSlotCount число дополнительных слотов после конца смены
	AdditionalSlotCount = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Period formatting thresholds
const (
	DaysPerYear  = 365
	DaysPerMonth = 30
)
