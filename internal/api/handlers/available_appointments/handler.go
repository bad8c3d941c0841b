package available_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/api/handlers"
	availableAppointments "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/available_appointments"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgDoctorNotFound  = "врач не найден"
)

type Handler struct {
	useCase AvailableAppointmentsUseCase
	logger  Logger
}

func NewHandler(useCase AvailableAppointmentsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/available-appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем doctorId из URL
	doctorIDStr := vars["doctorId"]
	doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /doctors/{doctorId}/available-appointments - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &availableAppointments.Request{DoctorID: doctorID})
	if err != nil {
		switch {
		case errors.Is(err, availableAppointments.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{doctorId}/available-appointments - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, availableAppointments.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{doctorId}/available-appointments - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidDoctorID)

		default:
			h.logger.Error("GET /doctors/{doctorId}/available-appointments - Failed to get appointments: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /doctors/{doctorId}/available-appointments - Retrieved successfully: doctor_id=%d, canceled_dates=%d",
		doctorID, len(result.CanceledAppointments))
	handlers.RespondJSON(w, http.StatusOK, response)
}
