package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/api/handlers"
	checkAvailability "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/check_availability"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgInvalidParams   = "некорректные параметры запроса"
	msgDoctorNotFound  = "врач не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/check-availability
// Query params: date (YYYY-MM-DD), days, range, include_slots - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем doctorId из URL
	doctorIDStr := vars["doctorId"]
	doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /doctors/{doctorId}/check-availability - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	// Формируем запрос к use case из query параметров
	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(
		doctorID,
		query.Get("date"),
		query.Get("days"),
		query.Get("range"),
		query.Get("include_slots"),
	)
	if err != nil {
		h.logger.Warn("GET /doctors/{doctorId}/check-availability - Invalid query params: doctor_id=%d, error=%v", doctorID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{doctorId}/check-availability - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{doctorId}/check-availability - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /doctors/{doctorId}/check-availability - Failed to check availability: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	if result.Found() {
		h.logger.Info("GET /doctors/{doctorId}/check-availability - Next available date found: doctor_id=%d, date=%s, period=%s",
			doctorID, *response.NextAvailableDate, result.Period)
	} else {
		h.logger.Info("GET /doctors/{doctorId}/check-availability - No available date: doctor_id=%d", doctorID)
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}
