package force_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/api/handlers"
	forceSlots "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/force_slots"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgInvalidParams   = "некорректные параметры запроса"
	msgDoctorNotFound  = "врач не найден"
)

type Handler struct {
	useCase ForceSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ForceSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/force-slots
// Query params: date (YYYY-MM-DD) либо days - оба опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем doctorId из URL
	doctorIDStr := vars["doctorId"]
	doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /doctors/{doctorId}/force-slots - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	// Формируем запрос к use case из query параметров
	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(doctorID, query.Get("date"), query.Get("days"))
	if err != nil {
		h.logger.Warn("GET /doctors/{doctorId}/force-slots - Invalid query params: doctor_id=%d, error=%v", doctorID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, forceSlots.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{doctorId}/force-slots - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, forceSlots.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{doctorId}/force-slots - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /doctors/{doctorId}/force-slots - Failed to get force slots: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /doctors/{doctorId}/force-slots - Force slots retrieved: doctor_id=%d, gap_count=%d, additional_count=%d",
		doctorID, len(result.GapSlots), len(result.AdditionalSlots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
