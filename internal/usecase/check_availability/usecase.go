package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/doctor"
	getAvailableSlots "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/get_available_slots"
)

// UseCase поиск ближайшей доступной даты приема врача
type UseCase struct {
	doctorRepo      DoctorRepository
	scheduleService ScheduleService
	exclusionRepo   ExclusionRepository
	monthRepo       MonthRepository
	slotsUseCase    SlotsUseCase
	timeProvider    TimeProvider
	logger          Logger
}

func New(
	doctorRepo DoctorRepository,
	scheduleService ScheduleService,
	exclusionRepo ExclusionRepository,
	monthRepo MonthRepository,
	slotsUseCase SlotsUseCase,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo:      doctorRepo,
		scheduleService: scheduleService,
		exclusionRepo:   exclusionRepo,
		monthRepo:       monthRepo,
		slotsUseCase:    slotsUseCase,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute ищет ближайшую дату со свободным слотом
//
// Точка отсчета: явная дата запроса, либо сегодня + days.
// При range_days > 0 поиск ограничен окном вокруг точки отсчета,
// иначе идет вперед до конца текущего года
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability.Execute - invalid request: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	today := domain.DateOnly(now)

	// 2. Проверка существования врача
	if _, err := uc.doctorRepo.GetByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			uc.logger.Warn("CheckAvailability.Execute - doctor %d not found", req.DoctorID)
			return nil, fmt.Errorf("%w: doctor %d", ErrDoctorNotFound, req.DoctorID)
		}
		uc.logger.Error("CheckAvailability.Execute - failed to get doctor %d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 3. Точка отсчета поиска
	startDate := today.AddDate(0, 0, req.Days)
	if req.Date != nil {
		startDate = domain.DateOnly(*req.Date)
	}

	// 4. Предзагрузка флагов месяцев и complete-исключений
	sc, err := uc.prepareSearch(ctx, req.DoctorID, now)
	if err != nil {
		uc.logger.Error("CheckAvailability.Execute - failed to prepare search for doctor %d: %v", req.DoctorID, err)
		return nil, err
	}

	// 5. Поиск: ограниченное окно либо проход до конца года
	var found *time.Time
	if req.RangeDays > 0 {
		found, err = uc.findWithinRange(ctx, sc, startDate, req.RangeDays)
	} else {
		found, err = uc.findUnbounded(ctx, sc, startDate)
	}
	if err != nil {
		uc.logger.Error("CheckAvailability.Execute - search failed for doctor %d: %v", req.DoctorID, err)
		return nil, err
	}

	resp := &Response{
		CurrentDate:       today,
		NextAvailableDate: found,
	}

	if found == nil {
		uc.logger.Info("CheckAvailability.Execute - no available date for doctor %d from %s", req.DoctorID, startDate.Format(domain.DateFormat))
		return resp, nil
	}

	// 6. Период ожидания от сегодня до найденной даты
	resp.Period = formatPeriod(daysBetween(*found, today))

	// 7. Свободные слоты найденной даты по запросу
	if req.IncludeSlots {
		slots, err := uc.slotsUseCase.Execute(ctx, &getAvailableSlots.Request{
			DoctorID: req.DoctorID,
			Date:     *found,
		})
		if err != nil {
			uc.logger.Error("CheckAvailability.Execute - failed to get slots for doctor %d on %s: %v", req.DoctorID, found.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}
		resp.AvailableSlots = slots.Slots
	}

	uc.logger.Info("CheckAvailability.Execute - doctor %d next available %s (%s)", req.DoctorID, found.Format(domain.DateFormat), resp.Period)
	return resp, nil
}
