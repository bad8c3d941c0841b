package force_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/doctor"
	"github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/forcer"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// UseCase подбор форсированных слотов вне обычной сетки
// Используется персоналом регистратуры, когда пациента нужно
// записать сверх обычного расписания врача
type UseCase struct {
	doctorRepo      DoctorRepository
	forcerRepo      ForcerRepository
	scheduleRepo    ScheduleRepository
	scheduleService ScheduleService
	exclusionRepo   ExclusionRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

func New(
	doctorRepo DoctorRepository,
	forcerRepo ForcerRepository,
	scheduleRepo ScheduleRepository,
	scheduleService ScheduleService,
	exclusionRepo ExclusionRepository,
	appointmentRepo AppointmentRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo:      doctorRepo,
		forcerRepo:      forcerRepo,
		scheduleRepo:    scheduleRepo,
		scheduleService: scheduleService,
		exclusionRepo:   exclusionRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute подбирает форсированные слоты врача на дату
//
// Два режима:
//   - смен на дату нет либо действует limited-исключение: дефолтная сетка
//     из настроек форсирования (иначе 08:00-17:00) за вычетом занятых времен
//   - смены есть: слоты в разрыве между сменами плюс фиксированное число
//     дополнительных слотов после конца последней смены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ForceSlots.Execute - invalid request: %v", err)
		return nil, err
	}

	// 2. Целевая дата: явная либо сегодня + days
	now := uc.timeProvider.Now()
	date := domain.DateOnly(now).AddDate(0, 0, req.Days)
	if req.Date != nil {
		date = domain.DateOnly(*req.Date)
	}

	// 3. Проверка существования врача
	doc, err := uc.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			uc.logger.Warn("ForceSlots.Execute - doctor %d not found", req.DoctorID)
			return nil, fmt.Errorf("%w: doctor %d", ErrDoctorNotFound, req.DoctorID)
		}
		uc.logger.Error("ForceSlots.Execute - failed to get doctor %d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 4. Занятые времена на дату
	booked, err := uc.appointmentRepo.GetBookedTimes(ctx, req.DoctorID, date, domain.ExcludedStatuses)
	if err != nil {
		uc.logger.Error("ForceSlots.Execute - failed to get booked times for doctor %d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
	}

	// 5. Врач вообще без активного расписания сразу получает дефолтную сетку
	hasSchedule, err := uc.scheduleRepo.HasActiveSchedule(ctx, req.DoctorID)
	if err != nil {
		uc.logger.Error("ForceSlots.Execute - failed to check schedules for doctor %d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to check schedules: %v", ErrInternal, err)
	}
	if !hasSchedule {
		return uc.executeDefaultGrid(ctx, doc, date, booked)
	}

	// 6. Смены и наличие limited-исключения на дату
	limited, err := uc.exclusionRepo.GetLimitedFor(ctx, req.DoctorID, date)
	if err != nil {
		uc.logger.Error("ForceSlots.Execute - failed to get exclusions for doctor %d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get exclusions: %v", ErrInternal, err)
	}

	resolved, err := uc.scheduleService.ResolveShifts(ctx, req.DoctorID, date)
	if err != nil {
		uc.logger.Error("ForceSlots.Execute - failed to resolve shifts for doctor %d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to resolve shifts: %v", ErrInternal, err)
	}

	// 7. Выбор режима генерации
	if resolved.IsEmpty() || len(limited) > 0 {
		return uc.executeDefaultGrid(ctx, doc, date, booked)
	}
	return uc.executeShiftBased(ctx, doc, date, resolved, booked)
}

// executeDefaultGrid строит слоты дефолтной сетки, когда опереться
// на обычные смены нельзя
func (uc *UseCase) executeDefaultGrid(ctx context.Context, doc *domain.Doctor, date time.Time, booked []types.TimeString) (*Response, error) {
	start, _ := types.NewTimeStringFromString(domain.DefaultForceStartTime)
	end, _ := types.NewTimeStringFromString(domain.DefaultForceEndTime)

	var patients *int
	f, err := uc.forcerRepo.GetByDoctorID(ctx, doc.ID)
	switch {
	case err == nil:
		if f.HasExplicitWindow() {
			start = *f.StartTime
			end = *f.EndTime
		}
		patients = f.NumberOfPatients
	case errors.Is(err, forcer.ErrForcerNotFound):
		// Настроек форсирования нет, остаются дефолты
	default:
		uc.logger.Error("ForceSlots.executeDefaultGrid - failed to get forcer for doctor %d: %v", doc.ID, err)
		return nil, fmt.Errorf("%w: failed to get forcer: %v", ErrInternal, err)
	}

	slotMinutes, err := uc.gridSlotMinutes(ctx, doc, date, start, end, patients)
	if err != nil {
		return nil, err
	}

	open := subtractBooked(defaultGrid(start, end, slotMinutes), booked)

	uc.logger.Info("ForceSlots.executeDefaultGrid - doctor %d date %s: %d default slots",
		doc.ID, date.Format(domain.DateFormat), len(open))

	return &Response{
		DoctorID:        doc.ID,
		Date:            date,
		SlotMinutes:     slotMinutes,
		GapSlots:        []types.TimeString{},
		AdditionalSlots: open,
	}, nil
}

// gridSlotMinutes вычисляет шаг дефолтной сетки
// Явное число пациентов форсирования делит окно поровну,
// иначе берется обычная длительность слота врача
func (uc *UseCase) gridSlotMinutes(ctx context.Context, doc *domain.Doctor, date time.Time, start, end types.TimeString, patients *int) (int, error) {
	if patients != nil && *patients > 0 {
		window, err := start.MinutesBetween(end)
		if err != nil {
			uc.logger.Error("ForceSlots.gridSlotMinutes - invalid forcer window for doctor %d: %v", doc.ID, err)
			return 0, fmt.Errorf("%w: invalid forcer window: %v", ErrInternal, err)
		}
		minutes := window / *patients
		if minutes < domain.MinSlotMinutes {
			minutes = domain.MinSlotMinutes
		}
		return minutes, nil
	}

	minutes, err := uc.scheduleService.SlotMinutes(ctx, doc, date)
	if err != nil {
		uc.logger.Error("ForceSlots.gridSlotMinutes - failed to get slot minutes for doctor %d: %v", doc.ID, err)
		return 0, fmt.Errorf("%w: failed to get slot minutes: %v", ErrInternal, err)
	}
	return minutes, nil
}

// executeShiftBased строит слоты в разрыве между сменами
// и дополнительные слоты после последней смены
func (uc *UseCase) executeShiftBased(ctx context.Context, doc *domain.Doctor, date time.Time, resolved *domain.ResolvedShifts, booked []types.TimeString) (*Response, error) {
	slotMinutes, err := uc.scheduleService.SlotMinutes(ctx, doc, date)
	if err != nil {
		uc.logger.Error("ForceSlots.executeShiftBased - failed to get slot minutes for doctor %d: %v", doc.ID, err)
		return nil, fmt.Errorf("%w: failed to get slot minutes: %v", ErrInternal, err)
	}

	gap := subtractBooked(gapSlots(resolved, slotMinutes), booked)
	additional := subtractBooked(additionalSlots(resolved, slotMinutes, domain.AdditionalSlotCount), booked)

	uc.logger.Info("ForceSlots.executeShiftBased - doctor %d date %s: %d gap slots, %d additional slots",
		doc.ID, date.Format(domain.DateFormat), len(gap), len(additional))

	return &Response{
		DoctorID:        doc.ID,
		Date:            date,
		SlotMinutes:     slotMinutes,
		GapSlots:        gap,
		AdditionalSlots: additional,
	}, nil
}
