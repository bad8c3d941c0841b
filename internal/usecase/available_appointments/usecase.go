package available_appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/doctor"
	scheduleService "github.com/hodaifayahia/AppointmentSystem-maine/internal/service/schedule"
	checkAvailability "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/check_availability"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// UseCase подбор слотов, освободившихся из-за отмен
// Отмененная запись в будущем - шанс предложить пациенту время раньше
// обычной очереди, если слот все еще вписывается в расписание врача
// и не был перезанят другой записью
type UseCase struct {
	doctorRepo          DoctorRepository
	scheduleService     ScheduleService
	exclusionRepo       ExclusionRepository
	monthRepo           MonthRepository
	appointmentRepo     AppointmentRepository
	availabilityUseCase AvailabilityUseCase
	timeProvider        TimeProvider
	logger              Logger
}

func New(
	doctorRepo DoctorRepository,
	scheduleSvc ScheduleService,
	exclusionRepo ExclusionRepository,
	monthRepo MonthRepository,
	appointmentRepo AppointmentRepository,
	availabilityUseCase AvailabilityUseCase,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo:          doctorRepo,
		scheduleService:     scheduleSvc,
		exclusionRepo:       exclusionRepo,
		monthRepo:           monthRepo,
		appointmentRepo:     appointmentRepo,
		availabilityUseCase: availabilityUseCase,
		timeProvider:        timeProvider,
		logger:              logger,
	}
}

// Execute собирает пригодные к повторному использованию отмененные слоты
// врача, сгруппированные по датам, и обычный результат поиска ближайшей
// доступной даты для сравнения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AvailableAppointments.Execute - invalid request: %v", err)
		return nil, err
	}

	// 2. Проверка существования врача
	if _, err := uc.doctorRepo.GetByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			uc.logger.Warn("AvailableAppointments.Execute - doctor %d not found", req.DoctorID)
			return nil, fmt.Errorf("%w: doctor %d", ErrDoctorNotFound, req.DoctorID)
		}
		uc.logger.Error("AvailableAppointments.Execute - failed to get doctor %d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 3. Будущие отмененные записи
	canceled, err := uc.appointmentRepo.GetCanceledFuture(ctx, req.DoctorID, now)
	if err != nil {
		uc.logger.Error("AvailableAppointments.Execute - failed to get canceled appointments for doctor %d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get canceled appointments: %v", ErrInternal, err)
	}

	// 4. Отбор пригодных слотов по датам
	days, err := uc.collectReusableDays(ctx, req.DoctorID, canceled)
	if err != nil {
		return nil, err
	}

	// 5. Обычный результат поиска для сравнения
	normal, err := uc.availabilityUseCase.Execute(ctx, &checkAvailability.Request{
		DoctorID:     req.DoctorID,
		IncludeSlots: true,
	})
	if err != nil {
		uc.logger.Error("AvailableAppointments.Execute - availability search failed for doctor %d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: availability search failed: %v", ErrInternal, err)
	}

	uc.logger.Info("AvailableAppointments.Execute - doctor %d: %d dates with reusable canceled slots",
		req.DoctorID, len(days))

	return &Response{
		DoctorID:             req.DoctorID,
		CanceledAppointments: days,
		NormalAppointment:    normal,
	}, nil
}

// collectReusableDays группирует отмененные записи по датам и оставляет
// только слоты, которые можно предложить заново: дата пригодна, слот
// внутри текущих рабочих часов и не перезанят другой записью
func (uc *UseCase) collectReusableDays(ctx context.Context, doctorID int64, canceled []*domain.Appointment) ([]CanceledDay, error) {
	if len(canceled) == 0 {
		return []CanceledDay{}, nil
	}

	exclusions, err := uc.exclusionRepo.GetCompleteFor(ctx, doctorID)
	if err != nil {
		uc.logger.Error("AvailableAppointments.collectReusableDays - failed to get exclusions for doctor %d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: failed to get exclusions: %v", ErrInternal, err)
	}

	byDate := make(map[time.Time][]*domain.Appointment)
	for _, a := range canceled {
		key := domain.DateOnly(a.AppointmentDate)
		byDate[key] = append(byDate[key], a)
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	days := make([]CanceledDay, 0, len(dates))
	for _, date := range dates {
		monthOK, err := uc.monthRepo.IsAvailable(ctx, doctorID, date.Year(), int(date.Month()))
		if err != nil {
			uc.logger.Error("AvailableAppointments.collectReusableDays - failed to check month for doctor %d: %v", doctorID, err)
			return nil, fmt.Errorf("%w: failed to check month availability: %v", ErrInternal, err)
		}
		if !monthOK {
			continue
		}
		if scheduleService.MatchesCompleteExclusion(exclusions, date) {
			continue
		}

		resolved, err := uc.scheduleService.ResolveShifts(ctx, doctorID, date)
		if err != nil {
			uc.logger.Error("AvailableAppointments.collectReusableDays - failed to resolve shifts for doctor %d: %v", doctorID, err)
			return nil, fmt.Errorf("%w: failed to resolve shifts: %v", ErrInternal, err)
		}
		if resolved.IsEmpty() {
			continue
		}

		slots, err := uc.reusableSlots(ctx, doctorID, date, resolved, byDate[date])
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			days = append(days, CanceledDay{Date: date, Slots: slots})
		}
	}

	return days, nil
}

// reusableSlots отбирает времена отмененных записей одной даты:
// слот внутри какой-либо смены и не занят неотмененной записью
func (uc *UseCase) reusableSlots(ctx context.Context, doctorID int64, date time.Time, resolved *domain.ResolvedShifts, appointments []*domain.Appointment) ([]types.TimeString, error) {
	seen := make(map[types.TimeString]bool, len(appointments))
	slots := make([]types.TimeString, 0, len(appointments))

	for _, a := range appointments {
		if seen[a.AppointmentTime] {
			continue
		}
		seen[a.AppointmentTime] = true

		if !withinShifts(resolved, a.AppointmentTime) {
			continue
		}

		rebooked, err := uc.appointmentRepo.IsSlotRebooked(ctx, doctorID, date, a.AppointmentTime)
		if err != nil {
			uc.logger.Error("AvailableAppointments.reusableSlots - failed to check slot %s for doctor %d: %v", a.AppointmentTime, doctorID, err)
			return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if rebooked {
			continue
		}

		slots = append(slots, a.AppointmentTime)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].IsBefore(slots[j]) })
	return slots, nil
}

// withinShifts проверяет, что слот попадает в одну из смен: [start, end)
func withinShifts(resolved *domain.ResolvedShifts, slot types.TimeString) bool {
	for _, shift := range resolved.All() {
		if !slot.IsBefore(shift.StartTime) && slot.IsBefore(shift.EndTime) {
			return true
		}
	}
	return false
}
