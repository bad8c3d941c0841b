package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	doctorRepo "github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/doctor"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/slotcache"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// UseCase use case для получения свободных слотов врача на дату
type UseCase struct {
	doctorRepo      DoctorRepository
	scheduleService ScheduleService
	appointmentRepo AppointmentRepository
	cache           SlotCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil - тогда кэширование отключено
func NewUseCase(
	doctorRepo DoctorRepository,
	scheduleService ScheduleService,
	appointmentRepo AppointmentRepository,
	cache SlotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo:      doctorRepo,
		scheduleService: scheduleService,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s",
		req.DoctorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем кэш: результат для (врач, дата) живет несколько минут
	cacheKey := slotcache.Key(req.DoctorID, req.Date.Format(domain.DateFormat))
	if cached, ok := uc.lookupCache(ctx, cacheKey); ok {
		uc.logger.Info("GetAvailableSlots: cache hit for doctor=%d, date=%s",
			req.DoctorID, req.Date.Format(domain.DateFormat))
		return &Response{DoctorID: req.DoctorID, Date: req.Date, Slots: cached}, nil
	}

	// 3. Получаем врача
	doctor, err := uc.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("GetAvailableSlots: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 4. Резолвим смены на дату
	resolved, err := uc.scheduleService.ResolveShifts(ctx, req.DoctorID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve shifts: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve shifts: %v", ErrInternal, err)
	}

	// Врач не работает в эту дату - пустой результат тоже кэшируем
	if resolved.IsEmpty() {
		uc.logger.Info("GetAvailableSlots: doctor=%d has no shifts on %s",
			req.DoctorID, req.Date.Format(domain.DateFormat))
		uc.storeCache(ctx, cacheKey, nil)
		return &Response{DoctorID: req.DoctorID, Date: req.Date, Slots: []types.TimeString{}}, nil
	}

	// 5. Вычисляем длительность слота
	slotMinutes, err := uc.scheduleService.SlotMinutes(ctx, doctor, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slot minutes: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slot minutes: %v", ErrInternal, err)
	}

	// 6. Генерируем кандидатные слоты по сменам
	now := uc.timeProvider.Now()
	candidates := generateCandidateSlots(resolved, doctor, slotMinutes, req.Date, now)

	// 7. Получаем занятые времена и вычитаем их из кандидатов
	booked, err := uc.appointmentRepo.GetBookedTimes(ctx, req.DoctorID, req.Date, domain.ExcludedStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
	}

	open := subtractBooked(candidates, booked)

	// 8. Кэшируем и возвращаем результат
	uc.storeCache(ctx, cacheKey, open)

	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s, candidates=%d, booked=%d, open=%d",
		req.DoctorID, req.Date.Format(domain.DateFormat), len(candidates), len(booked), len(open))

	return &Response{DoctorID: req.DoctorID, Date: req.Date, Slots: open}, nil
}

// lookupCache читает кэш, трактуя любые ошибки как промах
func (uc *UseCase) lookupCache(ctx context.Context, key string) ([]types.TimeString, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache get failed for %s: %v", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	slots := make([]types.TimeString, 0, len(raw))
	for _, s := range raw {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			// Битая запись - пересчитываем заново
			uc.logger.Warn("GetAvailableSlots: corrupt cache entry %s: %v", key, err)
			return nil, false
		}
		slots = append(slots, ts)
	}
	return slots, true
}

// storeCache пишет в кэш best-effort: ошибка записи никогда не фатальна
func (uc *UseCase) storeCache(ctx context.Context, key string, slots []types.TimeString) {
	if uc.cache == nil {
		return
	}

	raw := make([]string, len(slots))
	for i, s := range slots {
		raw[i] = s.String()
	}
	if err := uc.cache.Set(ctx, key, raw); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache set failed for %s: %v", key, err)
	}
}
