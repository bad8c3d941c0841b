package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	doctorRepo "github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/doctor"
	getAvailableSlots "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/get_available_slots"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

type fakeDoctorRepo struct {
	doctors map[int64]*domain.Doctor
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id int64) (*domain.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	return d, nil
}

// fakeWorld описывает доступность врача по датам для поиска
// Ключ - дата в формате YYYY-MM-DD, значение - свободные слоты
type fakeWorld struct {
	openSlots  map[string][]types.TimeString
	months     map[int]map[int]bool
	exclusions []*domain.ExcludedDate
	slotCalls  []string
}

func (w *fakeWorld) ResolveShifts(_ context.Context, _ int64, date time.Time) (*domain.ResolvedShifts, error) {
	if _, ok := w.openSlots[date.Format(domain.DateFormat)]; !ok {
		return &domain.ResolvedShifts{}, nil
	}
	return &domain.ResolvedShifts{
		Morning: &domain.Schedule{
			ShiftPeriod: domain.ShiftMorning,
			StartTime:   "08:00",
			EndTime:     "12:00",
			IsActive:    true,
		},
	}, nil
}

func (w *fakeWorld) GetCompleteFor(_ context.Context, _ int64) ([]*domain.ExcludedDate, error) {
	return w.exclusions, nil
}

func (w *fakeWorld) GetAvailableFrom(_ context.Context, _ int64, _ int) (map[int]map[int]bool, error) {
	return w.months, nil
}

func (w *fakeWorld) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	key := req.Date.Format(domain.DateFormat)
	w.slotCalls = append(w.slotCalls, key)
	return &getAvailableSlots.Response{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Slots:    w.openSlots[key],
	}, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func allMonthsAvailable() map[int]map[int]bool {
	months := map[int]map[int]bool{2026: {}}
	for m := 1; m <= 12; m++ {
		months[2026][m] = true
	}
	return months
}

func newTestUseCase(world *fakeWorld) *UseCase {
	return New(
		&fakeDoctorRepo{doctors: map[int64]*domain.Doctor{1: {ID: 1}}},
		world,
		world,
		world,
		world,
		&fakeTimeProvider{now: testNow},
		noopLogger{},
	)
}

func date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExecute_FindsFirstDateWithOpenSlots(t *testing.T) {
	world := &fakeWorld{
		openSlots: map[string][]types.TimeString{
			"2026-09-05": {"09:00", "09:30"},
			"2026-09-08": {"10:00"},
		},
		months: allMonthsAvailable(),
	}
	uc := newTestUseCase(world)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1})
	require.NoError(t, err)
	require.True(t, resp.Found())
	assert.Equal(t, "2026-09-05", resp.NextAvailableDate.Format(domain.DateFormat))
	assert.Equal(t, "4 day(s)", resp.Period)
	assert.Equal(t, date("2026-09-01"), resp.CurrentDate)
}

func TestExecute_SkipsFullyBookedDates(t *testing.T) {
	world := &fakeWorld{
		openSlots: map[string][]types.TimeString{
			"2026-09-02": {}, // смены есть, но все занято
			"2026-09-03": {"11:00"},
		},
		months: allMonthsAvailable(),
	}
	uc := newTestUseCase(world)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1})
	require.NoError(t, err)
	require.True(t, resp.Found())
	assert.Equal(t, "2026-09-03", resp.NextAvailableDate.Format(domain.DateFormat))
}

func TestExecute_UnavailableMonthSkippedWithoutSlotQueries(t *testing.T) {
	world := &fakeWorld{
		openSlots: map[string][]types.TimeString{
			"2026-09-15": {"09:00"}, // сентябрь закрыт, дата не должна найтись
			"2026-10-03": {"09:00"},
		},
		months: map[int]map[int]bool{2026: {10: true}},
	}
	uc := newTestUseCase(world)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1})
	require.NoError(t, err)
	require.True(t, resp.Found())
	assert.Equal(t, "2026-10-03", resp.NextAvailableDate.Format(domain.DateFormat))

	// Даты закрытого месяца не должны доходить до расчета слотов
	for _, call := range world.slotCalls {
		assert.NotContains(t, call, "2026-09")
	}
}

func TestExecute_CompleteExclusionSkipsDate(t *testing.T) {
	world := &fakeWorld{
		openSlots: map[string][]types.TimeString{
			"2026-09-05": {"09:00"},
			"2026-09-06": {"09:00"},
		},
		months: allMonthsAvailable(),
		exclusions: []*domain.ExcludedDate{{
			StartDate:     date("2026-09-05"),
			ExclusionType: domain.ExclusionComplete,
			IsActive:      true,
		}},
	}
	uc := newTestUseCase(world)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1})
	require.NoError(t, err)
	require.True(t, resp.Found())
	assert.Equal(t, "2026-09-06", resp.NextAvailableDate.Format(domain.DateFormat))
}

func TestExecute_ExhaustedSearchReturnsNil(t *testing.T) {
	world := &fakeWorld{
		openSlots: map[string][]types.TimeString{},
		months:    allMonthsAvailable(),
	}
	uc := newTestUseCase(world)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1})
	require.NoError(t, err)
	assert.False(t, resp.Found())
	assert.Nil(t, resp.NextAvailableDate)
	assert.Empty(t, resp.Period)
}

func TestExecute_StartsFromDaysOffset(t *testing.T) {
	world := &fakeWorld{
		openSlots: map[string][]types.TimeString{
			"2026-09-03": {"09:00"},
			"2026-09-20": {"09:00"},
		},
		months: allMonthsAvailable(),
	}
	uc := newTestUseCase(world)

	// Старт с сегодня + 10 дней: дата 03.09 уже позади точки старта
	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Days: 10})
	require.NoError(t, err)
	require.True(t, resp.Found())
	assert.Equal(t, "2026-09-20", resp.NextAvailableDate.Format(domain.DateFormat))
}

func TestExecute_BoundedRangeFindsEarliestInWindow(t *testing.T) {
	world := &fakeWorld{
		openSlots: map[string][]types.TimeString{
			"2026-09-08": {"09:00"},
			"2026-09-12": {"09:00"},
		},
		months: allMonthsAvailable(),
	}
	uc := newTestUseCase(world)

	start := date("2026-09-10")
	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: &start, RangeDays: 3})
	require.NoError(t, err)
	require.True(t, resp.Found())
	// Окно [07.09, 13.09]: самая ранняя пригодная дата 08.09
	assert.Equal(t, "2026-09-08", resp.NextAvailableDate.Format(domain.DateFormat))
}

func TestExecute_BoundedRangeSkipsPastDates(t *testing.T) {
	world := &fakeWorld{
		openSlots: map[string][]types.TimeString{
			"2026-08-30": {"09:00"}, // в прошлом
			"2026-09-02": {"09:00"},
		},
		months: allMonthsAvailable(),
	}
	uc := newTestUseCase(world)

	start := date("2026-09-01")
	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: &start, RangeDays: 2})
	require.NoError(t, err)
	require.True(t, resp.Found())
	assert.Equal(t, "2026-09-02", resp.NextAvailableDate.Format(domain.DateFormat))
}

func TestExecute_BoundedRangeExhausted(t *testing.T) {
	world := &fakeWorld{
		openSlots: map[string][]types.TimeString{
			"2026-09-20": {"09:00"},
		},
		months: allMonthsAvailable(),
	}
	uc := newTestUseCase(world)

	start := date("2026-09-10")
	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: &start, RangeDays: 2})
	require.NoError(t, err)
	assert.False(t, resp.Found())
}

func TestExecute_IncludeSlotsAttachesSlots(t *testing.T) {
	world := &fakeWorld{
		openSlots: map[string][]types.TimeString{
			"2026-09-05": {"09:00", "09:30"},
		},
		months: allMonthsAvailable(),
	}
	uc := newTestUseCase(world)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, IncludeSlots: true})
	require.NoError(t, err)
	require.True(t, resp.Found())
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.AvailableSlots)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeWorld{months: allMonthsAvailable()})

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 999})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeWorld{})

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{DoctorID: 1, Days: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{DoctorID: 1, RangeDays: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
