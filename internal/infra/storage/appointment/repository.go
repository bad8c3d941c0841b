package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/psqlbuilder"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// Repository репозиторий для чтения записей на прием
// Ядро расчета доступности только читает записи, создание и изменение
// принадлежат внешнему booking-контуру
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBookedTimes получает занятые времена врача на дату в формате "HH:MM"
// Записи со статусами из excludedStatuses (отмененные и эквиваленты)
// слоты не занимают и в результат не входят. Результат дедуплицирован
// и отсортирован по возрастанию времени
func (r *Repository) GetBookedTimes(ctx context.Context, doctorID int64, date time.Time, excludedStatuses []domain.AppointmentStatus) ([]types.TimeString, error) {
	statusValues := make([]int, len(excludedStatuses))
	for i, s := range excludedStatuses {
		statusValues[i] = int(s)
	}

	query, args, err := psqlbuilder.Select("DISTINCT appointment_time").
		From("appointments").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Eq{"appointment_date": domain.DateOnly(date)}).
		Where(squirrel.NotEq{"status": statusValues}).
		OrderBy("appointment_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: GetBookedTimes - scan time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// GetCanceledFuture получает отмененные записи врача, чье время еще не прошло:
// дата строго позже сегодняшней, либо сегодня со временем позже текущего
func (r *Repository) GetCanceledFuture(ctx context.Context, doctorID int64, now time.Time) ([]*domain.Appointment, error) {
	today := domain.DateOnly(now)
	nowTime := types.NewTimeString(now)

	query, args, err := psqlbuilder.Select(
		"id",
		"doctor_id",
		"patient_id",
		"appointment_date",
		"appointment_time",
		"status",
	).
		From("appointments").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Eq{"status": int(domain.StatusCanceled)}).
		Where(squirrel.Or{
			squirrel.Gt{"appointment_date": today},
			squirrel.And{
				squirrel.Eq{"appointment_date": today},
				squirrel.Gt{"appointment_time": nowTime},
			},
		}).
		OrderBy("appointment_date ASC, appointment_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCanceledFuture - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCanceledFuture - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		var a domain.Appointment
		err := rows.Scan(
			&a.ID,
			&a.DoctorID,
			&a.PatientID,
			&a.AppointmentDate,
			&a.AppointmentTime,
			&a.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetCanceledFuture - scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCanceledFuture - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// IsSlotRebooked проверяет, занят ли слот (дата, время) неотмененной записью
// Используется при переиспользовании слотов отмененных записей
func (r *Repository) IsSlotRebooked(ctx context.Context, doctorID int64, date time.Time, slot types.TimeString) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Eq{"appointment_date": domain.DateOnly(date)}).
		Where(squirrel.Eq{"appointment_time": slot}).
		Where(squirrel.NotEq{"status": int(domain.StatusCanceled)}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsSlotRebooked - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsSlotRebooked - scan result: %v", ErrScanRow, err)
	}

	return true, nil
}
