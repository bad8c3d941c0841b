package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/psqlbuilder"
)

// Repository репозиторий для чтения расписаний врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var scheduleColumns = []string{
	"id",
	"doctor_id",
	"shift_period",
	"start_time",
	"end_time",
	"number_of_patients_per_day",
	"day_of_week",
	"date",
	"is_active",
}

// GetForDoctorAndDate получает активные смены врача, применимые к дате:
// правила на конкретную дату (date == указанной) и еженедельные правила
// (date IS NULL, day_of_week == дню недели даты)
func (r *Repository) GetForDoctorAndDate(ctx context.Context, doctorID int64, date time.Time, dayOfWeek domain.DayOfWeek) ([]*domain.Schedule, error) {
	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"date": domain.DateOnly(date)},
			squirrel.And{
				squirrel.Eq{"date": nil},
				squirrel.Eq{"day_of_week": int(dayOfWeek)},
			},
		}).
		OrderBy("shift_period ASC, date ASC NULLS LAST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForDoctorAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDoctorAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSchedules(rows)
}

// HasActiveSchedule проверяет, есть ли у врача хоть одно активное расписание
func (r *Repository) HasActiveSchedule(ctx context.Context, doctorID int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("schedules").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Eq{"is_active": true}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveSchedule - scan result: %v", ErrScanRow, err)
	}

	return true, nil
}

// scanSchedules сканирует строки результата в доменные модели
func (r *Repository) scanSchedules(rows *sql.Rows) ([]*domain.Schedule, error) {
	schedules := make([]*domain.Schedule, 0)

	for rows.Next() {
		var s domain.Schedule
		var patients sql.NullInt64
		var dayOfWeek sql.NullInt64
		var date sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.DoctorID,
			&s.ShiftPeriod,
			&s.StartTime,
			&s.EndTime,
			&patients,
			&dayOfWeek,
			&date,
			&s.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSchedules - scan schedule: %v", ErrScanRow, err)
		}

		if patients.Valid {
			v := int(patients.Int64)
			s.NumberOfPatientsPerDay = &v
		}
		if dayOfWeek.Valid {
			v := domain.DayOfWeek(dayOfWeek.Int64)
			s.DayOfWeek = &v
		}
		if date.Valid {
			v := date.Time
			s.Date = &v
		}

		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}
