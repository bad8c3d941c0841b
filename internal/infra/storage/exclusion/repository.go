package exclusion

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/psqlbuilder"
)

// Repository репозиторий для чтения периодов исключений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var exclusionColumns = []string{
	"id",
	"doctor_id",
	"start_date",
	"end_date",
	"exclusion_type",
	"start_time",
	"end_time",
	"number_of_patients_per_day",
	"shift_period",
	"is_active",
}

// GetLimitedFor получает активные limited-исключения врача, действующие на дату
// Условие по датам: start_date <= date AND (end_date IS NULL OR end_date >= date)
func (r *Repository) GetLimitedFor(ctx context.Context, doctorID int64, date time.Time) ([]*domain.ExcludedDate, error) {
	d := domain.DateOnly(date)

	query, args, err := psqlbuilder.Select(exclusionColumns...).
		From("excluded_dates").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Eq{"exclusion_type": domain.ExclusionLimited}).
		Where(squirrel.LtOrEq{"start_date": d}).
		Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": d},
		}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("shift_period ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLimitedFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLimitedFor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanExclusions(rows)
}

// GetCompleteFor получает активные complete-исключения врача,
// включая глобальные записи (doctor_id IS NULL), действующие для всех врачей
func (r *Repository) GetCompleteFor(ctx context.Context, doctorID int64) ([]*domain.ExcludedDate, error) {
	query, args, err := psqlbuilder.Select(exclusionColumns...).
		From("excluded_dates").
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"doctor_id": doctorID},
				squirrel.Eq{"exclusion_type": domain.ExclusionComplete},
			},
			squirrel.Eq{"doctor_id": nil},
		}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCompleteFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCompleteFor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanExclusions(rows)
}

// scanExclusions сканирует строки результата в доменные модели
func (r *Repository) scanExclusions(rows *sql.Rows) ([]*domain.ExcludedDate, error) {
	exclusions := make([]*domain.ExcludedDate, 0)

	for rows.Next() {
		var e domain.ExcludedDate
		var doctorID sql.NullInt64
		var endDate sql.NullTime
		var patients sql.NullInt64
		var shiftPeriod sql.NullString

		err := rows.Scan(
			&e.ID,
			&doctorID,
			&e.StartDate,
			&endDate,
			&e.ExclusionType,
			&e.StartTime,
			&e.EndTime,
			&patients,
			&shiftPeriod,
			&e.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanExclusions - scan exclusion: %v", ErrScanRow, err)
		}

		if doctorID.Valid {
			v := doctorID.Int64
			e.DoctorID = &v
		}
		if endDate.Valid {
			v := endDate.Time
			e.EndDate = &v
		}
		if patients.Valid {
			v := int(patients.Int64)
			e.NumberOfPatientsPerDay = &v
		}
		if shiftPeriod.Valid {
			e.ShiftPeriod = domain.ShiftPeriod(shiftPeriod.String)
		}

		exclusions = append(exclusions, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanExclusions - rows error: %v", ErrScanRow, err)
	}

	return exclusions, nil
}
