package forcer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/psqlbuilder"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/types"
)

// Repository репозиторий для чтения настроек принудительной записи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек принудительной записи
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDoctorID получает настройки принудительной записи врача
func (r *Repository) GetByDoctorID(ctx context.Context, doctorID int64) (*domain.AppointmentForcer, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"doctor_id",
		"start_time",
		"end_time",
		"number_of_patients",
	).
		From("appointment_forcers").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorID - build select query: %v", ErrBuildQuery, err)
	}

	var f domain.AppointmentForcer
	var startTime, endTime sql.NullString
	var patients sql.NullInt64

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&f.ID,
		&f.DoctorID,
		&startTime,
		&endTime,
		&patients,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrForcerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorID - scan forcer: %v", ErrScanRow, err)
	}

	if startTime.Valid {
		ts, err := types.NewTimeStringFromString(startTime.String)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDoctorID - invalid start_time: %v", ErrScanRow, err)
		}
		f.StartTime = &ts
	}
	if endTime.Valid {
		ts, err := types.NewTimeStringFromString(endTime.String)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDoctorID - invalid end_time: %v", ErrScanRow, err)
		}
		f.EndTime = &ts
	}
	if patients.Valid {
		v := int(patients.Int64)
		f.NumberOfPatients = &v
	}

	return &f, nil
}
