package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/hodaifayahia/AppointmentSystem-maine/internal/domain"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/psqlbuilder"
)

// Repository репозиторий для чтения справочных данных врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает врача по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"time_slot",
		"patients_based_on_time",
	).
		From("doctors").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var doctor domain.Doctor
	var timeSlot sql.NullInt64
	var patientsBasedOnTime sql.NullBool

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&doctor.ID,
		&timeSlot,
		&patientsBasedOnTime,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan doctor: %v", ErrScanRow, err)
	}

	if timeSlot.Valid {
		v := int(timeSlot.Int64)
		doctor.TimeSlotMinutes = &v
	}
	doctor.PatientsBasedOnTime = patientsBasedOnTime.Bool

	return &doctor, nil
}
