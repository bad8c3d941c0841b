package availablemonth

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/psqlbuilder"
)

// Repository репозиторий для чтения флагов доступности месяцев
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория флагов месяцев
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsAvailable проверяет наличие флага is_available=true для (врач, год, месяц)
func (r *Repository) IsAvailable(ctx context.Context, doctorID int64, year, month int) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("appointment_available_months").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Eq{"year": year}).
		Where(squirrel.Eq{"month": month}).
		Where(squirrel.Eq{"is_available": true}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsAvailable - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsAvailable - scan result: %v", ErrScanRow, err)
	}

	return true, nil
}

// GetAvailableFrom получает все доступные месяцы врача начиная с года fromYear
// Результат сгруппирован год -> множество месяцев, чтобы поиск следующей
// доступной даты не ходил в БД на каждый день
func (r *Repository) GetAvailableFrom(ctx context.Context, doctorID int64, fromYear int) (map[int]map[int]bool, error) {
	query, args, err := psqlbuilder.Select("year", "month").
		From("appointment_available_months").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.GtOrEq{"year": fromYear}).
		Where(squirrel.Eq{"is_available": true}).
		OrderBy("year ASC, month ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableFrom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	months := make(map[int]map[int]bool)
	for rows.Next() {
		var year, month int
		if err := rows.Scan(&year, &month); err != nil {
			return nil, fmt.Errorf("%w: GetAvailableFrom - scan row: %v", ErrScanRow, err)
		}
		if months[year] == nil {
			months[year] = make(map[int]bool)
		}
		months[year][month] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailableFrom - rows error: %v", ErrScanRow, err)
	}

	return months, nil
}
