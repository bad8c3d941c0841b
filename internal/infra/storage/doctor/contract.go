package doctor

import "github.com/hodaifayahia/AppointmentSystem-maine/pkg/dbmetrics"

// DBExecutor интерфейс исполнителя запросов к БД
// Поддерживает *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
