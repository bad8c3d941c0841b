package forcer

import "errors"

var (
	// ErrForcerNotFound возвращается, когда настройки принудительной записи не найдены
	ErrForcerNotFound = errors.New("forcer.repository: forcer config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("forcer.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("forcer.repository: failed to scan row")
)
