package reliability

import "errors"

var (
	// ErrRecordNotFound возвращается, когда у клиента нет записи надёжности
	ErrRecordNotFound = errors.New("reliability.repository: record not found")

	// ErrDuplicateEvent возвращается при повторной вставке события с тем же event_id
	ErrDuplicateEvent = errors.New("reliability.repository: duplicate event")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reliability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reliability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reliability.repository: failed to scan row")
)
