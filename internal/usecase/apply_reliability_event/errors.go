package apply_reliability_event

import "errors"

var (
	// ErrInvalidEventKind возвращается для неизвестного типа события
	ErrInvalidEventKind = errors.New("apply_reliability_event: invalid event kind")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_reliability_event: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_reliability_event: internal error")
)
