package reliability

import "errors"

var (
	// ErrInvalidEventKind возвращается для неизвестного типа события
	ErrInvalidEventKind = errors.New("reliability: invalid event kind")

	// ErrInvalidEvent возвращается для события без идентификатора
	ErrInvalidEvent = errors.New("reliability: invalid event")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reliability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reliability: internal error")
)
