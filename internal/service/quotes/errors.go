package quotes

import "errors"

var (
	// ErrQuoteNotFound возвращается, когда котировка не найдена
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("quotes: internal error")
)
