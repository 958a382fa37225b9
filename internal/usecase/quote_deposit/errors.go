package quote_deposit

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга для получения цены не найдена
	ErrServiceNotFound = errors.New("quote_deposit: service not found")

	// ErrPriceUnavailable возвращается, когда у услуги в SellerService нет цены
	ErrPriceUnavailable = errors.New("quote_deposit: service has no price")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_deposit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_deposit: internal error")
)
