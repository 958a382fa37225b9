package quote_deposit

import "time"

// Request модель запроса на расчёт депозита
type Request struct {
	ClientID        string      // ID клиента
	AppointmentDate time.Time   // Дата визита (без времени)
	Price           interface{} // Цена услуги: string, json.Number или число. nil - взять из SellerService
	PriceUnit       *string     // euros | cents, если nil - единица определяется по величине
	CompanyID       *int64      // Для получения цены из SellerService
	ServiceID       *int64      // Для получения цены из SellerService
}
