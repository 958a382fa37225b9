package quote_deposit

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ClientID) == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.AppointmentDate.IsZero() {
		return fmt.Errorf("%w: appointmentDate is required", ErrInvalidInput)
	}

	if req.PriceUnit != nil {
		if _, err := domain.ParseAmountFormat(*req.PriceUnit); err != nil {
			return fmt.Errorf("%w: priceUnit must be euros or cents", ErrInvalidInput)
		}
	}

	// Без цены нужна услуга, чтобы взять цену из SellerService
	if req.Price == nil {
		if req.CompanyID == nil || *req.CompanyID <= 0 {
			return fmt.Errorf("%w: companyID is required when price is absent", ErrInvalidInput)
		}
		if req.ServiceID == nil || *req.ServiceID <= 0 {
			return fmt.Errorf("%w: serviceID is required when price is absent", ErrInvalidInput)
		}
	}

	return nil
}
