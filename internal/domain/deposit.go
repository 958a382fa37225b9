package domain

import "time"

// PolicyReason the single rule that determined the deposit percentage
type PolicyReason string

const (
	ReasonNewClient                PolicyReason = "new_client"
	ReasonSingleRecentCancellation PolicyReason = "single_recent_cancellation"
	ReasonRepeatCancellation       PolicyReason = "repeat_cancellation"
	ReasonLowScore                 PolicyReason = "low_score"
	ReasonWeekendPremium           PolicyReason = "weekend_premium"
	ReasonStandard                 PolicyReason = "standard"
)

// BookingContext booking attributes needed to quote a deposit
type BookingContext struct {
	IsWeekend   bool
	IsNewClient bool

	// BaseServicePrice цена услуги: string, число или json.Number
	BaseServicePrice interface{}

	// PriceUnit явная единица цены. Если nil - единица определяется по величине
	PriceUnit *AmountFormat
}

// DepositQuote required deposit for a booking
type DepositQuote struct {
	ID              string
	ClientID        string
	AppointmentDate time.Time

	DepositPercentage       int
	DepositAmountMinorUnits int64
	BaseAmountMinorUnits    int64
	DetectedFormat          AmountFormat
	PolicyReason            PolicyReason

	// Trace шаги нормализации суммы для аудита
	Trace []string

	CreatedAt time.Time
}

// IsWeekend returns true if the date falls on one of weekendDays
func IsWeekend(date time.Time, weekendDays []time.Weekday) bool {
	weekday := date.Weekday()
	for _, d := range weekendDays {
		if d == weekday {
			return true
		}
	}
	return false
}
