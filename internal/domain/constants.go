package domain

import "time"

// Reliability score formula
const (
	InitialReliabilityScore  = 100
	MinReliabilityScore      = 0
	MaxReliabilityScore      = 100
	CancellationRateWeight   = 0.8
	NoShowRateWeight         = 1.2
	ConsecutivePenaltyPoints = 15
)

// Default deposit policy values
const (
	DefaultNewClientPercentage          = 20
	DefaultRepeatCancellationPercentage = 70
	DefaultRepeatCancellationThreshold  = 2
	DefaultLowScorePercentage           = 70
	DefaultLowScoreThreshold            = 30
	DefaultSingleCancellationPercentage = 50
	DefaultStandardPercentage           = 0
	DefaultWeekendPremiumPoints         = 10
	DefaultWeekendFloorPercentage       = 10
	MinDepositPercentage                = 0
	MaxDepositPercentage                = 100
)

// Money constants
const (
	MinChargeMinorUnits = 50  // минимальная сумма списания у платёжного провайдера
	MajorUnitsThreshold = 999 // значения <= 999 считаются суммой в евро
	MinorUnitsPerMajor  = 100
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultWeekendDays дни с надбавкой выходного дня
// Переопределяется через deposit.weekend_days
var DefaultWeekendDays = []time.Weekday{time.Saturday, time.Sunday}
