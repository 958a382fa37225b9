package domain

import (
	"errors"
	"strings"
)

// ErrUnknownAmountFormat возвращается для неизвестной единицы суммы
var ErrUnknownAmountFormat = errors.New("unknown amount format")

// AmountFormat unit in which a monetary literal is expressed
type AmountFormat string

const (
	FormatEuros AmountFormat = "euros" // основные единицы
	FormatCents AmountFormat = "cents" // минимальные единицы
)

// ParseAmountFormat converts a string into AmountFormat
func ParseAmountFormat(s string) (AmountFormat, error) {
	switch AmountFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatEuros:
		return FormatEuros, nil
	case FormatCents:
		return FormatCents, nil
	default:
		return "", ErrUnknownAmountFormat
	}
}

// MonetaryAmount canonical amount in minor currency units
type MonetaryAmount struct {
	MinorUnits     int64
	DetectedFormat AmountFormat // только для диагностики
}
