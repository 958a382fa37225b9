package amount

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

func TestNormalize_FormatInvariance(t *testing.T) {
	n := NewNormalizer(DefaultConfig())

	inputs := []interface{}{"65", 65, 65.0, int64(6500), 6500, json.Number("65"), json.Number("6500")}
	for _, input := range inputs {
		res, err := n.Normalize(input)
		require.NoError(t, err, "input %#v", input)
		assert.Equal(t, int64(6500), res.Amount.MinorUnits, "input %#v", input)
	}
}

func TestNormalize_DetectedFormat(t *testing.T) {
	n := NewNormalizer(DefaultConfig())

	res, err := n.Normalize("65")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatEuros, res.Amount.DetectedFormat)

	res, err = n.Normalize(6500)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatCents, res.Amount.DetectedFormat)
}

func TestNormalize_DecimalSeparatorEquivalence(t *testing.T) {
	n := NewNormalizer(DefaultConfig())

	comma, err := n.Normalize("11,70")
	require.NoError(t, err)
	dot, err := n.Normalize("11.70")
	require.NoError(t, err)

	assert.Equal(t, int64(1170), comma.Amount.MinorUnits)
	assert.Equal(t, comma.Amount, dot.Amount)
}

func TestNormalize_ThresholdBoundary(t *testing.T) {
	n := NewNormalizer(DefaultConfig())

	tests := []struct {
		name   string
		input  interface{}
		minor  int64
		format domain.AmountFormat
	}{
		{name: "999 is euros", input: 999, minor: 99900, format: domain.FormatEuros},
		{name: "999.99 is cents", input: "999.99", minor: 1000, format: domain.FormatCents},
		{name: "1000 is cents", input: "1000", minor: 1000, format: domain.FormatCents},
		{name: "half cent rounds away from zero", input: 12.345, minor: 1235, format: domain.FormatEuros},
		{name: "float noise is absorbed", input: 0.1 + 0.2 + 0.5, minor: 80, format: domain.FormatEuros},
		{name: "trailing dot", input: "12.", minor: 1200, format: domain.FormatEuros},
		{name: "leading dot", input: ".75", minor: 75, format: domain.FormatEuros},
		{name: "surrounding spaces", input: " 40 ", minor: 4000, format: domain.FormatEuros},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := n.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.minor, res.Amount.MinorUnits)
			assert.Equal(t, tt.format, res.Amount.DetectedFormat)
		})
	}
}

func TestNormalize_Failures(t *testing.T) {
	n := NewNormalizer(DefaultConfig())

	tests := []struct {
		name  string
		input interface{}
		want  error
	}{
		{name: "minimum rejection", input: "0.10", want: ErrAmountBelowMinimum},
		{name: "49 cents", input: "0.49", want: ErrAmountBelowMinimum},
		{name: "letters", input: "12abc", want: ErrInvalidNumericFormat},
		{name: "two separators", input: "1,234.56", want: ErrInvalidNumericFormat},
		{name: "negative string", input: "-5", want: ErrInvalidNumericFormat},
		{name: "currency sign", input: "€40", want: ErrInvalidNumericFormat},
		{name: "exponent string", input: "1e3", want: ErrInvalidNumericFormat},
		{name: "unsupported type", input: true, want: ErrInvalidNumericFormat},
		{name: "nil", input: nil, want: ErrInvalidAmount},
		{name: "empty string", input: "", want: ErrInvalidAmount},
		{name: "lonely dot", input: ".", want: ErrInvalidAmount},
		{name: "zero", input: 0, want: ErrInvalidAmount},
		{name: "negative number", input: -12.5, want: ErrInvalidAmount},
		{name: "rounds to zero", input: "0.004", want: ErrInvalidAmount},
		{name: "NaN", input: math.NaN(), want: ErrInvalidAmount},
		{name: "infinity", input: math.Inf(1), want: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := n.Normalize(tt.input)
			assert.Nil(t, res)
			require.ErrorIs(t, err, tt.want)

			var nErr *NormalizationError
			require.ErrorAs(t, err, &nErr)
			assert.NotEmpty(t, nErr.Trace)
			assert.Contains(t, nErr.Trace[len(nErr.Trace)-1], "rejected")
		})
	}
}

func TestNormalize_TraceOnSuccess(t *testing.T) {
	n := NewNormalizer(DefaultConfig())

	res, err := n.Normalize("85")
	require.NoError(t, err)

	assert.Equal(t, int64(8500), res.Amount.MinorUnits)
	require.Len(t, res.Trace, 5)
	assert.Contains(t, res.Trace[3], "euros")
}

func TestNormalizeTagged(t *testing.T) {
	n := NewNormalizer(DefaultConfig())

	// Цена от 1000 евро - эвристика бы ошиблась
	res, err := n.NormalizeTagged("1500", domain.FormatEuros)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), res.Amount.MinorUnits)
	assert.Equal(t, domain.FormatEuros, res.Amount.DetectedFormat)

	res, err = n.NormalizeTagged(85, domain.FormatCents)
	require.NoError(t, err)
	assert.Equal(t, int64(85), res.Amount.MinorUnits)

	_, err = n.NormalizeTagged(40, domain.FormatCents)
	assert.ErrorIs(t, err, ErrAmountBelowMinimum)

	_, err = n.NormalizeTagged(40, domain.AmountFormat("dollars"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestNormalize_CustomMinimum(t *testing.T) {
	n := NewNormalizer(Config{MinChargeMinorUnits: 100, MajorUnitsThreshold: domain.MajorUnitsThreshold})

	_, err := n.Normalize("0.99")
	assert.ErrorIs(t, err, ErrAmountBelowMinimum)

	res, err := n.Normalize("1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Amount.MinorUnits)
}

func TestFailureKind(t *testing.T) {
	n := NewNormalizer(DefaultConfig())

	_, err := n.Normalize("0.10")
	assert.Equal(t, "amount_below_minimum", FailureKind(err))

	_, err = n.Normalize("abc")
	assert.Equal(t, "invalid_numeric_format", FailureKind(err))

	_, err = n.Normalize(nil)
	assert.Equal(t, "invalid_amount", FailureKind(err))
}
