package integration

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/paystub/internal/calculation"
	"github.com/rgehrsitz/paystub/internal/config"
	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/rgehrsitz/paystub/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadAndCalculate(t *testing.T, filename string) *domain.PaystubResult {
	t.Helper()
	input, validation, err := config.NewInputParser().LoadFromFile("../testdata/" + filename)
	require.NoError(t, err)
	require.True(t, validation.IsValid, "unexpected errors: %v", validation.Errors)

	result, err := calculation.NewPaystubEngine().Calculate(input)
	require.NoError(t, err)
	return result
}

func TestEndToEnd_BiweeklyTexas(t *testing.T) {
	result := loadAndCalculate(t, "biweekly_single_tx.yaml")

	require.Len(t, result.PayPeriods, 26)
	assert.Equal(t, "2500.00", result.PayPeriods[0].GrossPay.StringFixed(2))
	assert.True(t, result.Totals.GrossPay.GreaterThan(decimal.Zero))
	assert.True(t, result.Totals.StateTax.IsZero())

	csv := output.ToCSV(result.PayPeriods)
	lines := strings.Split(csv, "\n")
	assert.Len(t, lines, 27)
	assert.Equal(t, `1,"2024-01-05",80.00,2500.00,359.73,155.00,36.25,0.00,0.00,1949.02`, lines[1])
}

func TestEndToEnd_MonthlyIllinoisJSON(t *testing.T) {
	result := loadAndCalculate(t, "monthly_married_il.json")

	require.Len(t, result.PayPeriods, 12)
	assert.Equal(t, 2025, result.TaxYearApplied)
	for _, pp := range result.PayPeriods {
		assert.Equal(t, "612.40", pp.OtherDeductions.StringFixed(2))
		assert.True(t, pp.StateTax.IsPositive(), "Illinois withholds a flat rate")
		expected := pp.GrossPay.Sub(pp.TotalWithholding())
		assert.True(t, expected.Equal(pp.NetPay))
	}
	assert.Equal(t, time.December, result.PayPeriods[11].PayDate.Month())
}

func TestEndToEnd_SemimonthlyStartDate(t *testing.T) {
	result := loadAndCalculate(t, "semimonthly_start_date.yaml")

	require.Len(t, result.PayPeriods, 24)
	assert.Equal(t, time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC), result.PayPeriods[0].PayDate)
	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), result.PayPeriods[23].PayDate)
}

func TestEndToEnd_InvalidInput(t *testing.T) {
	parser := config.NewInputParser()
	input, validation, err := parser.LoadFromFile("../testdata/invalid_input.json")
	require.NoError(t, err)

	assert.False(t, validation.IsValid)
	assert.Equal(t, []string{
		"additionalDeductions[0].amount",
		"additionalDeductions[0].name",
		"filingStatus",
		"hourlyRate",
		"payFrequency",
		"state",
		"taxYear",
	}, validation.Errors.Fields())

	result, err := calculation.NewPaystubEngine().Calculate(input)
	assert.Nil(t, result)
	var invalid *calculation.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, err.Error(), "Invalid paystub inputs")
}

func TestEndToEnd_ConcurrentCalculations(t *testing.T) {
	engine := calculation.NewPaystubEngine()
	input, _, err := config.NewInputParser().LoadFromFile("../testdata/biweekly_single_tx.yaml")
	require.NoError(t, err)

	want, err := engine.Calculate(input)
	require.NoError(t, err)
	expected := output.ToCSV(want.PayPeriods)

	results := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			r, err := engine.Calculate(input)
			if err != nil {
				results <- err.Error()
				return
			}
			results <- output.ToCSV(r.PayPeriods)
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, expected, <-results)
	}
}
