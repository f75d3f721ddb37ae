package calculation

import (
	"testing"

	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table2024(t *testing.T) *TaxTable {
	t.Helper()
	table, err := MustDefaultTaxTables().ForYear(2024)
	require.NoError(t, err)
	return table
}

func TestFederalTaxCalculator_CalculateFederalTax(t *testing.T) {
	ftc := NewFederalTaxCalculator(table2024(t))

	tests := []struct {
		name     string
		income   string
		status   domain.FilingStatus
		expected string
	}{
		{"zero income", "0", domain.FilingSingle, "0.00"},
		{"negative income", "-500", domain.FilingSingle, "0.00"},
		{"first bracket only", "10000", domain.FilingSingle, "1000.00"},
		{"at first limit", "11600", domain.FilingSingle, "1160.00"},
		{"second bracket", "40000", domain.FilingSingle, "4568.00"},
		{"third bracket", "65000", domain.FilingSingle, "9353.00"},
		{"top bracket", "1000000", domain.FilingSingle, "328187.75"},
		{"married joint", "96000", domain.FilingMarriedJoint, "11226.00"},
		{"surviving spouse uses joint brackets", "96000", domain.FilingQualifyingSurvivingSpouse, "11226.00"},
		{"head of household", "50000", domain.FilingHeadOfHousehold, "5669.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ftc.CalculateFederalTax(decimal.RequireFromString(tt.income), tt.status)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestFederalTaxCalculator_Progressive(t *testing.T) {
	ftc := NewFederalTaxCalculator(table2024(t))

	prev := decimal.Zero
	for income := int64(0); income <= 800000; income += 5000 {
		tax := ftc.CalculateFederalTax(decimal.NewFromInt(income), domain.FilingSingle)
		assert.True(t, tax.GreaterThanOrEqual(prev), "tax should never fall as income rises (%d)", income)
		assert.True(t, tax.LessThanOrEqual(decimal.NewFromInt(income)), "tax should not exceed income")
		prev = tax
	}
}

func TestFederalTaxCalculator_MarginalRate(t *testing.T) {
	ftc := NewFederalTaxCalculator(table2024(t))

	assert.Equal(t, "0.10", ftc.MarginalRate(decimal.NewFromInt(5000), domain.FilingSingle).StringFixed(2))
	assert.Equal(t, "0.22", ftc.MarginalRate(decimal.NewFromInt(65000), domain.FilingSingle).StringFixed(2))
	assert.Equal(t, "0.37", ftc.MarginalRate(decimal.NewFromInt(2000000), domain.FilingSingle).StringFixed(2))
	assert.True(t, ftc.MarginalRate(decimal.Zero, domain.FilingSingle).IsZero())
}

func TestFICACalculator(t *testing.T) {
	fc := NewFICACalculator(table2024(t))

	t.Run("social security below wage base", func(t *testing.T) {
		assert.Equal(t, "4030.00", fc.SocialSecurityTax(decimal.NewFromInt(65000)).StringFixed(2))
	})

	t.Run("social security capped", func(t *testing.T) {
		capped := fc.SocialSecurityTax(decimal.NewFromInt(500000))
		assert.True(t, capped.Equal(fc.MaxSocialSecurityTax()))
		assert.Equal(t, "10453.20", capped.StringFixed(2))
	})

	t.Run("medicare below threshold", func(t *testing.T) {
		assert.Equal(t, "942.50", fc.MedicareTax(decimal.NewFromInt(65000), domain.FilingSingle).StringFixed(2))
	})

	t.Run("additional medicare above threshold", func(t *testing.T) {
		// 1.45% of 300,000 plus 0.9% of 100,000
		assert.Equal(t, "5250.00", fc.MedicareTax(decimal.NewFromInt(300000), domain.FilingSingle).StringFixed(2))
		// married joint threshold is 250,000
		assert.Equal(t, "4800.00", fc.MedicareTax(decimal.NewFromInt(300000), domain.FilingMarriedJoint).StringFixed(2))
	})

	t.Run("base and additional parts", func(t *testing.T) {
		assert.Equal(t, "29.4292", fc.BaseMedicareTax(decimal.RequireFromString("2029.60")).String())
		assert.Equal(t, "900.00", fc.AdditionalMedicareTax(decimal.NewFromInt(300000), domain.FilingSingle).StringFixed(2))
		assert.True(t, fc.AdditionalMedicareTax(decimal.NewFromInt(200000), domain.FilingSingle).IsZero(), "Threshold itself is not taxed")
	})

	t.Run("no wages", func(t *testing.T) {
		assert.True(t, fc.SocialSecurityTax(decimal.Zero).IsZero())
		assert.True(t, fc.MedicareTax(decimal.Zero, domain.FilingSingle).IsZero())
	})
}

func TestTableStateTaxCalculator(t *testing.T) {
	calc := NewTableStateTaxCalculator(MustDefaultTaxTables())
	gross := decimal.NewFromInt(2000)

	tests := []struct {
		state    string
		expected string
		modeled  bool
	}{
		{"TX", "0.00", true},
		{"wa", "0.00", true},
		{"IL", "99.00", true},
		{"PA", "61.40", true},
		{"CA", "0.00", false},
		{"ZZ", "0.00", false},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			tax, modeled := calc.CalculateStateTax(tt.state, gross, 26, domain.FilingSingle)
			assert.Equal(t, tt.modeled, modeled)
			assert.Equal(t, tt.expected, tax.StringFixed(2))
		})
	}
}
