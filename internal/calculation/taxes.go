package calculation

import (
	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/shopspring/decimal"
)

// WITHHOLDING ASSUMPTIONS:
//
// 1. Federal income tax: progressive brackets applied to annualized gross pay
//    for the filing status. No standard deduction or W-4 adjustments.
//
// 2. Social Security: flat rate on annualized wages up to the wage base.
//
// 3. Medicare: flat rate on all wages plus the additional Medicare rate on
//    annualized wages above the filing status threshold.
//
// 4. State income tax: delegated to a StateTaxCalculator.

// FederalTaxCalculator handles federal income tax calculations for one tax year
type FederalTaxCalculator struct {
	Year     int
	Brackets map[domain.FilingStatus][]domain.TaxBracket
}

// NewFederalTaxCalculator creates a federal tax calculator from a tax table
func NewFederalTaxCalculator(table *TaxTable) *FederalTaxCalculator {
	brackets := make(map[domain.FilingStatus][]domain.TaxBracket, len(domain.FilingStatuses))
	for _, status := range domain.FilingStatuses {
		brackets[status] = table.Brackets(status)
	}
	return &FederalTaxCalculator{Year: table.Year(), Brackets: brackets}
}

// CalculateFederalTax calculates annual federal income tax. Income in each
// bracket is taxed at that bracket's rate only; the final bracket is unbounded.
func (ftc *FederalTaxCalculator) CalculateFederalTax(annualIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	brackets := ftc.Brackets[status]
	tax := decimal.Zero
	lower := decimal.Zero
	for i, bracket := range brackets {
		if annualIncome.LessThanOrEqual(lower) {
			break
		}
		upper := annualIncome
		if i < len(brackets)-1 {
			upper = decimal.Min(annualIncome, bracket.Limit)
		}
		tax = tax.Add(upper.Sub(lower).Mul(bracket.Rate))
		lower = bracket.Limit
	}
	return tax
}

// MarginalRate returns the rate applied to the last dollar of annualIncome
func (ftc *FederalTaxCalculator) MarginalRate(annualIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	brackets := ftc.Brackets[status]
	if len(brackets) == 0 || annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	for i, bracket := range brackets {
		if i == len(brackets)-1 || annualIncome.LessThanOrEqual(bracket.Limit) {
			return bracket.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// FICACalculator handles FICA tax calculations
type FICACalculator struct {
	Year                 int
	SSWageBase           decimal.Decimal
	SSRate               decimal.Decimal
	MedicareRate         decimal.Decimal
	AdditionalRate       decimal.Decimal
	AdditionalThresholds map[domain.FilingStatus]decimal.Decimal
}

// NewFICACalculator creates a FICA calculator from a tax table
func NewFICACalculator(table *TaxTable) *FICACalculator {
	ss := table.SocialSecurity()
	thresholds := make(map[domain.FilingStatus]decimal.Decimal, len(domain.FilingStatuses))
	var additionalRate decimal.Decimal
	for _, status := range domain.FilingStatuses {
		additionalRate, thresholds[status] = table.AdditionalMedicare(status)
	}
	return &FICACalculator{
		Year:                 table.Year(),
		SSWageBase:           ss.WageBase,
		SSRate:               ss.Rate,
		MedicareRate:         table.MedicareRate(),
		AdditionalRate:       additionalRate,
		AdditionalThresholds: thresholds,
	}
}

// SocialSecurityTax calculates annual Social Security tax, capped at the wage base
func (fc *FICACalculator) SocialSecurityTax(annualWages decimal.Decimal) decimal.Decimal {
	if annualWages.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(annualWages, fc.SSWageBase).Mul(fc.SSRate)
}

// MaxSocialSecurityTax is the most Social Security tax owed on any wages in a year
func (fc *FICACalculator) MaxSocialSecurityTax() decimal.Decimal {
	return fc.SSWageBase.Mul(fc.SSRate)
}

// MedicareTax calculates annual Medicare tax including the additional
// Medicare tax on wages above the filing status threshold
func (fc *FICACalculator) MedicareTax(annualWages decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if annualWages.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return annualWages.Mul(fc.MedicareRate).Add(fc.AdditionalMedicareTax(annualWages, status))
}

// BaseMedicareTax is the flat Medicare rate applied to one period's wages
func (fc *FICACalculator) BaseMedicareTax(wages decimal.Decimal) decimal.Decimal {
	if wages.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return wages.Mul(fc.MedicareRate)
}

// AdditionalMedicareTax is the additional Medicare rate on annual wages above
// the filing status threshold
func (fc *FICACalculator) AdditionalMedicareTax(annualWages decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	threshold, ok := fc.AdditionalThresholds[status]
	if !ok || annualWages.LessThanOrEqual(threshold) {
		return decimal.Zero
	}
	return annualWages.Sub(threshold).Mul(fc.AdditionalRate)
}

// StateTaxCalculator computes state income tax withholding for one pay
// period. The second return value is false when the state levies an income
// tax that the calculator does not model.
type StateTaxCalculator interface {
	CalculateStateTax(state string, grossPay decimal.Decimal, periodsPerYear int, status domain.FilingStatus) (decimal.Decimal, bool)
}

// TableStateTaxCalculator applies the state rules of a tax table set:
// nothing for states without an income tax, a flat rate on gross pay where one
// is configured.
type TableStateTaxCalculator struct {
	Tables *TaxTableSet
}

// NewTableStateTaxCalculator creates a state tax calculator backed by tables
func NewTableStateTaxCalculator(tables *TaxTableSet) *TableStateTaxCalculator {
	return &TableStateTaxCalculator{Tables: tables}
}

// CalculateStateTax implements StateTaxCalculator
func (c *TableStateTaxCalculator) CalculateStateTax(state string, grossPay decimal.Decimal, _ int, _ domain.FilingStatus) (decimal.Decimal, bool) {
	rules, ok := c.Tables.State(state)
	if !ok {
		return decimal.Zero, false
	}
	if !rules.IncomeTax {
		return decimal.Zero, true
	}
	if rules.FlatRate.IsZero() {
		return decimal.Zero, false
	}
	return grossPay.Mul(rules.FlatRate), true
}
