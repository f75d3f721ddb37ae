package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/paystub/internal/config"
	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/shopspring/decimal"
)

// PaystubEngine turns validated paystub parameters into a pay period schedule
type PaystubEngine struct {
	Tables   *TaxTableSet
	StateTax StateTaxCalculator
	Logger   Logger
}

// NewPaystubEngine creates a paystub engine using the embedded tax tables
func NewPaystubEngine() *PaystubEngine {
	return NewPaystubEngineWithTables(MustDefaultTaxTables())
}

// NewPaystubEngineWithTables creates a paystub engine with the given tax tables
func NewPaystubEngineWithTables(tables *TaxTableSet) *PaystubEngine {
	return &PaystubEngine{
		Tables:   tables,
		StateTax: NewTableStateTaxCalculator(tables),
		Logger:   NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (pe *PaystubEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

func (pe *PaystubEngine) stateTax() StateTaxCalculator {
	if pe.StateTax == nil {
		return NewTableStateTaxCalculator(pe.Tables)
	}
	return pe.StateTax
}

func (pe *PaystubEngine) logger() Logger {
	if pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

// Calculate validates the input and produces the full pay period schedule.
// Invalid input yields an *InvalidInputError and no result.
//
// Federal tax is the annual bracket figure divided by the period count.
// Medicare is the flat rate on each period's gross pay; the additional
// Medicare tax and Social Security are annual figures spread over the periods
// with cumulative cent rounding, so their totals equal the annual amounts and
// Social Security never passes the wage base. Additional deductions are
// per-period amounts and are withheld in full from every paycheck.
func (pe *PaystubEngine) Calculate(input *domain.PaystubInput) (*domain.PaystubResult, error) {
	validation := config.ValidateInputs(input)
	if !validation.IsValid {
		err := &InvalidInputError{Fields: validation.Errors}
		pe.logger().Errorf("%v", err)
		return nil, err
	}

	table, err := pe.Tables.ForYear(input.TaxYear)
	if err != nil {
		return nil, err
	}

	result := &domain.PaystubResult{TaxYearApplied: table.Year()}
	if table.Year() != input.TaxYear {
		pe.logger().Warnf("no tax table for %d, using %d", input.TaxYear, table.Year())
		result.Warnings = append(result.Warnings, domain.Warning{
			Code:    domain.WarningTaxTableFallback,
			Message: fmt.Sprintf("Tax tables for %d are not available; %d tables were applied", input.TaxYear, table.Year()),
		})
	}

	var start *time.Time
	if input.StartDate != "" {
		t, err := time.Parse(DateLayout, input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("start date: %w", err)
		}
		start = &t
	}

	periods := input.PayFrequency.PeriodsPerYear()
	count := decimal.NewFromInt(int64(periods))
	status := input.FilingStatus
	state := domain.NormalizeState(input.State)

	grossPay := roundCents(input.HoursPerPeriod.Mul(*input.HourlyRate).Add(input.OvertimePay()))
	annualGross := grossPay.Mul(count)

	federal := NewFederalTaxCalculator(table)
	fica := NewFICACalculator(table)

	annualFederal := federal.CalculateFederalTax(annualGross, status)
	annualSS := decimal.Min(roundCents(fica.SocialSecurityTax(annualGross)), fica.MaxSocialSecurityTax().Truncate(2))
	medicare := roundCents(fica.BaseMedicareTax(grossPay))
	annualAdditionalMedicare := fica.AdditionalMedicareTax(annualGross, status)

	stateTax, modeled := pe.stateTax().CalculateStateTax(state, grossPay, periods, status)
	if !modeled {
		pe.logger().Debugf("state %s income tax is not modeled; withholding zero", state)
		result.Warnings = append(result.Warnings, domain.Warning{
			Code:    domain.WarningNoStateTable,
			Message: fmt.Sprintf("State income tax for %s is not calculated", state),
		})
	}
	stateTax = roundCents(stateTax)
	federalTax := roundCents(annualFederal.Div(count))
	otherDeductions := roundCents(input.DeductionsTotal())

	pe.logger().Debugf("annual gross %s federal %s ss %s additional medicare %s; per period medicare %s state %s",
		annualGross.StringFixed(2), annualFederal.StringFixed(2), annualSS.StringFixed(2),
		annualAdditionalMedicare.StringFixed(2), medicare.StringFixed(2), stateTax.StringFixed(2))

	ssByPeriod := spreadAnnual(annualSS, periods)
	additionalMedicareByPeriod := spreadAnnual(annualAdditionalMedicare, periods)

	dates := PayDates(input.PayFrequency, input.TaxYear, start)
	result.PayPeriods = make([]domain.PayPeriod, 0, periods)
	for i := 0; i < periods; i++ {
		pp := domain.PayPeriod{
			Period:          i + 1,
			PayDate:         dates[i],
			Hours:           *input.HoursPerPeriod,
			GrossPay:        grossPay,
			FederalTax:      federalTax,
			SocialSecurity:  ssByPeriod[i],
			Medicare:        medicare.Add(additionalMedicareByPeriod[i]),
			StateTax:        stateTax,
			OtherDeductions: otherDeductions,
		}
		pp.NetPay = pp.GrossPay.Sub(pp.TotalWithholding())
		if pp.NetPay.IsNegative() {
			pe.logger().Warnf("period %d: net pay %s is negative", pp.Period, pp.NetPay.StringFixed(2))
			result.Warnings = append(result.Warnings, domain.Warning{
				Code:    domain.WarningNegativeNet,
				Period:  pp.Period,
				Message: fmt.Sprintf("Deductions exceed gross pay by %s", pp.NetPay.Neg().StringFixed(2)),
			})
		}
		result.PayPeriods = append(result.PayPeriods, pp)
		result.Totals.Add(pp)
	}

	return result, nil
}

// roundCents rounds half away from zero to two decimal places
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// spreadAnnual divides an annual amount over n periods. Period i receives
// round(A*i/n) - round(A*(i-1)/n), which keeps every share non-negative for a
// non-negative amount and makes the shares sum to round(A) exactly.
func spreadAnnual(annual decimal.Decimal, n int) []decimal.Decimal {
	total := roundCents(annual)
	count := decimal.NewFromInt(int64(n))
	shares := make([]decimal.Decimal, n)
	prev := decimal.Zero
	for i := 1; i <= n; i++ {
		cum := roundCents(total.Mul(decimal.NewFromInt(int64(i))).Div(count))
		shares[i-1] = cum.Sub(prev)
		prev = cum
	}
	return shares
}
