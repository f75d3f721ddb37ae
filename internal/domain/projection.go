package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayPeriod is one paycheck in the generated schedule
type PayPeriod struct {
	Period          int             `json:"period"`
	PayDate         time.Time       `json:"payDate"`
	Hours           decimal.Decimal `json:"hours"`
	GrossPay        decimal.Decimal `json:"grossPay"`
	FederalTax      decimal.Decimal `json:"federalTax"`
	SocialSecurity  decimal.Decimal `json:"socialSecurity"`
	Medicare        decimal.Decimal `json:"medicare"`
	StateTax        decimal.Decimal `json:"stateTax"`
	OtherDeductions decimal.Decimal `json:"otherDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`
}

// TotalWithholding returns every amount subtracted from gross pay in the period
func (pp PayPeriod) TotalWithholding() decimal.Decimal {
	return pp.FederalTax.Add(pp.SocialSecurity).Add(pp.Medicare).Add(pp.StateTax).Add(pp.OtherDeductions)
}

// PaystubTotals aggregates every pay period of a schedule
type PaystubTotals struct {
	Hours           decimal.Decimal `json:"hours"`
	GrossPay        decimal.Decimal `json:"grossPay"`
	FederalTax      decimal.Decimal `json:"federalTax"`
	SocialSecurity  decimal.Decimal `json:"socialSecurity"`
	Medicare        decimal.Decimal `json:"medicare"`
	StateTax        decimal.Decimal `json:"stateTax"`
	OtherDeductions decimal.Decimal `json:"otherDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`
}

// Add accumulates a pay period into the totals
func (t *PaystubTotals) Add(pp PayPeriod) {
	t.Hours = t.Hours.Add(pp.Hours)
	t.GrossPay = t.GrossPay.Add(pp.GrossPay)
	t.FederalTax = t.FederalTax.Add(pp.FederalTax)
	t.SocialSecurity = t.SocialSecurity.Add(pp.SocialSecurity)
	t.Medicare = t.Medicare.Add(pp.Medicare)
	t.StateTax = t.StateTax.Add(pp.StateTax)
	t.OtherDeductions = t.OtherDeductions.Add(pp.OtherDeductions)
	t.NetPay = t.NetPay.Add(pp.NetPay)
}

const (
	WarningNegativeNet      = "negative_net"
	WarningTaxTableFallback = "tax_table_fallback"
	WarningNoStateTable     = "no_state_table"
)

// Warning flags a condition in an otherwise complete result that the caller
// should show to the user.
type Warning struct {
	Code    string `json:"code"`
	Period  int    `json:"period,omitempty"`
	Message string `json:"message"`
}

// PaystubResult is the complete output of a paystub calculation
type PaystubResult struct {
	PayPeriods     []PayPeriod   `json:"payPeriods"`
	Totals         PaystubTotals `json:"totals"`
	TaxYearApplied int           `json:"taxYearApplied"`
	Warnings       []Warning     `json:"warnings,omitempty"`
}
