package domain

import (
	"github.com/shopspring/decimal"
)

// FilingStatus is the federal income tax filing category of an employee
type FilingStatus string

const (
	FilingSingle                    FilingStatus = "single"
	FilingMarriedJoint              FilingStatus = "marriedJoint"
	FilingMarriedSeparate           FilingStatus = "marriedSeparate"
	FilingHeadOfHousehold           FilingStatus = "headOfHousehold"
	FilingQualifyingSurvivingSpouse FilingStatus = "qualifyingSurvivingSpouse"
)

// FilingStatuses lists every recognized filing status in display order
var FilingStatuses = []FilingStatus{
	FilingSingle,
	FilingMarriedJoint,
	FilingMarriedSeparate,
	FilingHeadOfHousehold,
	FilingQualifyingSurvivingSpouse,
}

// IsValid reports whether fs is one of the recognized filing statuses
func (fs FilingStatus) IsValid() bool {
	for _, s := range FilingStatuses {
		if fs == s {
			return true
		}
	}
	return false
}

// PayFrequency is the cadence of payroll runs
type PayFrequency string

const (
	PayWeekly      PayFrequency = "weekly"
	PayBiweekly    PayFrequency = "biweekly"
	PaySemimonthly PayFrequency = "semimonthly"
	PayMonthly     PayFrequency = "monthly"
)

// PayFrequencies lists every supported pay frequency
var PayFrequencies = []PayFrequency{PayWeekly, PayBiweekly, PaySemimonthly, PayMonthly}

// PeriodsPerYear returns the number of pay periods in a year for the frequency,
// or 0 when the frequency is not recognized.
func (pf PayFrequency) PeriodsPerYear() int {
	switch pf {
	case PayWeekly:
		return 52
	case PayBiweekly:
		return 26
	case PaySemimonthly:
		return 24
	case PayMonthly:
		return 12
	default:
		return 0
	}
}

// IsValid reports whether pf is a supported pay frequency
func (pf PayFrequency) IsValid() bool {
	return pf.PeriodsPerYear() > 0
}

// Deduction is a named amount withheld from every paycheck (health premium,
// retirement contribution, garnishment). Amounts are per pay period.
type Deduction struct {
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// PaystubInput holds the candidate calculation parameters for one employee.
// Every field is optional at this level so a validator can report what is
// missing; the calculation engine only accepts inputs that validate.
type PaystubInput struct {
	HourlyRate           *decimal.Decimal `yaml:"hourlyRate" json:"hourlyRate"`
	HoursPerPeriod       *decimal.Decimal `yaml:"hoursPerPeriod" json:"hoursPerPeriod"`
	OvertimeHours        *decimal.Decimal `yaml:"overtimeHours,omitempty" json:"overtimeHours,omitempty"`
	OvertimeRate         *decimal.Decimal `yaml:"overtimeRate,omitempty" json:"overtimeRate,omitempty"`
	FilingStatus         FilingStatus     `yaml:"filingStatus" json:"filingStatus"`
	TaxYear              int              `yaml:"taxYear" json:"taxYear"`
	State                string           `yaml:"state" json:"state"`
	PayFrequency         PayFrequency     `yaml:"payFrequency" json:"payFrequency"`
	AdditionalDeductions []Deduction      `yaml:"additionalDeductions,omitempty" json:"additionalDeductions,omitempty"`

	// StartDate (YYYY-MM-DD) anchors the first pay date. When empty the
	// schedule is anchored at 1 January of TaxYear.
	StartDate string `yaml:"startDate,omitempty" json:"startDate,omitempty"`
}

// EffectiveOvertimeRate returns the overtime rate, or zero when none is given
func (p *PaystubInput) EffectiveOvertimeRate() decimal.Decimal {
	if p.OvertimeRate == nil {
		return decimal.Zero
	}
	return *p.OvertimeRate
}

// OvertimePay is overtime hours times the overtime rate. The term is zero
// unless both are supplied.
func (p *PaystubInput) OvertimePay() decimal.Decimal {
	return p.EffectiveOvertimeHours().Mul(p.EffectiveOvertimeRate())
}

// EffectiveOvertimeHours returns the overtime hours, defaulting to zero
func (p *PaystubInput) EffectiveOvertimeHours() decimal.Decimal {
	if p.OvertimeHours == nil {
		return decimal.Zero
	}
	return *p.OvertimeHours
}

// DeductionsTotal sums the per-period additional deductions
func (p *PaystubInput) DeductionsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.AdditionalDeductions {
		total = total.Add(d.Amount)
	}
	return total
}
