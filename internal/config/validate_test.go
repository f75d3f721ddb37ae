package config

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validInput() *domain.PaystubInput {
	return &domain.PaystubInput{
		HourlyRate:     dec("25"),
		HoursPerPeriod: dec("80"),
		FilingStatus:   domain.FilingSingle,
		TaxYear:        2024,
		State:          "TX",
		PayFrequency:   domain.PayBiweekly,
	}
}

func TestValidateInputs_Valid(t *testing.T) {
	input := validInput()
	input.OvertimeHours = dec("0")
	input.OvertimeRate = dec("37.5")
	input.StartDate = "2024-01-05"
	input.AdditionalDeductions = []domain.Deduction{{Name: "Dental", Amount: decimal.Zero}}

	result := ValidateInputs(input)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateInputs_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.PaystubInput)
		field   string
		message string
	}{
		{"negative hourly rate", func(p *domain.PaystubInput) { p.HourlyRate = dec("-1") }, "hourlyRate", "must be greater than $0"},
		{"zero hourly rate", func(p *domain.PaystubInput) { p.HourlyRate = dec("0") }, "hourlyRate", "must be greater than $0"},
		{"missing hourly rate", func(p *domain.PaystubInput) { p.HourlyRate = nil }, "hourlyRate", "is required"},
		{"zero hours", func(p *domain.PaystubInput) { p.HoursPerPeriod = dec("0") }, "hoursPerPeriod", "must be greater than 0"},
		{"negative overtime hours", func(p *domain.PaystubInput) { p.OvertimeHours = dec("-2") }, "overtimeHours", "cannot be negative"},
		{"zero overtime rate", func(p *domain.PaystubInput) { p.OvertimeRate = dec("0") }, "overtimeRate", "must be greater than $0"},
		{"missing filing status", func(p *domain.PaystubInput) { p.FilingStatus = "" }, "filingStatus", "is required"},
		{"unknown filing status", func(p *domain.PaystubInput) { p.FilingStatus = "married" }, "filingStatus", "Invalid filing status"},
		{"missing tax year", func(p *domain.PaystubInput) { p.TaxYear = 0 }, "taxYear", "is required"},
		{"tax year too early", func(p *domain.PaystubInput) { p.TaxYear = 2019 }, "taxYear", "2020 or later"},
		{"five digit tax year", func(p *domain.PaystubInput) { p.TaxYear = 20240 }, "taxYear", "four-digit"},
		{"missing state", func(p *domain.PaystubInput) { p.State = " " }, "state", "is required"},
		{"unknown state", func(p *domain.PaystubInput) { p.State = "XX" }, "state", "Invalid state code"},
		{"missing pay frequency", func(p *domain.PaystubInput) { p.PayFrequency = "" }, "payFrequency", "is required"},
		{"quarterly pay frequency", func(p *domain.PaystubInput) { p.PayFrequency = "quarterly" }, "payFrequency", "Invalid pay frequency"},
		{"bad start date", func(p *domain.PaystubInput) { p.StartDate = "2024-02-30" }, "startDate", "YYYY-MM-DD"},
		{"start date after tax year", func(p *domain.PaystubInput) { p.StartDate = "2031-03-01" }, "startDate", "within tax year 2024"},
		{"start date before tax year", func(p *domain.PaystubInput) { p.StartDate = "2023-12-29" }, "startDate", "within tax year 2024"},
		{
			"empty deduction name",
			func(p *domain.PaystubInput) {
				p.AdditionalDeductions = []domain.Deduction{{Name: "ok", Amount: decimal.NewFromInt(1)}, {Name: "  ", Amount: decimal.NewFromInt(1)}}
			},
			"additionalDeductions[1].name", "is required",
		},
		{
			"long deduction name",
			func(p *domain.PaystubInput) {
				p.AdditionalDeductions = []domain.Deduction{{Name: strings.Repeat("x", 101), Amount: decimal.NewFromInt(1)}}
			},
			"additionalDeductions[0].name", "100 characters",
		},
		{
			"negative deduction",
			func(p *domain.PaystubInput) {
				p.AdditionalDeductions = []domain.Deduction{{Name: "Refund", Amount: decimal.NewFromInt(-5)}}
			},
			"additionalDeductions[0].amount", "cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			result := ValidateInputs(input)

			assert.False(t, result.IsValid)
			assert.Len(t, result.Errors, 1, "only %s should fail: %v", tt.field, result.Errors)
			assert.Contains(t, result.Errors[tt.field], tt.message)
		})
	}
}

func TestValidateInputs_ReportsEveryField(t *testing.T) {
	input := &domain.PaystubInput{
		HourlyRate:   dec("-1"),
		PayFrequency: "quarterly",
		State:        "tx",
	}

	result := ValidateInputs(input)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"filingStatus", "hourlyRate", "hoursPerPeriod", "payFrequency", "taxYear"}, result.Errors.Fields())
	assert.Contains(t, result.Errors["hourlyRate"], "must be greater than $0")
	assert.Contains(t, result.Errors["payFrequency"], "Invalid pay frequency")
}

func TestValidateInputs_MaxLengthNameIsValid(t *testing.T) {
	input := validInput()
	input.AdditionalDeductions = []domain.Deduction{{Name: strings.Repeat("é", MaxDeductionNameLength), Amount: decimal.NewFromInt(1)}}

	assert.True(t, ValidateInputs(input).IsValid)
}

func TestValidateInputs_Nil(t *testing.T) {
	result := ValidateInputs(nil)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "input")
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("hourlyRate", "Hourly rate must be a number")
	errs.Add("hourlyRate", "Hourly rate is required")
	errs.Add("state", "")

	assert.Equal(t, "Hourly rate must be a number", errs["hourlyRate"], "First message should win")
	assert.NotContains(t, errs, "state", "Empty messages are ignored")

	errs.Merge(FieldErrors{"hourlyRate": "other", "taxYear": "Tax year is required"})
	assert.Equal(t, []string{"hourlyRate", "taxYear"}, errs.Fields())
	assert.Equal(t, "Hourly rate must be a number", errs["hourlyRate"])
}
