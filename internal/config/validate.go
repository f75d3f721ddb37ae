package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// MinTaxYear is the earliest tax year with published tables
	MinTaxYear = 2020

	// MaxDeductionNameLength bounds additional deduction names
	MaxDeductionNameLength = 100

	startDateLayout = "2006-01-02"
)

// FieldErrors maps an input field name to a human-readable message
type FieldErrors map[string]string

// Add records a message for field. The first message recorded for a field wins.
func (fe FieldErrors) Add(field, message string) {
	field = strings.TrimSpace(field)
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	if _, exists := fe[field]; exists {
		return
	}
	fe[field] = message
}

// Merge copies every error of other that is not already present
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, message := range other {
		fe.Add(field, message)
	}
}

// Fields returns the field names in sorted order
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ValidationResult is the outcome of ValidateInputs
type ValidationResult struct {
	IsValid bool        `json:"isValid"`
	Errors  FieldErrors `json:"errors"`
}

// ValidateInputs checks paystub parameters against the business rules. Every
// violated field is reported; Errors is empty exactly when IsValid is true.
func ValidateInputs(input *domain.PaystubInput) ValidationResult {
	errs := FieldErrors{}
	if input == nil {
		errs.Add("input", "Paystub inputs are required")
		return ValidationResult{Errors: errs}
	}

	validatePositive(errs, "hourlyRate", "Hourly rate", "$0", input.HourlyRate, true)
	validatePositive(errs, "hoursPerPeriod", "Hours per period", "0", input.HoursPerPeriod, true)

	if input.OvertimeHours != nil && input.OvertimeHours.IsNegative() {
		errs.Add("overtimeHours", "Overtime hours cannot be negative")
	}
	validatePositive(errs, "overtimeRate", "Overtime rate", "$0", input.OvertimeRate, false)

	switch {
	case input.FilingStatus == "":
		errs.Add("filingStatus", "Filing status is required")
	case !input.FilingStatus.IsValid():
		errs.Add("filingStatus", fmt.Sprintf("Invalid filing status %q: must be one of %s",
			input.FilingStatus, joinValues(domain.FilingStatuses)))
	}

	switch {
	case input.TaxYear == 0:
		errs.Add("taxYear", "Tax year is required")
	case input.TaxYear < MinTaxYear:
		errs.Add("taxYear", fmt.Sprintf("Tax year must be %d or later", MinTaxYear))
	case input.TaxYear > 9999:
		errs.Add("taxYear", "Tax year must be a four-digit year")
	}

	switch {
	case strings.TrimSpace(input.State) == "":
		errs.Add("state", "State is required")
	case !domain.IsStateCode(input.State):
		errs.Add("state", fmt.Sprintf("Invalid state code %q: must be a two-letter US state abbreviation", input.State))
	}

	switch {
	case input.PayFrequency == "":
		errs.Add("payFrequency", "Pay frequency is required")
	case !input.PayFrequency.IsValid():
		errs.Add("payFrequency", fmt.Sprintf("Invalid pay frequency %q: must be one of %s",
			input.PayFrequency, joinValues(domain.PayFrequencies)))
	}

	for i, d := range input.AdditionalDeductions {
		prefix := fmt.Sprintf("additionalDeductions[%d]", i)
		name := strings.TrimSpace(d.Name)
		switch {
		case name == "":
			errs.Add(prefix+".name", "Deduction name is required")
		case len([]rune(name)) > MaxDeductionNameLength:
			errs.Add(prefix+".name", fmt.Sprintf("Deduction name must be %d characters or fewer", MaxDeductionNameLength))
		}
		if d.Amount.IsNegative() {
			errs.Add(prefix+".amount", "Deduction amount cannot be negative")
		}
	}

	if input.StartDate != "" {
		start, err := time.Parse(startDateLayout, input.StartDate)
		switch {
		case err != nil:
			errs.Add("startDate", "Start date must be a valid date in YYYY-MM-DD format")
		case input.TaxYear >= MinTaxYear && input.TaxYear <= 9999 && start.Year() != input.TaxYear:
			errs.Add("startDate", fmt.Sprintf("Start date must fall within tax year %d", input.TaxYear))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func validatePositive(errs FieldErrors, field, label, zero string, value *decimal.Decimal, required bool) {
	if value == nil {
		if required {
			errs.Add(field, label+" is required")
		}
		return
	}
	if !value.IsPositive() {
		errs.Add(field, label+" must be greater than "+zero)
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
