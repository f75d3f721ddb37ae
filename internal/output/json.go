package output

import (
	"encoding/json"

	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/shopspring/decimal"
)

// JSONFormatter renders a result in the paystub API response shape with
// amounts as numbers rounded to cents.
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

type jsonPayPeriod struct {
	Period          int         `json:"period"`
	PayDate         string      `json:"payDate"`
	Hours           json.Number `json:"hours"`
	GrossPay        json.Number `json:"grossPay"`
	FederalTax      json.Number `json:"federalTax"`
	SocialSecurity  json.Number `json:"socialSecurity"`
	Medicare        json.Number `json:"medicare"`
	StateTax        json.Number `json:"stateTax"`
	OtherDeductions json.Number `json:"otherDeductions"`
	NetPay          json.Number `json:"netPay"`
}

type jsonTotals struct {
	Hours           json.Number `json:"hours"`
	GrossPay        json.Number `json:"grossPay"`
	FederalTax      json.Number `json:"federalTax"`
	SocialSecurity  json.Number `json:"socialSecurity"`
	Medicare        json.Number `json:"medicare"`
	StateTax        json.Number `json:"stateTax"`
	OtherDeductions json.Number `json:"otherDeductions"`
	NetPay          json.Number `json:"netPay"`
}

type jsonResult struct {
	PayPeriods     []jsonPayPeriod  `json:"payPeriods"`
	Totals         jsonTotals       `json:"totals"`
	TaxYearApplied int              `json:"taxYearApplied"`
	Warnings       []domain.Warning `json:"warnings,omitempty"`
}

func (jf JSONFormatter) Format(result *domain.PaystubResult) ([]byte, error) {
	out := jsonResult{
		PayPeriods:     make([]jsonPayPeriod, 0, len(result.PayPeriods)),
		TaxYearApplied: result.TaxYearApplied,
		Warnings:       result.Warnings,
	}
	for _, pp := range result.PayPeriods {
		out.PayPeriods = append(out.PayPeriods, jsonPayPeriod{
			Period:          pp.Period,
			PayDate:         pp.PayDate.Format("2006-01-02"),
			Hours:           cents(pp.Hours),
			GrossPay:        cents(pp.GrossPay),
			FederalTax:      cents(pp.FederalTax),
			SocialSecurity:  cents(pp.SocialSecurity),
			Medicare:        cents(pp.Medicare),
			StateTax:        cents(pp.StateTax),
			OtherDeductions: cents(pp.OtherDeductions),
			NetPay:          cents(pp.NetPay),
		})
	}
	t := result.Totals
	out.Totals = jsonTotals{
		Hours:           cents(t.Hours),
		GrossPay:        cents(t.GrossPay),
		FederalTax:      cents(t.FederalTax),
		SocialSecurity:  cents(t.SocialSecurity),
		Medicare:        cents(t.Medicare),
		StateTax:        cents(t.StateTax),
		OtherDeductions: cents(t.OtherDeductions),
		NetPay:          cents(t.NetPay),
	}
	return marshal(out, jf.Pretty)
}

// ErrorResponse is the body returned for inputs that fail validation
type ErrorResponse struct {
	Error       string            `json:"error"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// FormatError renders an ErrorResponse
func FormatError(message string, fieldErrors map[string]string, pretty bool) ([]byte, error) {
	return marshal(ErrorResponse{Error: message, FieldErrors: fieldErrors}, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func cents(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
