package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a paystub result in one output format
type Formatter interface {
	Name() string
	Format(result *domain.PaystubResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(result *domain.PaystubResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.PaystubResult) ([]byte, error) {
	return f.F(result)
}

// FormatterNames lists the registered formats in the order the CLI shows them
var FormatterNames = []string{"console", "console-verbose", "json", "csv"}

// GetFormatterByName returns the formatter registered under name, or nil
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "console", "table", "":
		return ConsoleFormatter{}
	case "console-verbose", "verbose":
		return ConsoleFormatter{Verbose: true}
	case "json":
		return JSONFormatter{Pretty: true}
	case "json-compact":
		return JSONFormatter{}
	case "csv":
		return CSVFormatter{}
	default:
		return nil
	}
}

// WriteFormatted renders result with f and writes it to filename
func WriteFormatted(f Formatter, result *domain.PaystubResult, filename string) error {
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format %s output: %w", f.Name(), err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// FormatCurrency formats a decimal as dollars with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	s := amount.StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + frac
}
