package output

import (
	"strconv"
	"strings"

	"github.com/rgehrsitz/paystub/internal/domain"
)

// CSVHeader is the fixed column order of the pay period export
var CSVHeader = []string{
	"Period",
	"Pay Date",
	"Hours",
	"Gross Pay",
	"Federal Tax",
	"Social Security",
	"Medicare",
	"State Tax",
	"Other Deductions",
	"Net Pay",
}

// ToCSV serializes pay periods as CSV text: the header row followed by one
// row per period, joined by newlines with no trailing newline. The pay date
// is always quoted; amounts are bare decimal numbers.
func ToCSV(periods []domain.PayPeriod) string {
	lines := make([]string, 0, len(periods)+1)
	lines = append(lines, strings.Join(CSVHeader, ","))
	for _, pp := range periods {
		row := []string{
			strconv.Itoa(pp.Period),
			quoteCSV(pp.PayDate.Format("2006-01-02")),
			pp.Hours.StringFixed(2),
			pp.GrossPay.StringFixed(2),
			pp.FederalTax.StringFixed(2),
			pp.SocialSecurity.StringFixed(2),
			pp.Medicare.StringFixed(2),
			pp.StateTax.StringFixed(2),
			pp.OtherDeductions.StringFixed(2),
			pp.NetPay.StringFixed(2),
		}
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

// quoteCSV quotes a text cell, doubling inner quotes. Text a spreadsheet
// would read as a formula gets a leading apostrophe.
func quoteCSV(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		s = "'" + s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// CSVFormatter renders the pay periods of a result with ToCSV
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *domain.PaystubResult) ([]byte, error) {
	return []byte(ToCSV(result.PayPeriods) + "\n"), nil
}
