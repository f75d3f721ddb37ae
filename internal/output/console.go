package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/paystub/internal/domain"
)

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorMuted   = lipgloss.Color("#626262")
	colorWarning = lipgloss.Color("#FFA500")
	colorDanger  = lipgloss.Color("#FF5F87")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	amountStyle   = cellStyle.Align(lipgloss.Right)
	totalStyle    = amountStyle.Bold(true)
	negativeStyle = amountStyle.Foreground(colorDanger)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
)

// ConsoleFormatter renders the pay period schedule as a styled table.
// Verbose output adds the withholding assumptions.
type ConsoleFormatter struct {
	Verbose bool
}

func (cf ConsoleFormatter) Name() string {
	if cf.Verbose {
		return "console-verbose"
	}
	return "console"
}

func (cf ConsoleFormatter) Format(result *domain.PaystubResult) ([]byte, error) {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PAYSTUB SCHEDULE"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Tax year %d, %d pay periods", result.TaxYearApplied, len(result.PayPeriods))))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(result.PayPeriods)+1)
	for _, pp := range result.PayPeriods {
		rows = append(rows, []string{
			strconv.Itoa(pp.Period),
			pp.PayDate.Format("2006-01-02"),
			pp.Hours.StringFixed(2),
			FormatCurrency(pp.GrossPay),
			FormatCurrency(pp.FederalTax),
			FormatCurrency(pp.SocialSecurity),
			FormatCurrency(pp.Medicare),
			FormatCurrency(pp.StateTax),
			FormatCurrency(pp.OtherDeductions),
			FormatCurrency(pp.NetPay),
		})
	}
	t := result.Totals
	rows = append(rows, []string{
		"Total", "",
		t.Hours.StringFixed(2),
		FormatCurrency(t.GrossPay),
		FormatCurrency(t.FederalTax),
		FormatCurrency(t.SocialSecurity),
		FormatCurrency(t.Medicare),
		FormatCurrency(t.StateTax),
		FormatCurrency(t.OtherDeductions),
		FormatCurrency(t.NetPay),
	})
	totalRow := len(rows) - 1

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(CSVHeader...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < 2:
				return cellStyle
			case row == totalRow:
				return totalStyle
			case col == 9 && row < len(result.PayPeriods) && result.PayPeriods[row].NetPay.IsNegative():
				return negativeStyle
			default:
				return amountStyle
			}
		})
	b.WriteString(tbl.Render())
	b.WriteString("\n")

	if len(result.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Bold(true).Render("WARNINGS"))
		b.WriteString("\n")
		for _, w := range result.Warnings {
			line := "  " + w.Message
			if w.Period > 0 {
				line = fmt.Sprintf("  Period %d: %s", w.Period, w.Message)
			}
			b.WriteString(warningStyle.Render(line))
			b.WriteString("\n")
		}
	}

	if cf.Verbose {
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Bold(true).Render("ASSUMPTIONS"))
		b.WriteString("\n")
		for _, a := range DefaultAssumptions {
			b.WriteString(subtitleStyle.Render("  - " + a))
			b.WriteString("\n")
		}
	}

	return []byte(b.String()), nil
}
