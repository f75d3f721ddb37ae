package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rgehrsitz/paystub/internal/calculation"
	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/rgehrsitz/paystub/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables [year]",
		Short: "Show the withholding tables applied for a tax year",
		Long:  "Show the federal brackets, Social Security and Medicare rates applied for a tax year (default: the newest loaded year).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables(cmd)
			if err != nil {
				return err
			}

			years := tables.Years()
			year := years[len(years)-1]
			if len(args) == 1 {
				year, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid tax year %q", args[0])
				}
			}

			table, err := tables.ForYear(year)
			if err != nil {
				return err
			}
			printTaxTable(cmd.OutOrStdout(), year, table)
			return nil
		},
	}
}

func printTaxTable(w io.Writer, requested int, table *calculation.TaxTable) {
	fmt.Fprintf(w, "TAX YEAR %d\n", table.Year())
	if table.Year() != requested {
		fmt.Fprintf(w, "(no tables for %d; showing %d)\n", requested, table.Year())
	}

	for _, status := range domain.FilingStatuses {
		fmt.Fprintf(w, "\nFederal brackets (%s)\n", status)
		lower := decimal.Zero
		brackets := table.Brackets(status)
		for i, b := range brackets {
			if i == len(brackets)-1 {
				fmt.Fprintf(w, "  %14s and up       %s\n", output.FormatCurrency(lower), percent(b.Rate))
				break
			}
			fmt.Fprintf(w, "  %14s - %-14s %s\n", output.FormatCurrency(lower), output.FormatCurrency(b.Limit), percent(b.Rate))
			lower = b.Limit
		}
	}

	ss := table.SocialSecurity()
	fmt.Fprintf(w, "\nSocial Security: %s up to %s\n", percent(ss.Rate), output.FormatCurrency(ss.WageBase))
	fmt.Fprintf(w, "Medicare: %s\n", percent(table.MedicareRate()))
	for _, status := range domain.FilingStatuses {
		rate, threshold := table.AdditionalMedicare(status)
		fmt.Fprintf(w, "  additional %s over %s (%s)\n", percent(rate), output.FormatCurrency(threshold), status)
	}
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
