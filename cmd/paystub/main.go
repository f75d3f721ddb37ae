package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/paystub/internal/calculation"
	"github.com/rgehrsitz/paystub/internal/config"
	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/rgehrsitz/paystub/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package.
// Debug and info output is only written in debug mode.
type simpleCLILogger struct {
	debug bool
}

func (l simpleCLILogger) Debugf(format string, args ...any) {
	if l.debug {
		log.Printf("DEBUG: "+format, args...)
	}
}

func (l simpleCLILogger) Infof(format string, args ...any) {
	if l.debug {
		log.Printf("INFO: "+format, args...)
	}
}

func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errInputRejected is returned once invalid input has been reported to the user
var errInputRejected = errors.New("invalid paystub inputs")

const invalidInputMessage = "Invalid paystub inputs"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paystub",
		Short: "Paystub and payroll withholding calculator",
		Long: "Generates a full year of pay periods with federal income tax, Social Security,\n" +
			"Medicare and state withholding from an hourly pay input file (YAML or JSON).",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("tax-tables", "", "Path to a tax tables YAML file (default: built-in tables)")

	root.AddCommand(calculateCmd(), validateCmd(), exportCmd(), tablesCmd(), versionCmd())
	return root
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate the pay period schedule",
		Long:  "Calculate the pay period schedule for an input file. Use - to read from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unknown format %q (supported: %s)", outputFormat, strings.Join(output.FormatterNames, ", "))
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && f.Name() == "console" {
				f = output.ConsoleFormatter{Verbose: true}
			}

			input, validation, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}
			if !validation.IsValid {
				return reportInvalid(cmd, f.Name() == "json", validation.Errors)
			}

			result, err := runEngine(cmd, input)
			if err != nil {
				return err
			}

			data, err := f.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-verbose, json, csv)")
	cmd.Flags().BoolP("verbose", "v", false, "Include withholding assumptions in console output")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			_, validation, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(validation, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				if !validation.IsValid {
					return errInputRejected
				}
				return nil
			}
			if !validation.IsValid {
				return reportInvalid(cmd, false, validation.Errors)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", args[0])
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Report the result as JSON")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [input-file]",
		Short: "Export the pay period schedule as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile, _ := cmd.Flags().GetString("output")

			input, validation, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}
			if !validation.IsValid {
				return reportInvalid(cmd, false, validation.Errors)
			}

			result, err := runEngine(cmd, input)
			if err != nil {
				return err
			}
			if err := output.WriteFormatted(output.CSVFormatter{}, result, outputFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pay periods to %s\n", len(result.PayPeriods), outputFile)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "paystub.csv", "CSV file to write")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paystub %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// loadInput parses and validates the input file, or stdin when path is "-"
func loadInput(cmd *cobra.Command, path string) (*domain.PaystubInput, config.ValidationResult, error) {
	parser := config.NewInputParser()
	if path == "-" {
		return parser.LoadFromReader(cmd.InOrStdin())
	}
	return parser.LoadFromFile(path)
}

// loadTables returns the tables named by --tax-tables, or the built-in tables
func loadTables(cmd *cobra.Command) (*calculation.TaxTableSet, error) {
	path, _ := cmd.Flags().GetString("tax-tables")
	if path == "" {
		return calculation.DefaultTaxTables()
	}
	return calculation.LoadTaxTablesFromFile(path)
}

func runEngine(cmd *cobra.Command, input *domain.PaystubInput) (*domain.PaystubResult, error) {
	tables, err := loadTables(cmd)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewPaystubEngineWithTables(tables)
	debugMode, _ := cmd.Flags().GetBool("debug")
	engine.SetLogger(simpleCLILogger{debug: debugMode})

	result, err := engine.Calculate(input)
	if err != nil {
		var invalid *calculation.InvalidInputError
		if errors.As(err, &invalid) {
			return nil, reportInvalid(cmd, false, invalid.Fields)
		}
		return nil, err
	}
	return result, nil
}

// reportInvalid writes the field errors to stdout and returns errInputRejected
func reportInvalid(cmd *cobra.Command, asJSON bool, fieldErrors map[string]string) error {
	out := cmd.OutOrStdout()
	if asJSON {
		data, err := output.FormatError(invalidInputMessage, fieldErrors, true)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
		return errInputRejected
	}

	fmt.Fprintln(out, invalidInputMessage+":")
	for _, field := range config.FieldErrors(fieldErrors).Fields() {
		fmt.Fprintf(out, "  %s: %s\n", field, fieldErrors[field])
	}
	return errInputRejected
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInputRejected) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
