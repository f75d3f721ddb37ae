package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrEmptyInput is returned when an input document has no content
var ErrEmptyInput = errors.New("input is empty")

// InputParser handles parsing of paystub input files. JSON documents are
// accepted as well as YAML.
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile parses and validates a YAML or JSON input file
func (ip *InputParser) LoadFromFile(filename string) (*domain.PaystubInput, ValidationResult, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, ValidationResult{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseAndValidate(data)
}

// LoadFromReader parses and validates input read from r
func (ip *InputParser) LoadFromReader(r io.Reader) (*domain.PaystubInput, ValidationResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ValidationResult{}, fmt.Errorf("failed to read input: %w", err)
	}
	return ip.ParseAndValidate(data)
}

// ParseAndValidate parses data and runs ValidateInputs on the result. Type
// errors found while parsing take precedence over rule violations reported
// for the same field.
func (ip *InputParser) ParseAndValidate(data []byte) (*domain.PaystubInput, ValidationResult, error) {
	input, fieldErrs, err := ip.Parse(data)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	fieldErrs.Merge(ValidateInputs(input).Errors)
	return input, ValidationResult{IsValid: len(fieldErrs) == 0, Errors: fieldErrs}, nil
}

// Parse decodes a paystub input document field by field. A field holding a
// value of the wrong type is reported in the returned FieldErrors and left
// unset; the error return is reserved for documents that cannot be read as
// a mapping at all. Null values count as absent and unknown fields are ignored.
func (ip *InputParser) Parse(data []byte) (*domain.PaystubInput, FieldErrors, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, ErrEmptyInput
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse input: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil, ErrEmptyInput
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("failed to parse input: expected an object, got %s", nodeKind(root))
	}

	input := &domain.PaystubInput{}
	errs := FieldErrors{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		if isNull(value) {
			continue
		}
		switch key {
		case "hourlyRate":
			input.HourlyRate = decodeDecimal(errs, key, "Hourly rate", value)
		case "hoursPerPeriod":
			input.HoursPerPeriod = decodeDecimal(errs, key, "Hours per period", value)
		case "overtimeHours":
			input.OvertimeHours = decodeDecimal(errs, key, "Overtime hours", value)
		case "overtimeRate":
			input.OvertimeRate = decodeDecimal(errs, key, "Overtime rate", value)
		case "filingStatus":
			input.FilingStatus = domain.FilingStatus(decodeString(errs, key, "Filing status", value))
		case "taxYear":
			input.TaxYear = decodeInt(errs, key, "Tax year", value)
		case "state":
			input.State = decodeString(errs, key, "State", value)
		case "payFrequency":
			input.PayFrequency = domain.PayFrequency(decodeString(errs, key, "Pay frequency", value))
		case "startDate":
			input.StartDate = decodeString(errs, key, "Start date", value)
		case "additionalDeductions":
			input.AdditionalDeductions = decodeDeductions(errs, value)
		}
	}
	return input, errs, nil
}

func decodeDeductions(errs FieldErrors, n *yaml.Node) []domain.Deduction {
	if n.Kind != yaml.SequenceNode {
		errs.Add("additionalDeductions", "Additional deductions must be a list")
		return nil
	}
	deductions := make([]domain.Deduction, 0, len(n.Content))
	for i, item := range n.Content {
		prefix := fmt.Sprintf("additionalDeductions[%d]", i)
		if item.Kind != yaml.MappingNode {
			errs.Add(prefix, "Deduction must be an object with a name and amount")
			continue
		}
		var d domain.Deduction
		for j := 0; j+1 < len(item.Content); j += 2 {
			key, value := item.Content[j].Value, item.Content[j+1]
			if isNull(value) {
				continue
			}
			switch key {
			case "name":
				d.Name = decodeString(errs, prefix+".name", "Deduction name", value)
			case "amount":
				if amount := decodeDecimal(errs, prefix+".amount", "Deduction amount", value); amount != nil {
					d.Amount = *amount
				}
			}
		}
		deductions = append(deductions, d)
	}
	return deductions
}

func decodeDecimal(errs FieldErrors, field, label string, n *yaml.Node) *decimal.Decimal {
	if n.Kind != yaml.ScalarNode || (n.ShortTag() != "!!int" && n.ShortTag() != "!!float") {
		errs.Add(field, label+" must be a number")
		return nil
	}
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		errs.Add(field, label+" must be a number")
		return nil
	}
	return &d
}

func decodeInt(errs FieldErrors, field, label string, n *yaml.Node) int {
	var v int
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!int" || n.Decode(&v) != nil {
		errs.Add(field, label+" must be a whole number")
		return 0
	}
	return v
}

func decodeString(errs FieldErrors, field, label string, n *yaml.Node) string {
	// unquoted YAML dates resolve to timestamps; keep their literal text
	if n.Kind != yaml.ScalarNode || (n.ShortTag() != "!!str" && n.ShortTag() != "!!timestamp") {
		errs.Add(field, label+" must be a string")
		return ""
	}
	return strings.TrimSpace(n.Value)
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "an unsupported document"
	}
}
