package calculation

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rgehrsitz/paystub/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed taxdata/tax_tables.yaml
var defaultTaxTablesYAML []byte

var (
	defaultTablesOnce sync.Once
	defaultTables     *TaxTableSet
	defaultTablesErr  error
)

// TaxTableSet holds the withholding rules of every loaded tax year and the
// state income tax rules. It is read-only once loaded and safe to share.
type TaxTableSet struct {
	metadata domain.RegulatoryMetadata
	years    map[int]domain.TaxYearRules
	sorted   []int
	states   map[string]domain.StateRules
}

// TaxTable is the rule set applied to one tax year
type TaxTable struct {
	year  int
	rules domain.TaxYearRules
}

// DefaultTaxTables returns the tax tables compiled into the binary. The
// embedded data is parsed on first use only.
func DefaultTaxTables() (*TaxTableSet, error) {
	defaultTablesOnce.Do(func() {
		defaultTables, defaultTablesErr = LoadTaxTables(defaultTaxTablesYAML)
	})
	return defaultTables, defaultTablesErr
}

// MustDefaultTaxTables is like DefaultTaxTables but panics if the embedded
// tables are invalid.
func MustDefaultTaxTables() *TaxTableSet {
	tables, err := DefaultTaxTables()
	if err != nil {
		panic(fmt.Sprintf("embedded tax tables: %v", err))
	}
	return tables
}

// LoadTaxTablesFromFile loads tax tables from a YAML file
func LoadTaxTablesFromFile(filename string) (*TaxTableSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax tables %s: %w", filename, err)
	}
	tables, err := LoadTaxTables(data)
	if err != nil {
		return nil, fmt.Errorf("tax tables %s: %w", filename, err)
	}
	return tables, nil
}

// LoadTaxTables parses and validates tax tables from YAML
func LoadTaxTables(data []byte) (*TaxTableSet, error) {
	var cfg domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(cfg.Years) == 0 {
		return nil, fmt.Errorf("at least one tax year is required")
	}

	set := &TaxTableSet{
		metadata: cfg.Metadata,
		years:    make(map[int]domain.TaxYearRules, len(cfg.Years)),
		states:   make(map[string]domain.StateRules, len(cfg.States)),
	}
	for year, rules := range cfg.Years {
		if err := validateYearRules(rules); err != nil {
			return nil, fmt.Errorf("tax year %d: %w", year, err)
		}
		set.years[year] = rules
		set.sorted = append(set.sorted, year)
	}
	sort.Ints(set.sorted)

	for code, rules := range cfg.States {
		if !domain.IsStateCode(code) {
			return nil, fmt.Errorf("unknown state code %q", code)
		}
		if rules.FlatRate.LessThan(decimal.Zero) || rules.FlatRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("state %s: flat rate must be between 0 and 1", code)
		}
		set.states[domain.NormalizeState(code)] = rules
	}
	return set, nil
}

func validateYearRules(rules domain.TaxYearRules) error {
	one := decimal.NewFromInt(1)
	validRate := func(r decimal.Decimal) bool {
		return !r.LessThan(decimal.Zero) && !r.GreaterThan(one)
	}

	for _, status := range domain.FilingStatuses {
		brackets := rules.FederalBrackets[status]
		if len(brackets) == 0 {
			return fmt.Errorf("brackets for %s are required", status)
		}
		prev := decimal.Zero
		for i, b := range brackets {
			if !validRate(b.Rate) {
				return fmt.Errorf("%s bracket %d: rate must be between 0 and 1", status, i+1)
			}
			if i == len(brackets)-1 {
				break
			}
			if !b.Limit.GreaterThan(prev) {
				return fmt.Errorf("%s bracket %d: limits must be positive and ascending", status, i+1)
			}
			prev = b.Limit
		}
		threshold, ok := rules.Medicare.AdditionalThresholds[status]
		if !ok || !threshold.GreaterThan(decimal.Zero) {
			return fmt.Errorf("additional Medicare threshold for %s must be positive", status)
		}
	}

	if !rules.SocialSecurity.WageBase.GreaterThan(decimal.Zero) {
		return fmt.Errorf("social security wage base must be positive")
	}
	if !validRate(rules.SocialSecurity.Rate) {
		return fmt.Errorf("social security rate must be between 0 and 1")
	}
	if !validRate(rules.Medicare.Rate) || !validRate(rules.Medicare.AdditionalRate) {
		return fmt.Errorf("medicare rates must be between 0 and 1")
	}
	return nil
}

// Years returns the loaded tax years in ascending order
func (s *TaxTableSet) Years() []int {
	return append([]int(nil), s.sorted...)
}

// Metadata describes the source of the tables
func (s *TaxTableSet) Metadata() domain.RegulatoryMetadata {
	return s.metadata
}

// ForYear returns the table for taxYear. Years past the newest table use the
// most recent table that does not come after taxYear.
func (s *TaxTableSet) ForYear(taxYear int) (*TaxTable, error) {
	if rules, ok := s.years[taxYear]; ok {
		return &TaxTable{year: taxYear, rules: rules}, nil
	}
	for i := len(s.sorted) - 1; i >= 0; i-- {
		if y := s.sorted[i]; y < taxYear {
			return &TaxTable{year: y, rules: s.years[y]}, nil
		}
	}
	return nil, fmt.Errorf("tax year %d: %w", taxYear, ErrNoTaxTable)
}

// State returns the income tax rules of a state
func (s *TaxTableSet) State(code string) (domain.StateRules, bool) {
	rules, ok := s.states[domain.NormalizeState(code)]
	return rules, ok
}

// Year is the tax year the table was published for
func (t *TaxTable) Year() int { return t.year }

// Brackets returns a copy of the federal brackets for a filing status
func (t *TaxTable) Brackets(status domain.FilingStatus) []domain.TaxBracket {
	return append([]domain.TaxBracket(nil), t.rules.FederalBrackets[status]...)
}

// SocialSecurity returns the Social Security rate and wage base
func (t *TaxTable) SocialSecurity() domain.SocialSecurityFICA {
	return t.rules.SocialSecurity
}

// MedicareRate returns the base Medicare rate
func (t *TaxTable) MedicareRate() decimal.Decimal {
	return t.rules.Medicare.Rate
}

// AdditionalMedicare returns the additional Medicare rate and the income
// threshold above which it applies for a filing status.
func (t *TaxTable) AdditionalMedicare(status domain.FilingStatus) (rate, threshold decimal.Decimal) {
	return t.rules.Medicare.AdditionalRate, t.rules.Medicare.AdditionalThresholds[status]
}
