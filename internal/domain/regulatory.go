package domain

import (
	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains the payroll tax rules for every supported tax year.
// It is loaded from a tax table YAML file and never modified afterwards.
type RegulatoryConfig struct {
	Metadata RegulatoryMetadata    `yaml:"metadata" json:"metadata"`
	Years    map[int]TaxYearRules  `yaml:"years" json:"years"`
	States   map[string]StateRules `yaml:"states" json:"states"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// TaxYearRules contains the federal withholding rules of a single tax year
type TaxYearRules struct {
	FederalBrackets map[FilingStatus][]TaxBracket `yaml:"federal_brackets" json:"federal_brackets"`
	SocialSecurity  SocialSecurityFICA            `yaml:"social_security" json:"social_security"`
	Medicare        MedicareFICA                  `yaml:"medicare" json:"medicare"`
}

// TaxBracket is one marginal bracket. Limit is the upper income bound of the
// bracket; a zero limit on the final bracket means it is unbounded.
type TaxBracket struct {
	Limit decimal.Decimal `yaml:"limit" json:"limit"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// SocialSecurityFICA contains Social Security FICA rules
type SocialSecurityFICA struct {
	Rate     decimal.Decimal `yaml:"rate" json:"rate"`
	WageBase decimal.Decimal `yaml:"wage_base" json:"wage_base"`
}

// MedicareFICA contains Medicare FICA rules
type MedicareFICA struct {
	Rate                 decimal.Decimal                  `yaml:"rate" json:"rate"`
	AdditionalRate       decimal.Decimal                  `yaml:"additional_rate" json:"additional_rate"`
	AdditionalThresholds map[FilingStatus]decimal.Decimal `yaml:"additional_thresholds" json:"additional_thresholds"`
}

// StateRules contains state-specific wage withholding rules
type StateRules struct {
	IncomeTax bool            `yaml:"income_tax" json:"income_tax"`
	FlatRate  decimal.Decimal `yaml:"flat_rate,omitempty" json:"flat_rate,omitempty"`
}
