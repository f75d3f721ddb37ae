package domain

import "strings"

// StateCodes lists the USPS codes of the 50 states and the District of Columbia
var StateCodes = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

var stateCodeSet = func() map[string]bool {
	m := make(map[string]bool, len(StateCodes))
	for _, c := range StateCodes {
		m[c] = true
	}
	return m
}()

// NormalizeState trims and upper-cases a state code
func NormalizeState(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsStateCode reports whether code names a recognized state, ignoring case
func IsStateCode(code string) bool {
	return stateCodeSet[NormalizeState(code)]
}
