package calculation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoTaxTable is returned when no tax table covers the requested tax year
var ErrNoTaxTable = errors.New("no tax table available")

// InvalidInputError is returned by Calculate when the parameters fail
// validation. Fields maps each offending field to its message.
type InvalidInputError struct {
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "Invalid paystub inputs: " + strings.Join(parts, "; ")
}
