package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// TitleCase upper-cases the first character of a criterion name and keeps the rest as is.
// "productivity" becomes "Productivity", "timeToMarket" becomes "TimeToMarket".
func TitleCase(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return upper.String(string(r)) + name[size:]
}

// ParseNumber parses a user or file supplied number.
// Surrounding whitespace is ignored; NaN and infinities are rejected.
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrNonNumeric)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNonNumeric, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNonNumeric, raw)
	}
	return v, nil
}

// Names returns criterion names in registry order.
func (c Criteria) Names() []string {
	names := make([]string, len(c))
	for i, cr := range c {
		names[i] = cr.Name
	}
	return names
}

// Index returns the position of the named criterion, or -1.
func (c Criteria) Index(name string) int {
	for i, cr := range c {
		if cr.Name == name {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy of the registry.
func (c Criteria) Clone() Criteria {
	if c == nil {
		return nil
	}
	out := make(Criteria, len(c))
	copy(out, c)
	return out
}

// TotalWeight returns the sum of all weights.
func (c Criteria) TotalWeight() float64 {
	total := 0.0
	for _, cr := range c {
		total += cr.Weight
	}
	return total
}

// Validate checks names are non-empty and unique, weights are finite and max scores are positive.
// Weights are intentionally not bounded or required to sum to 1.
func (c Criteria) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: at least one criterion is required", ErrInvalidCriterion)
	}
	seen := make(map[string]struct{}, len(c))
	for i, cr := range c {
		name := strings.TrimSpace(cr.Name)
		if name == "" {
			return fmt.Errorf("%w: criterion %d has an empty name", ErrInvalidCriterion, i+1)
		}
		if name != cr.Name {
			return fmt.Errorf("%w: criterion %q has surrounding whitespace", ErrInvalidCriterion, cr.Name)
		}
		if strings.EqualFold(name, NameColumn) {
			return fmt.Errorf("%w: %q is reserved for the entity name", ErrInvalidCriterion, name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateCriterion, name)
		}
		seen[name] = struct{}{}
		if math.IsNaN(cr.Weight) || math.IsInf(cr.Weight, 0) {
			return fmt.Errorf("%w: weight for %q must be finite", ErrInvalidCriterion, name)
		}
		if math.IsNaN(cr.MaxScore) || math.IsInf(cr.MaxScore, 0) || cr.MaxScore <= 0 {
			return fmt.Errorf("%w: max score for %q must be greater than 0", ErrInvalidCriterion, name)
		}
	}
	return nil
}
