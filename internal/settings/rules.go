package settings

import (
	"errors"
	"fmt"
	"regexp"
)

// Rule is a per-key validation predicate checked by the mutator before a
// value is persisted. The registry is heterogeneous, so rules are a small
// tagged union dispatched by value type rather than one static schema.
type Rule interface {
	Validate(value any) error
}

var (
	// ErrValueWrongType is returned when a proposed value does not match the key's declared type.
	ErrValueWrongType = errors.New("value does not match the setting's declared type")
)

// StringRule validates string settings by length, enumeration and pattern.
// Zero fields are not enforced.
type StringRule struct {
	MinLen  int
	MaxLen  int
	Enum    []string
	Pattern *regexp.Regexp
}

// Validate implements Rule.
func (r StringRule) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return ErrValueWrongType
	}

	if len(s) < r.MinLen {
		return fmt.Errorf("string is shorter than %d characters", r.MinLen)
	}

	if r.MaxLen > 0 && len(s) > r.MaxLen {
		return fmt.Errorf("string is longer than %d characters", r.MaxLen)
	}

	if len(r.Enum) > 0 {
		found := false
		for _, allowed := range r.Enum {
			if s == allowed {
				found = true
				break
			}
		}

		if !found {
			return fmt.Errorf("%q is not one of the allowed values %v", s, r.Enum)
		}
	}

	if r.Pattern != nil && !r.Pattern.MatchString(s) {
		return fmt.Errorf("%q does not match pattern %s", s, r.Pattern)
	}

	return nil
}

// NumberRule validates numeric settings by range. Integer requires a whole
// number, since JSON round-trips all numbers as float64.
type NumberRule struct {
	Min     float64
	Max     float64
	Integer bool
}

// Validate implements Rule.
func (r NumberRule) Validate(value any) error {
	f, ok := toFloat(value)
	if !ok {
		return ErrValueWrongType
	}

	if f < r.Min || f > r.Max {
		return fmt.Errorf("%v is outside the allowed range [%v, %v]", f, r.Min, r.Max)
	}

	if r.Integer && f != float64(int64(f)) {
		return fmt.Errorf("%v is not a whole number", f)
	}

	return nil
}

// toFloat accepts the numeric shapes a value can arrive in: float64 from JSON
// decoding, native ints from in-process callers. Strings and booleans are
// deliberately not coerced.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// BoolRule validates boolean settings. Only true booleans pass; "true" does not.
type BoolRule struct{}

// Validate implements Rule.
func (BoolRule) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return ErrValueWrongType
	}

	return nil
}

// JSONRule validates structured settings. The value must be a JSON object,
// and every listed key must be present.
type JSONRule struct {
	RequiredKeys []string
}

// Validate implements Rule.
func (r JSONRule) Validate(value any) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return ErrValueWrongType
	}

	for _, required := range r.RequiredKeys {
		if _, present := obj[required]; !present {
			return fmt.Errorf("missing required field %q", required)
		}
	}

	return nil
}
