package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Number converts a submitted value to a float64 the way numeric rules see it.
// Numbers and numeric strings convert, booleans become 1 or 0. Nil, empty
// strings and anything unparseable yield NaN, so bound checks against them fail.
func Number(value any) float64 {
	switch v := value.(type) {
	case nil:
		return math.NaN()
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return math.NaN()
		}
		value = v
	}

	f, err := cast.ToFloat64E(value)
	if err != nil {
		return math.NaN()
	}
	return f
}

// String renders a submitted value for pattern matching.
func String(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	}
	return cast.ToString(value)
}

// IsEmpty reports whether value counts as missing for the required rule.
// Zero and false are present values.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// IsInteger reports whether value is a finite whole number.
func IsInteger(value any) bool {
	f := Number(value)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}

// IsPositive reports whether value is a number greater than zero.
func IsPositive(value any) bool {
	return Number(value) > 0
}

// IsFinite reports whether value is a number that is neither NaN nor infinite.
func IsFinite(value any) bool {
	f := Number(value)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
