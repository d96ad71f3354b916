package validator

import (
	"fmt"
	"regexp"
)

// RuleType identifies the kind of constraint a Rule applies.
type RuleType string

const (
	RuleRequired RuleType = "required"
	RuleMin      RuleType = "min"
	RuleMax      RuleType = "max"
	RuleRange    RuleType = "range"
	RulePattern  RuleType = "pattern"
	RuleCustom   RuleType = "custom"
)

// Predicate is the signature of a custom rule check.
type Predicate func(value any) bool

// Rule is a single atomic constraint. Build rules with the constructors below;
// a Rule is not modified after construction.
type Rule struct {
	Type    RuleType
	Message string

	// Value holds the threshold for min and max.
	Value float64
	// Bounds holds the inclusive [min, max] pair for range.
	Bounds [2]float64
	// Expr holds the compiled expression for pattern.
	Expr *regexp.Regexp
	// Validator is the check used by custom. A nil Validator always passes.
	Validator Predicate
}

func Required(message string) Rule {
	return Rule{Type: RuleRequired, Message: message}
}

func Min(min float64, message string) Rule {
	return Rule{Type: RuleMin, Value: min, Message: message}
}

func Max(max float64, message string) Rule {
	return Rule{Type: RuleMax, Value: max, Message: message}
}

func Range(min, max float64, message string) Rule {
	return Rule{Type: RuleRange, Bounds: [2]float64{min, max}, Message: message}
}

// Pattern builds a pattern rule from a regular expression source.
// Panics on an invalid expression: rule tables are static and a typo must
// stop start-up rather than silently pass every value.
func Pattern(expr, message string) Rule {
	r, err := PatternE(expr, message)
	if err != nil {
		panic(err)
	}
	return r
}

// PatternE is Pattern for expressions that come from configuration.
func PatternE(expr, message string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: pattern %q: %v", ErrInvalidRuleValue, expr, err)
	}
	return Rule{Type: RulePattern, Expr: re, Message: message}, nil
}

func Custom(fn Predicate, message string) Rule {
	return Rule{Type: RuleCustom, Validator: fn, Message: message}
}

// Check reports whether value satisfies the rule.
// NaN comparisons are false, so bound rules reject non-numeric values.
func (r Rule) Check(value any) bool {
	switch r.Type {
	case RuleRequired:
		return !IsEmpty(value)
	case RuleMin:
		return Number(value) >= r.Value
	case RuleMax:
		return Number(value) <= r.Value
	case RuleRange:
		n := Number(value)
		return n >= r.Bounds[0] && n <= r.Bounds[1]
	case RulePattern:
		if r.Expr == nil {
			return true
		}
		return r.Expr.MatchString(String(value))
	case RuleCustom:
		if r.Validator == nil {
			return true
		}
		return r.Validator(value)
	}
	return true
}

// TranslationKey returns the message catalogue key for the rule type.
func (r Rule) TranslationKey() string {
	return "validation." + string(r.Type)
}

func (r Rule) translationValues(field string) map[string]any {
	values := map[string]any{"field": field}
	switch r.Type {
	case RuleMin:
		values["min"] = r.Value
	case RuleMax:
		values["max"] = r.Value
	case RuleRange:
		values["min"] = r.Bounds[0]
		values["max"] = r.Bounds[1]
	case RulePattern:
		if r.Expr != nil {
			values["pattern"] = r.Expr.String()
		}
	}
	return values
}
