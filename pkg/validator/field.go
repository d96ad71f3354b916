package validator

import "slices"

// Category tags a field with the physical quantity it represents. The
// warning heuristics key off the category instead of the field name when
// one is set.
type Category string

const (
	CategoryNone        Category = ""
	CategoryThickness   Category = "thickness"
	CategoryPower       Category = "power"
	CategorySpeed       Category = "speed"
	CategoryCost        Category = "cost"
	CategoryQuantity    Category = "quantity"
	CategoryTime        Category = "time"
	CategoryPercentage  Category = "percentage"
	CategoryTemperature Category = "temperature"
	CategoryPressure    Category = "pressure"
	CategoryDimension   Category = "dimension"
)

// FieldValidation is the rule set and presentation metadata for one input field.
type FieldValidation struct {
	Field    string
	Rules    []Rule
	Hint     string
	Unit     string
	Default  any
	Category Category
}

// Bind returns a copy of fv registered under field.
func (fv FieldValidation) Bind(field string) FieldValidation {
	out := fv.clone()
	out.Field = field
	return out
}

func (fv FieldValidation) clone() FieldValidation {
	fv.Rules = slices.Clone(fv.Rules)
	return fv
}
