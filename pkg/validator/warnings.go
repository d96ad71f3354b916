package validator

import (
	"math"
	"strings"
)

type warningRule struct {
	category  Category
	threshold float64
	message   string
}

// warningRules are checked in order; the first hit wins.
var warningRules = []warningRule{
	{CategoryThickness, 20, "Thick materials may require special cutting parameters"},
	{CategoryPower, 10000, "High power settings require additional safety precautions"},
	{CategorySpeed, 20, "High cutting speeds may affect cut quality"},
	{CategoryCost, 1000, "High cost value - please double-check your input"},
}

// warningFor returns the advisory message for an already valid field value,
// or "" when nothing looks suspicious. A spec with an explicit Category is
// matched on it; otherwise the field name is searched for the category word.
func warningFor(spec FieldValidation, value any) string {
	n := Number(value)
	if math.IsNaN(n) {
		return ""
	}

	name := strings.ToLower(spec.Field)
	for _, w := range warningRules {
		matches := spec.Category == w.category
		if spec.Category == CategoryNone {
			matches = strings.Contains(name, string(w.category))
		}
		if matches && n > w.threshold {
			return w.message
		}
	}
	return ""
}
