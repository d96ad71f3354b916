package validator

import (
	"maps"
	"slices"
)

// Built-in template names.
const (
	TemplateMaterialThickness = "materialThickness"
	TemplateLaserPower        = "laserPower"
	TemplateCuttingSpeed      = "cuttingSpeed"
	TemplateCost              = "cost"
	TemplateQuantity          = "quantity"
	TemplateTime              = "time"
	TemplatePercentage        = "percentage"
	TemplateTemperature       = "temperature"
	TemplatePressure          = "pressure"
	TemplateDimension         = "dimension"
)

// Templates is a named set of reusable field specs. Each spec uses a
// canonical field key that is replaced when the template is bound to a
// real input field.
type Templates map[string]FieldValidation

// Lookup returns a copy of the named template.
func (t Templates) Lookup(name string) (FieldValidation, bool) {
	fv, ok := t[name]
	if !ok {
		return FieldValidation{}, false
	}
	return fv.clone(), true
}

// Names returns the template names sorted.
func (t Templates) Names() []string {
	return slices.Sorted(maps.Keys(t))
}

// Merge returns a new set with other layered over t.
func (t Templates) Merge(other Templates) Templates {
	out := make(Templates, len(t)+len(other))
	for name, fv := range t {
		out[name] = fv.clone()
	}
	for name, fv := range other {
		out[name] = fv.clone()
	}
	return out
}

// DefaultTemplates returns a copy of the built-in template table.
func DefaultTemplates() Templates {
	return builtinTemplates.Merge(nil)
}

// Bounds are shop-floor conventions for catching obviously wrong input, not
// physical limits.
var builtinTemplates = Templates{
	TemplateMaterialThickness: {
		Field: "thickness",
		Rules: []Rule{
			Required("Material thickness is required"),
			Min(0.1, "Thickness must be at least 0.1mm"),
			Max(50, "Thickness cannot exceed 50mm"),
		},
		Hint:     "Typical range: 0.5-25mm for most materials",
		Unit:     "mm",
		Default:  3.0,
		Category: CategoryThickness,
	},
	TemplateLaserPower: {
		Field: "power",
		Rules: []Rule{
			Required("Laser power is required"),
			Min(100, "Power must be at least 100W"),
			Max(20000, "Power cannot exceed 20000W"),
		},
		Hint:     "Fiber lasers typically range from 1000W to 12000W",
		Unit:     "W",
		Default:  1000.0,
		Category: CategoryPower,
	},
	TemplateCuttingSpeed: {
		Field: "speed",
		Rules: []Rule{
			Required("Cutting speed is required"),
			Min(0.1, "Speed must be at least 0.1 m/min"),
			Max(50, "Speed cannot exceed 50 m/min"),
		},
		Hint:     "Thin sheet cuts at 10-30 m/min, thick plate below 2 m/min",
		Unit:     "m/min",
		Default:  3.0,
		Category: CategorySpeed,
	},
	TemplateCost: {
		Field: "cost",
		Rules: []Rule{
			Required("Cost is required"),
			Min(0, "Cost cannot be negative"),
		},
		Hint:     "Enter the cost in your local currency",
		Unit:     "$",
		Default:  0.0,
		Category: CategoryCost,
	},
	TemplateQuantity: {
		Field: "quantity",
		Rules: []Rule{
			Required("Quantity is required"),
			Min(1, "Quantity must be at least 1"),
			Max(100000, "Quantity cannot exceed 100,000"),
			Custom(IsInteger, "Quantity must be a whole number"),
		},
		Hint:     "Number of identical parts to produce",
		Unit:     "pcs",
		Default:  1.0,
		Category: CategoryQuantity,
	},
	TemplateTime: {
		Field: "time",
		Rules: []Rule{
			Required("Time is required"),
			Min(0, "Time cannot be negative"),
			Max(10080, "Time cannot exceed one week (10080 min)"),
		},
		Hint:     "Duration in minutes",
		Unit:     "min",
		Default:  0.0,
		Category: CategoryTime,
	},
	TemplatePercentage: {
		Field: "percentage",
		Rules: []Rule{
			Required("Percentage is required"),
			Range(0, 100, "Percentage must be between 0 and 100"),
		},
		Hint:     "Value between 0 and 100",
		Unit:     "%",
		Default:  0.0,
		Category: CategoryPercentage,
	},
	TemplateTemperature: {
		Field: "temperature",
		Rules: []Rule{
			Required("Temperature is required"),
			Range(-273.15, 5000, "Temperature must be between -273.15°C and 5000°C"),
		},
		Hint:     "Ambient shop temperature is usually 15-30°C",
		Unit:     "°C",
		Default:  20.0,
		Category: CategoryTemperature,
	},
	TemplatePressure: {
		Field: "pressure",
		Rules: []Rule{
			Required("Pressure is required"),
			Min(0, "Pressure cannot be negative"),
			Max(30, "Pressure cannot exceed 30 bar"),
		},
		Hint:     "Assist gas: oxygen 0.5-6 bar, nitrogen 8-20 bar",
		Unit:     "bar",
		Default:  10.0,
		Category: CategoryPressure,
	},
	TemplateDimension: {
		Field: "dimension",
		Rules: []Rule{
			Required("Dimension is required"),
			Min(0.1, "Dimension must be at least 0.1mm"),
			Max(10000, "Dimension cannot exceed 10000mm"),
		},
		Hint:     "Length in millimetres",
		Unit:     "mm",
		Default:  100.0,
		Category: CategoryDimension,
	},
}
