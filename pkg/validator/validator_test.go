package validator_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calckit/pkg/validator"
)

func TestValidator_ValidateField(t *testing.T) {
	t.Parallel()

	t.Run("thickness below minimum fails with template message", func(t *testing.T) {
		t.Parallel()
		v := validator.New()
		v.AddTemplate("thickness", validator.TemplateMaterialThickness)

		res := v.ValidateField("thickness", 0.05)
		assert.False(t, res.IsValid)
		assert.Equal(t, []string{"Thickness must be at least 0.1mm"}, res.Errors)
		assert.Empty(t, res.Warnings)
	})

	t.Run("thick material passes with warning", func(t *testing.T) {
		t.Parallel()
		v := validator.New()
		v.AddTemplate("thickness", validator.TemplateMaterialThickness)

		res := v.ValidateField("thickness", 25)
		assert.True(t, res.IsValid)
		assert.Empty(t, res.Errors)
		assert.Equal(t, []string{"Thick materials may require special cutting parameters"}, res.Warnings)
	})

	t.Run("fractional quantity fails the whole number check", func(t *testing.T) {
		t.Parallel()
		v := validator.New()
		v.AddTemplate("quantity", validator.TemplateQuantity)

		res := v.ValidateField("quantity", 3.5)
		assert.False(t, res.IsValid)
		assert.Equal(t, []string{"Quantity must be a whole number"}, res.Errors)
	})

	t.Run("unregistered field is valid", func(t *testing.T) {
		t.Parallel()
		v := validator.New()

		for _, value := range []any{"bar", nil, "", 0, -1.5} {
			res := v.ValidateField("foo", value)
			assert.Equal(t, validator.Result{IsValid: true, Errors: []string{}, Warnings: []string{}}, res)
		}
	})

	t.Run("pattern rule", func(t *testing.T) {
		t.Parallel()
		v := validator.New(validator.WithRules(validator.FieldValidation{
			Field: "code",
			Rules: []validator.Rule{validator.Pattern(`^[A-Z]+$`, "Code must be upper case letters")},
		}))

		res := v.ValidateField("code", "abc")
		assert.False(t, res.IsValid)
		assert.Equal(t, []string{"Code must be upper case letters"}, res.Errors)

		assert.True(t, v.ValidateField("code", "ABC").IsValid)
	})

	t.Run("collects every failing rule", func(t *testing.T) {
		t.Parallel()
		v := validator.New()
		v.AddTemplate("thickness", validator.TemplateMaterialThickness)

		res := v.ValidateField("thickness", "")
		assert.False(t, res.IsValid)
		assert.Equal(t, []string{
			"Material thickness is required",
			"Thickness must be at least 0.1mm",
			"Thickness cannot exceed 50mm",
		}, res.Errors)
	})

	t.Run("non numeric value fails bound rules", func(t *testing.T) {
		t.Parallel()
		v := validator.New()
		v.AddTemplate("power", validator.TemplateLaserPower)

		res := v.ValidateField("power", "lots")
		assert.False(t, res.IsValid)
		assert.Equal(t, []string{"Power must be at least 100W", "Power cannot exceed 20000W"}, res.Errors)
	})

	t.Run("numeric strings are accepted", func(t *testing.T) {
		t.Parallel()
		v := validator.New()
		v.AddTemplate("power", validator.TemplateLaserPower)

		assert.True(t, v.ValidateField("power", " 1500 ").IsValid)
	})
}

func TestValidator_Required(t *testing.T) {
	t.Parallel()
	v := validator.New(validator.WithRules(validator.FieldValidation{
		Field: "count",
		Rules: []validator.Rule{validator.Required("Count is required")},
	}))

	t.Run("empty values fail", func(t *testing.T) {
		for _, value := range []any{nil, ""} {
			res := v.ValidateField("count", value)
			assert.False(t, res.IsValid)
			assert.Equal(t, []string{"Count is required"}, res.Errors)
		}
	})

	t.Run("zero and false are present", func(t *testing.T) {
		for _, value := range []any{0, 0.0, false, " "} {
			assert.True(t, v.ValidateField("count", value).IsValid, "value %#v", value)
		}
	})
}

func TestValidator_BoundsAreInclusive(t *testing.T) {
	t.Parallel()
	v := validator.New(validator.WithRules(
		validator.FieldValidation{Field: "low", Rules: []validator.Rule{validator.Min(10, "too low")}},
		validator.FieldValidation{Field: "high", Rules: []validator.Rule{validator.Max(10, "too high")}},
		validator.FieldValidation{Field: "band", Rules: []validator.Rule{validator.Range(1, 5, "out of band")}},
	))

	assert.True(t, v.ValidateField("low", 10).IsValid)
	assert.False(t, v.ValidateField("low", 9).IsValid)
	assert.True(t, v.ValidateField("high", 10).IsValid)
	assert.False(t, v.ValidateField("high", 11).IsValid)
	assert.True(t, v.ValidateField("band", 1).IsValid)
	assert.True(t, v.ValidateField("band", 5).IsValid)
	assert.False(t, v.ValidateField("band", 0).IsValid)
	assert.False(t, v.ValidateField("band", 6).IsValid)
	assert.False(t, v.ValidateField("band", nil).IsValid)
}

func TestValidator_CustomRule(t *testing.T) {
	t.Parallel()

	t.Run("nil predicate always passes", func(t *testing.T) {
		v := validator.New(validator.WithRules(validator.FieldValidation{
			Field: "x",
			Rules: []validator.Rule{validator.Custom(nil, "never shown")},
		}))
		assert.True(t, v.ValidateField("x", "anything").IsValid)
	})

	t.Run("predicate receives the raw value", func(t *testing.T) {
		var got any
		v := validator.New(validator.WithRules(validator.FieldValidation{
			Field: "x",
			Rules: []validator.Rule{validator.Custom(func(value any) bool {
				got = value
				return false
			}, "rejected")},
		}))

		res := v.ValidateField("x", 42)
		assert.Equal(t, 42, got)
		assert.Equal(t, []string{"rejected"}, res.Errors)
	})
}

func TestValidator_AddRuleOverwrites(t *testing.T) {
	t.Parallel()
	v := validator.New()
	v.AddRule(validator.FieldValidation{Field: "a", Rules: []validator.Rule{validator.Min(10, "first")}})
	v.AddRule(validator.FieldValidation{Field: "b"})
	v.AddRule(validator.FieldValidation{Field: "a", Rules: []validator.Rule{validator.Min(100, "second")}})

	assert.Equal(t, []string{"second"}, v.ValidateField("a", 50).Errors)
	assert.Equal(t, []string{"a", "b"}, v.Fields())
}

func TestValidator_AddTemplate(t *testing.T) {
	t.Parallel()

	t.Run("binds template to field name", func(t *testing.T) {
		v := validator.New()
		v.AddTemplate("sheetThickness", validator.TemplateMaterialThickness)

		spec, ok := v.Spec("sheetThickness")
		require.True(t, ok)
		assert.Equal(t, "sheetThickness", spec.Field)
		_, ok = v.Spec("thickness")
		assert.False(t, ok)
	})

	t.Run("unknown template is a no-op and is logged", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		v := validator.New(validator.WithLogger(log))
		v.AddTemplate("x", "noSuchTemplate")

		assert.Empty(t, v.Fields())
		assert.Contains(t, buf.String(), "noSuchTemplate")
	})

	t.Run("template set can be replaced", func(t *testing.T) {
		custom := validator.Templates{
			"code": {Field: "code", Rules: []validator.Rule{validator.Required("Code is required")}},
		}
		v := validator.New(validator.WithTemplates(custom))
		v.AddTemplate("thickness", validator.TemplateMaterialThickness)
		v.AddTemplate("sku", "code")

		assert.Equal(t, []string{"sku"}, v.Fields())
	})

	t.Run("mutating a bound template does not touch the table", func(t *testing.T) {
		v := validator.New()
		v.AddTemplate("thickness", validator.TemplateMaterialThickness)

		spec, _ := v.Spec("thickness")
		spec.Rules[0] = validator.Min(1000, "changed")

		tmpl, ok := validator.DefaultTemplates().Lookup(validator.TemplateMaterialThickness)
		require.True(t, ok)
		assert.Equal(t, validator.RuleRequired, tmpl.Rules[0].Type)
		assert.True(t, v.ValidateField("thickness", 3).IsValid)
	})
}

func TestValidator_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    validator.FieldValidation
		value   any
		warning []string
	}{
		{
			name:    "power by name",
			spec:    validator.FieldValidation{Field: "laserPower"},
			value:   12000,
			warning: []string{"High power settings require additional safety precautions"},
		},
		{
			name:    "speed by name",
			spec:    validator.FieldValidation{Field: "cuttingSpeed"},
			value:   "25",
			warning: []string{"High cutting speeds may affect cut quality"},
		},
		{
			name:    "cost by name",
			spec:    validator.FieldValidation{Field: "materialCost"},
			value:   1500,
			warning: []string{"High cost value - please double-check your input"},
		},
		{
			name:    "name match is case insensitive",
			spec:    validator.FieldValidation{Field: "SheetThickness"},
			value:   21,
			warning: []string{"Thick materials may require special cutting parameters"},
		},
		{
			name:    "threshold is exclusive",
			spec:    validator.FieldValidation{Field: "thickness"},
			value:   20,
			warning: []string{},
		},
		{
			name:    "first matching rule wins",
			spec:    validator.FieldValidation{Field: "thicknessPowerCost"},
			value:   20000,
			warning: []string{"Thick materials may require special cutting parameters"},
		},
		{
			name:    "explicit category overrides the name",
			spec:    validator.FieldValidation{Field: "powerBudget", Category: validator.CategoryCost},
			value:   5000,
			warning: []string{"High cost value - please double-check your input"},
		},
		{
			name:    "category without heuristic never warns",
			spec:    validator.FieldValidation{Field: "thickness", Category: validator.CategoryQuantity},
			value:   500,
			warning: []string{},
		},
		{
			name:    "non numeric value never warns",
			spec:    validator.FieldValidation{Field: "power"},
			value:   "high",
			warning: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New(validator.WithRules(tt.spec))
			res := v.ValidateField(tt.spec.Field, tt.value)
			assert.True(t, res.IsValid)
			assert.Equal(t, tt.warning, res.Warnings)
		})
	}

	t.Run("no warning alongside errors", func(t *testing.T) {
		v := validator.New(validator.WithRules(validator.FieldValidation{
			Field: "thickness",
			Rules: []validator.Rule{validator.Max(10, "too thick")},
		}))

		res := v.ValidateField("thickness", 30)
		assert.Equal(t, []string{"too thick"}, res.Errors)
		assert.Empty(t, res.Warnings)
	})
}

func TestValidator_Idempotent(t *testing.T) {
	t.Parallel()
	v := validator.New()
	v.AddTemplate("thickness", validator.TemplateMaterialThickness)
	v.AddTemplate("quantity", validator.TemplateQuantity)

	for _, value := range []any{25, 0.05, "x", nil, 3} {
		first := v.ValidateField("thickness", value)
		second := v.ValidateField("thickness", value)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("ValidateField(%v) not idempotent (-first +second):\n%s", value, diff)
		}
	}
}

func TestValidator_ValidateFields(t *testing.T) {
	t.Parallel()
	v := validator.New()
	v.AddTemplate("thickness", validator.TemplateMaterialThickness)
	v.AddTemplate("quantity", validator.TemplateQuantity)

	data := validator.Inputs{
		{Field: "quantity", Value: 0},
		{Field: "thickness", Value: 0.05},
		{Field: "notes", Value: "rush order"},
	}

	results := v.ValidateFields(data)
	require.Len(t, results, 3)
	assert.False(t, results["quantity"].IsValid)
	assert.False(t, results["thickness"].IsValid)
	assert.True(t, results["notes"].IsValid)

	assert.False(t, v.IsValid(data))
	assert.Equal(t, []string{
		"Quantity must be at least 1",
		"Thickness must be at least 0.1mm",
	}, v.AllErrors(data))

	valid := validator.Inputs{{Field: "quantity", Value: 10}, {Field: "thickness", Value: 2}}
	assert.True(t, v.IsValid(valid))
	assert.Empty(t, v.AllErrors(valid))
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for valid data", func(t *testing.T) {
		v := validator.New()
		v.AddTemplate("quantity", validator.TemplateQuantity)
		assert.NoError(t, v.Validate(validator.Inputs{{Field: "quantity", Value: 5}}))
	})

	t.Run("returns translatable errors", func(t *testing.T) {
		v := validator.New()
		v.AddTemplate("percentage", validator.TemplatePercentage)

		err := v.Validate(validator.Inputs{{Field: "percentage", Value: 120}})
		require.Error(t, err)
		require.True(t, validator.IsValidationError(err))

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "percentage", verrs[0].Field)
		assert.Equal(t, "Percentage must be between 0 and 100", verrs[0].Message)
		assert.Equal(t, "validation.range", verrs[0].TranslationKey)
		assert.Equal(t, map[string]any{"field": "percentage", "min": 0.0, "max": 100.0}, verrs[0].TranslationValues)
	})
}

func TestValidator_StrictFields(t *testing.T) {
	t.Parallel()
	v := validator.New(validator.WithStrictFields())

	res := v.ValidateField("foo", "bar")
	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Unknown field: foo"}, res.Errors)

	err := v.Validate(validator.Inputs{{Field: "foo", Value: 1}})
	verrs := validator.ExtractValidationErrors(err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "validation.unknown_field", verrs[0].TranslationKey)
}

func TestValidator_Lookups(t *testing.T) {
	t.Parallel()
	v := validator.New()
	v.AddTemplate("power", validator.TemplateLaserPower)

	unit, ok := v.Unit("power")
	assert.True(t, ok)
	assert.Equal(t, "W", unit)

	hint, ok := v.Hint("power")
	assert.True(t, ok)
	assert.NotEmpty(t, hint)

	def, ok := v.Default("power")
	assert.True(t, ok)
	assert.Equal(t, 1000.0, def)

	_, ok = v.Unit("missing")
	assert.False(t, ok)
	_, ok = v.Hint("missing")
	assert.False(t, ok)
	def, ok = v.Default("missing")
	assert.False(t, ok)
	assert.Nil(t, def)
}
