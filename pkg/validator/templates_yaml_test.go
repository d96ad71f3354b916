package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calckit/pkg/validator"
)

const sheetTemplates = `
templates:
  sheetWidth:
    field: width
    hint: Usable sheet width
    unit: mm
    default: 3000
    category: dimension
    rules:
      - type: required
        message: Sheet width is required
      - type: range
        value: [100, 4000]
        message: Sheet width must be between 100 and 4000mm
      - type: custom
        validator: integer
        message: Sheet width must be a whole number
  partCode:
    rules:
      - type: pattern
        value: "^[A-Z]{2}-\\d+$"
        message: Part code must look like AB-123
`

func TestLoadTemplates(t *testing.T) {
	t.Parallel()

	t.Run("builds rules from yaml", func(t *testing.T) {
		tmpls, err := validator.LoadTemplates(strings.NewReader(sheetTemplates))
		require.NoError(t, err)
		assert.Equal(t, []string{"partCode", "sheetWidth"}, tmpls.Names())

		spec, ok := tmpls.Lookup("sheetWidth")
		require.True(t, ok)
		assert.Equal(t, "width", spec.Field)
		assert.Equal(t, "mm", spec.Unit)
		assert.Equal(t, 3000, spec.Default)
		assert.Equal(t, validator.CategoryDimension, spec.Category)
		require.Len(t, spec.Rules, 3)

		code, ok := tmpls.Lookup("partCode")
		require.True(t, ok)
		assert.Equal(t, "partCode", code.Field)
	})

	t.Run("loaded templates drive a validator", func(t *testing.T) {
		tmpls, err := validator.LoadTemplates(strings.NewReader(sheetTemplates))
		require.NoError(t, err)

		v := validator.New(validator.WithTemplates(validator.DefaultTemplates().Merge(tmpls)))
		v.AddTemplate("width", "sheetWidth")
		v.AddTemplate("code", "partCode")
		v.AddTemplate("thickness", validator.TemplateMaterialThickness)

		assert.Equal(t, []string{"Sheet width is required",
			"Sheet width must be between 100 and 4000mm",
			"Sheet width must be a whole number",
		}, v.ValidateField("width", nil).Errors)
		assert.Equal(t, []string{"Sheet width must be a whole number"}, v.ValidateField("width", 1250.5).Errors)
		assert.True(t, v.ValidateField("width", 1250).IsValid)
		assert.True(t, v.ValidateField("code", "AB-12").IsValid)
		assert.False(t, v.ValidateField("code", "ab-12").IsValid)
		assert.True(t, v.ValidateField("thickness", 3).IsValid)
	})

	t.Run("empty document yields no templates", func(t *testing.T) {
		tmpls, err := validator.LoadTemplates(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, tmpls)
	})

	t.Run("rejects unknown rule type", func(t *testing.T) {
		_, err := validator.LoadTemplates(strings.NewReader(`
templates:
  x:
    rules:
      - type: between
`))
		assert.ErrorIs(t, err, validator.ErrUnknownRuleType)
	})

	t.Run("rejects unknown predicate", func(t *testing.T) {
		_, err := validator.LoadTemplates(strings.NewReader(`
templates:
  x:
    rules:
      - type: custom
        validator: prime
`))
		assert.ErrorIs(t, err, validator.ErrUnknownPredicate)
	})

	t.Run("rejects malformed range", func(t *testing.T) {
		_, err := validator.LoadTemplates(strings.NewReader(`
templates:
  x:
    rules:
      - type: range
        value: [1]
`))
		assert.ErrorIs(t, err, validator.ErrInvalidRuleValue)
	})

	t.Run("rejects missing threshold", func(t *testing.T) {
		_, err := validator.LoadTemplates(strings.NewReader(`
templates:
  x:
    rules:
      - type: min
`))
		assert.ErrorIs(t, err, validator.ErrInvalidRuleValue)
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		_, err := validator.LoadTemplates(strings.NewReader("templates: [oops"))
		assert.ErrorIs(t, err, validator.ErrInvalidTemplates)
	})
}

func TestDefaultTemplates(t *testing.T) {
	t.Parallel()
	tmpls := validator.DefaultTemplates()
	assert.Equal(t, []string{
		"cost", "cuttingSpeed", "dimension", "laserPower", "materialThickness",
		"percentage", "pressure", "quantity", "temperature", "time",
	}, tmpls.Names())

	delete(tmpls, validator.TemplateCost)
	_, ok := validator.DefaultTemplates().Lookup(validator.TemplateCost)
	assert.True(t, ok)
}
