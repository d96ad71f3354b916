package calculator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/calckit/pkg/calculator"
)

func TestCutting(t *testing.T) {
	t.Parallel()

	in := calculator.CuttingInput{
		Thickness:        2,
		CutLength:        3000,
		Pierces:          4,
		Speed:            3,
		Power:            2000,
		HourlyRate:       120,
		ElectricityPrice: 0.2,
		GasFlow:          10,
		GasPrice:         0.01,
		MaterialCost:     5,
		Quantity:         10,
		SetupTime:        15,
	}

	t.Run("per part figures", func(t *testing.T) {
		t.Parallel()
		res := calculator.Cutting(in)

		assert.InDelta(t, 0.2, res.PierceSeconds, 1e-9)
		assert.InDelta(t, 1.0, res.CutMinutes, 1e-9)
		assert.InDelta(t, 0.8/60, res.PierceMinutes, 1e-9)
		assert.InDelta(t, 2.026667, res.MachineCost, 1e-6)
		assert.InDelta(t, 0.0067556, res.EnergyCost, 1e-6)
		assert.InDelta(t, 0.1013333, res.GasCost, 1e-6)
		assert.InDelta(t, 7.134756, res.PartCost, 1e-6)
	})

	t.Run("batch figures", func(t *testing.T) {
		t.Parallel()
		res := calculator.Cutting(in)

		assert.InDelta(t, 30.0, res.SetupCost, 1e-9)
		assert.InDelta(t, 101.34756, res.TotalCost, 1e-5)
		assert.InDelta(t, 25.13333, res.TotalMinutes, 1e-5)
		assert.InDelta(t, res.TotalCost/10, res.CostPerPart, 1e-9)
		assert.InDelta(t, res.TotalMinutes/60, res.MachineHours, 1e-9)

		var sum float64
		for _, line := range res.CostBreakdown {
			sum += line.Amount
		}
		assert.InDelta(t, res.TotalCost, sum, 1e-9)
	})

	t.Run("quantity below one counts as one", func(t *testing.T) {
		t.Parallel()
		zero := in
		zero.Quantity = 0
		one := in
		one.Quantity = 1

		assert.Equal(t, calculator.Cutting(one), calculator.Cutting(zero))
	})

	t.Run("zero speed yields no cutting time", func(t *testing.T) {
		t.Parallel()
		still := in
		still.Speed = 0

		res := calculator.Cutting(still)
		assert.Zero(t, res.CutMinutes)
		assert.Empty(t, res.ThroughputNote)
	})

	t.Run("pierce dominated parts get a note", func(t *testing.T) {
		t.Parallel()
		holes := in
		holes.CutLength = 100
		holes.Pierces = 200

		assert.NotEmpty(t, calculator.Cutting(holes).ThroughputNote)
		assert.Empty(t, calculator.Cutting(in).ThroughputNote)
	})
}

func TestCuttingForm(t *testing.T) {
	t.Parallel()

	form := calculator.NewCutting().Form()

	res := form.ValidateField("thickness", 25)
	assert.True(t, res.IsValid)
	assert.Equal(t, []string{"Thick materials may require special cutting parameters"}, res.Warnings)

	res = form.ValidateField("hourlyRate", 1500)
	assert.True(t, res.IsValid)
	assert.Equal(t, []string{"High cost value - please double-check your input"}, res.Warnings)

	res = form.ValidateField("pierces", 2.5)
	assert.Equal(t, []string{"Pierce count must be a whole number"}, res.Errors)

	unit, ok := form.Unit("hourlyRate")
	assert.True(t, ok)
	assert.Equal(t, "$/h", unit)
}
