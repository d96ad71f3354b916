package calculator

import (
	"context"

	"github.com/dmitrymomot/calckit/pkg/validator"
)

// CuttingInput describes one laser cut part and the shop rates used to cost it.
type CuttingInput struct {
	Thickness        float64 `json:"thickness"`        // mm
	CutLength        float64 `json:"cutLength"`        // mm of cutting path per part
	Pierces          int     `json:"pierces"`          // pierce points per part
	Speed            float64 `json:"speed"`            // m/min
	Power            float64 `json:"power"`            // W
	HourlyRate       float64 `json:"hourlyRate"`       // machine cost per hour
	ElectricityPrice float64 `json:"electricityPrice"` // per kWh
	GasFlow          float64 `json:"gasFlow"`          // L/min
	GasPrice         float64 `json:"gasPrice"`         // per litre
	MaterialCost     float64 `json:"materialCost"`     // per part
	Quantity         int     `json:"quantity"`
	SetupTime        float64 `json:"setupTime"` // minutes per batch
}

// CuttingResult holds per-part and per-batch time and cost.
type CuttingResult struct {
	PierceSeconds  float64 `json:"pierceSeconds"`
	CutMinutes     float64 `json:"cutMinutes"`
	PierceMinutes  float64 `json:"pierceMinutes"`
	PartMinutes    float64 `json:"partMinutes"`
	MachineCost    float64 `json:"machineCost"`
	EnergyCost     float64 `json:"energyCost"`
	GasCost        float64 `json:"gasCost"`
	MaterialCost   float64 `json:"materialCost"`
	PartCost       float64 `json:"partCost"`
	SetupCost      float64 `json:"setupCost"`
	TotalMinutes   float64 `json:"totalMinutes"`
	TotalCost      float64 `json:"totalCost"`
	CostPerPart    float64 `json:"costPerPart"`
	EnergyKWh      float64 `json:"energyKWh"`
	GasLitres      float64 `json:"gasLitres"`
	Quantity       int     `json:"quantity"`
	PartsPerHour   float64 `json:"partsPerHour"`
	SetupShare     float64 `json:"setupShare"` // % of total cost spent on setup
	MachineHours   float64 `json:"machineHours"`
	CostBreakdown  []Line  `json:"costBreakdown"`
	ThroughputNote string  `json:"throughputNote,omitempty"`
}

// Line is one labelled amount of a cost breakdown.
type Line struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Pierce time grows with material thickness.
const (
	basePierceSeconds  = 0.1
	pierceSecondsPerMM = 0.05
)

// Cutting computes time and cost for a batch of identical parts.
// Quantity below 1 is treated as 1.
func Cutting(in CuttingInput) CuttingResult {
	qty := max(in.Quantity, 1)

	pierceSeconds := basePierceSeconds + pierceSecondsPerMM*in.Thickness
	var cutMinutes float64
	if in.Speed > 0 {
		cutMinutes = (in.CutLength / 1000) / in.Speed
	}
	pierceMinutes := float64(in.Pierces) * pierceSeconds / 60
	partMinutes := cutMinutes + pierceMinutes
	partHours := partMinutes / 60

	energyKWh := in.Power / 1000 * partHours
	gasLitres := in.GasFlow * partMinutes

	machine := partHours * in.HourlyRate
	energy := energyKWh * in.ElectricityPrice
	gas := gasLitres * in.GasPrice
	partCost := in.MaterialCost + machine + energy + gas

	setupCost := in.SetupTime / 60 * in.HourlyRate
	totalCost := partCost*float64(qty) + setupCost
	totalMinutes := partMinutes*float64(qty) + in.SetupTime

	res := CuttingResult{
		PierceSeconds: pierceSeconds,
		CutMinutes:    cutMinutes,
		PierceMinutes: pierceMinutes,
		PartMinutes:   partMinutes,
		MachineCost:   machine,
		EnergyCost:    energy,
		GasCost:       gas,
		MaterialCost:  in.MaterialCost,
		PartCost:      partCost,
		SetupCost:     setupCost,
		TotalMinutes:  totalMinutes,
		TotalCost:     totalCost,
		CostPerPart:   totalCost / float64(qty),
		EnergyKWh:     energyKWh * float64(qty),
		GasLitres:     gasLitres * float64(qty),
		Quantity:      qty,
		MachineHours:  totalMinutes / 60,
		CostBreakdown: []Line{
			{Label: "material", Amount: in.MaterialCost * float64(qty)},
			{Label: "machine", Amount: machine * float64(qty)},
			{Label: "energy", Amount: energy * float64(qty)},
			{Label: "gas", Amount: gas * float64(qty)},
			{Label: "setup", Amount: setupCost},
		},
	}
	if partMinutes > 0 {
		res.PartsPerHour = 60 / partMinutes
	}
	if totalCost > 0 {
		res.SetupShare = setupCost / totalCost * 100
	}
	if pierceMinutes > cutMinutes && cutMinutes > 0 {
		res.ThroughputNote = "Piercing takes longer than cutting; consider fewer pierce points or lead-in chaining"
	}
	return res
}

type cuttingCalculator struct {
	form *validator.Validator
}

// NewCutting returns the cutting cost calculator with its form.
func NewCutting(opts ...validator.Option) Calculator {
	return &cuttingCalculator{form: newCuttingForm(opts...)}
}

func newCuttingForm(opts ...validator.Option) *validator.Validator {
	form := validator.New(opts...)
	form.AddTemplate("thickness", validator.TemplateMaterialThickness)
	form.AddRule(validator.FieldValidation{
		Field: "cutLength",
		Rules: []validator.Rule{
			validator.Required("Cut length is required"),
			validator.Min(1, "Cut length must be at least 1mm"),
			validator.Max(1_000_000, "Cut length cannot exceed 1,000,000mm"),
		},
		Hint:     "Total cutting path of one part, including inner contours",
		Unit:     "mm",
		Category: validator.CategoryDimension,
	})
	form.AddRule(validator.FieldValidation{
		Field: "pierces",
		Rules: []validator.Rule{
			validator.Required("Pierce count is required"),
			validator.Min(0, "Pierce count cannot be negative"),
			validator.Max(10000, "Pierce count cannot exceed 10,000"),
			validator.Custom(validator.IsInteger, "Pierce count must be a whole number"),
		},
		Hint:     "One per outer contour plus one per hole",
		Unit:     "pcs",
		Default:  1.0,
		Category: validator.CategoryQuantity,
	})
	form.AddTemplate("speed", validator.TemplateCuttingSpeed)
	form.AddTemplate("power", validator.TemplateLaserPower)
	bindTemplate(form, "hourlyRate", validator.TemplateCost, func(fv *validator.FieldValidation) {
		fv.Hint = "Machine and operator cost per hour"
		fv.Unit = "$/h"
		fv.Default = 100.0
	})
	bindTemplate(form, "electricityPrice", validator.TemplateCost, func(fv *validator.FieldValidation) {
		fv.Hint = "Electricity tariff"
		fv.Unit = "$/kWh"
		fv.Default = 0.15
	})
	form.AddRule(validator.FieldValidation{
		Field: "gasFlow",
		Rules: []validator.Rule{
			validator.Required("Gas flow is required"),
			validator.Min(0, "Gas flow cannot be negative"),
			validator.Max(1000, "Gas flow cannot exceed 1000 L/min"),
		},
		Hint:    "Assist gas consumption while cutting",
		Unit:    "L/min",
		Default: 0.0,
	})
	bindTemplate(form, "gasPrice", validator.TemplateCost, func(fv *validator.FieldValidation) {
		fv.Hint = "Assist gas price per litre"
		fv.Unit = "$/L"
	})
	bindTemplate(form, "materialCost", validator.TemplateCost, func(fv *validator.FieldValidation) {
		fv.Hint = "Raw material cost of one part"
	})
	form.AddTemplate("quantity", validator.TemplateQuantity)
	bindTemplate(form, "setupTime", validator.TemplateTime, func(fv *validator.FieldValidation) {
		fv.Hint = "Programming, loading and first-article time for the batch"
	})
	return form
}

func (c *cuttingCalculator) Name() string { return "cutting" }

func (c *cuttingCalculator) Description() string {
	return "Laser cutting time and cost per part and per batch"
}

func (c *cuttingCalculator) Form() *validator.Validator { return c.form }

func (c *cuttingCalculator) Calculate(_ context.Context, in validator.Inputs) (any, error) {
	return Cutting(decodeCutting(in)), nil
}

func decodeCutting(in validator.Inputs) CuttingInput {
	return CuttingInput{
		Thickness:        in.Float("thickness"),
		CutLength:        in.Float("cutLength"),
		Pierces:          intValue(in, "pierces"),
		Speed:            in.Float("speed"),
		Power:            in.Float("power"),
		HourlyRate:       in.Float("hourlyRate"),
		ElectricityPrice: in.Float("electricityPrice"),
		GasFlow:          in.Float("gasFlow"),
		GasPrice:         in.Float("gasPrice"),
		MaterialCost:     in.Float("materialCost"),
		Quantity:         intValue(in, "quantity"),
		SetupTime:        in.Float("setupTime"),
	}
}
