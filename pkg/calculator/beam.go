package calculator

import (
	"context"
	"fmt"
	"math"

	"github.com/dmitrymomot/calckit/pkg/validator"
)

// BeamInput holds measured beam parameters.
type BeamInput struct {
	WaistRadius float64 `json:"waistRadius"` // mm
	Divergence  float64 `json:"divergence"`  // half-angle, mrad
	Wavelength  float64 `json:"wavelength"`  // nm
}

// BeamResult describes the quality of a laser beam.
type BeamResult struct {
	M2             float64 `json:"m2"`
	BPP            float64 `json:"bpp"`            // mm·mrad
	IdealBPP       float64 `json:"idealBpp"`       // mm·mrad, M² = 1
	RayleighLength float64 `json:"rayleighLength"` // mm
	DepthOfFocus   float64 `json:"depthOfFocus"`   // mm, twice the Rayleigh length
	Class          string  `json:"class"`
}

// Beam quality classes.
const (
	BeamDiffractionLimited = "diffraction-limited"
	BeamExcellent          = "excellent"
	BeamGood               = "good"
	BeamMultimode          = "multimode"
)

const m2Tolerance = 1e-9

// BeamQuality computes M², BPP and Rayleigh length from waist radius,
// divergence and wavelength. It returns ErrBelowDiffractionLimit when the
// measurements give M² < 1.
func BeamQuality(in BeamInput) (BeamResult, error) {
	if in.WaistRadius <= 0 || in.Divergence <= 0 || in.Wavelength <= 0 {
		return BeamResult{}, fmt.Errorf("%w: beam parameters must be positive", ErrInvalidInput)
	}

	w0 := in.WaistRadius * 1e-3    // m
	theta := in.Divergence * 1e-3  // rad
	lambda := in.Wavelength * 1e-9 // m

	m2 := math.Pi * w0 * theta / lambda
	if m2 < 1-m2Tolerance {
		return BeamResult{}, fmt.Errorf("%w: M² = %.4f", ErrBelowDiffractionLimit, m2)
	}

	rayleigh := math.Pi * w0 * w0 / (m2 * lambda) * 1e3
	return BeamResult{
		M2:             m2,
		BPP:            in.WaistRadius * in.Divergence,
		IdealBPP:       in.Wavelength * 1e-3 / math.Pi,
		RayleighLength: rayleigh,
		DepthOfFocus:   2 * rayleigh,
		Class:          beamClass(m2),
	}, nil
}

func beamClass(m2 float64) string {
	switch {
	case m2 < 1.1:
		return BeamDiffractionLimited
	case m2 < 1.5:
		return BeamExcellent
	case m2 < 3:
		return BeamGood
	default:
		return BeamMultimode
	}
}

type beamCalculator struct {
	form *validator.Validator
}

// NewBeam returns the beam quality calculator with its form.
func NewBeam(opts ...validator.Option) Calculator {
	form := validator.New(opts...)
	bindTemplate(form, "waistRadius", validator.TemplateDimension, func(fv *validator.FieldValidation) {
		fv.Rules = []validator.Rule{
			validator.Required("Waist radius is required"),
			validator.Min(0.001, "Waist radius must be at least 0.001mm"),
			validator.Max(100, "Waist radius cannot exceed 100mm"),
		}
		fv.Hint = "Beam radius at the focus (1/e²)"
		fv.Default = 0.05
	})
	form.AddRule(validator.FieldValidation{
		Field: "divergence",
		Rules: []validator.Rule{
			validator.Required("Divergence is required"),
			validator.Min(0.001, "Divergence must be at least 0.001 mrad"),
			validator.Max(1000, "Divergence cannot exceed 1000 mrad"),
		},
		Hint:    "Far-field half-angle divergence",
		Unit:    "mrad",
		Default: 10.0,
	})
	form.AddRule(validator.FieldValidation{
		Field: "wavelength",
		Rules: []validator.Rule{
			validator.Required("Wavelength is required"),
			validator.Range(200, 20000, "Wavelength must be between 200 and 20000 nm"),
		},
		Hint:    "1070 for fiber, 10600 for CO2",
		Unit:    "nm",
		Default: 1070.0,
	})
	return &beamCalculator{form: form}
}

func (c *beamCalculator) Name() string { return "beam" }

func (c *beamCalculator) Description() string {
	return "Beam quality factor (M²), beam parameter product and Rayleigh length"
}

func (c *beamCalculator) Form() *validator.Validator { return c.form }

func (c *beamCalculator) Calculate(_ context.Context, in validator.Inputs) (any, error) {
	return BeamQuality(BeamInput{
		WaistRadius: in.Float("waistRadius"),
		Divergence:  in.Float("divergence"),
		Wavelength:  in.Float("wavelength"),
	})
}
