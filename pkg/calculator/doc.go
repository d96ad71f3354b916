// Package calculator implements the laser cutting calculators: cutting cost
// and time, beam quality (M²), sheet nesting and batch costing.
//
// Every calculator is a pure function over a small input struct (Cutting,
// BeamQuality, Nest, Batch). For form-driven callers each one is also
// exposed as a Calculator with a validation form built from the shared
// field templates. A Registry looks calculators up by name, fills missing
// fields with the form defaults, validates the submission and only then runs
// the calculation:
//
//	reg := calculator.NewRegistry()
//	out, err := reg.Run(ctx, "cutting", inputs)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // render field errors
//	}
//
// Results are raw float64 values in the units documented on each field;
// rounding is left to presentation.
package calculator
