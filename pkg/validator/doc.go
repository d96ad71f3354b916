// Package validator provides a declarative field validation engine for the
// calculator input forms.
//
// A form registers one FieldValidation per input field. Each FieldValidation
// carries an ordered list of Rule values (required, min, max, range, pattern,
// custom) together with presentation metadata: a hint, a display unit and a
// suggested default value. Validating a field evaluates every rule in order
// and collects every failing rule's message, so one field may report several
// problems at once. When a field has no errors a small advisory layer may add
// a single warning for values that are valid but suspicious (very thick
// material, very high power and so on).
//
// # Architecture
//
//   - Rule            – one atomic constraint with its failure message
//   - FieldValidation – the rule set and metadata for one field
//   - Templates       – named, immutable FieldValidation specs for common
//     physical quantities (thickness, power, speed, cost, quantity, ...)
//   - Validator       – a per-form registry mapping field names to specs
//   - Result          – {isValid, errors, warnings} for one field
//   - Inputs          – ordered field → value pairs submitted by a form
//
// Templates are package-level constants and never change after start-up. A
// Validator owns its own field map which is mutated only by AddRule and
// AddTemplate. Once registration is done the Validator may be shared between
// goroutines for read-only validation.
//
// # Usage
//
//	form := validator.New()
//	form.AddTemplate("thickness", validator.TemplateMaterialThickness)
//	form.AddTemplate("quantity", validator.TemplateQuantity)
//
//	res := form.ValidateField("thickness", 25)
//	// res.IsValid == true
//	// res.Warnings == []string{"Thick materials may require special cutting parameters"}
//
//	if err := form.Validate(inputs); err != nil {
//	    verrs := validator.ExtractValidationErrors(err)
//	    // verrs.Get("quantity") ...
//	}
//
// # Error Handling
//
// Failing rules are returned as data in Result.Errors and are never raised.
// Unknown fields and unknown template names are treated as "no constraint".
// WithStrictFields turns unknown fields into validation errors instead, and
// WithLogger reports both cases to a structured logger.
//
// The Validate bridge converts failures into ValidationErrors, which
// implements error and works with errors.As.
package validator
