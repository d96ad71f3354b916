package validator

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/calckit/pkg/logger"
)

// Option configures a Validator.
type Option func(*Validator)

// WithRules registers field specs at construction time.
func WithRules(specs ...FieldValidation) Option {
	return func(v *Validator) {
		for _, spec := range specs {
			v.AddRule(spec)
		}
	}
}

// WithTemplates replaces the template set used by AddTemplate.
// A nil set is ignored.
func WithTemplates(t Templates) Option {
	return func(v *Validator) {
		if t != nil {
			v.templates = t
		}
	}
}

// WithStrictFields makes fields without a registered spec fail validation
// instead of passing vacuously.
func WithStrictFields() Option {
	return func(v *Validator) { v.strict = true }
}

// WithLogger reports unknown fields and templates. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l.With(logger.Component("validator"))
		}
	}
}

// Validator holds the field specs of one form. Registration is not
// synchronised; finish AddRule/AddTemplate calls before sharing a Validator
// between goroutines.
type Validator struct {
	specs     map[string]FieldValidation
	order     []string
	templates Templates
	strict    bool
	logger    *slog.Logger
}

// New creates an empty Validator. Options are applied in order, so put
// WithTemplates before any option that registers fields from templates.
func New(opts ...Option) *Validator {
	v := &Validator{
		specs:     make(map[string]FieldValidation),
		templates: builtinTemplates,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// AddRule registers spec under spec.Field, replacing any earlier spec for
// the same field.
func (v *Validator) AddRule(spec FieldValidation) {
	if _, exists := v.specs[spec.Field]; !exists {
		v.order = append(v.order, spec.Field)
	}
	v.specs[spec.Field] = spec.clone()
}

// AddTemplate registers the named template under field. Unknown template
// names are ignored.
func (v *Validator) AddTemplate(field, templateName string) {
	tmpl, ok := v.templates.Lookup(templateName)
	if !ok {
		v.logger.Warn("unknown validation template",
			logger.Template(templateName),
			logger.Field(field),
		)
		return
	}
	v.AddRule(tmpl.Bind(field))
}

// Template returns a copy of the named template from the Validator's set.
func (v *Validator) Template(name string) (FieldValidation, bool) {
	return v.templates.Lookup(name)
}

// Spec returns a copy of the spec registered for field.
func (v *Validator) Spec(field string) (FieldValidation, bool) {
	spec, ok := v.specs[field]
	if !ok {
		return FieldValidation{}, false
	}
	return spec.clone(), true
}

// Fields returns the registered field names in registration order.
func (v *Validator) Fields() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// ValidateField applies every rule registered for field to value. All rules
// run, so several messages may be returned. The warning check runs only when
// no rule failed.
func (v *Validator) ValidateField(field string, value any) Result {
	spec, ok := v.specs[field]
	if !ok {
		if v.strict {
			v.logger.Debug("rejecting unknown field", logger.Field(field))
			return newResult([]string{"Unknown field: " + field}, "")
		}
		return validResult()
	}

	var errs []string
	for _, rule := range spec.Rules {
		if !rule.Check(value) {
			errs = append(errs, rule.Message)
		}
	}
	if len(errs) > 0 {
		return newResult(errs, "")
	}
	return newResult(nil, warningFor(spec, value))
}

// ValidateFields validates every entry of data independently.
func (v *Validator) ValidateFields(data Inputs) map[string]Result {
	out := make(map[string]Result, len(data))
	for _, in := range data {
		out[in.Field] = v.ValidateField(in.Field, in.Value)
	}
	return out
}

// IsValid reports whether every entry of data passes.
func (v *Validator) IsValid(data Inputs) bool {
	for _, in := range data {
		if !v.ValidateField(in.Field, in.Value).IsValid {
			return false
		}
	}
	return true
}

// AllErrors flattens the error messages of every field in data order.
func (v *Validator) AllErrors(data Inputs) []string {
	errs := []string{}
	for _, in := range data {
		errs = append(errs, v.ValidateField(in.Field, in.Value).Errors...)
	}
	return errs
}

// Validate returns ValidationErrors describing every failing rule in data,
// or nil when data is valid.
func (v *Validator) Validate(data Inputs) error {
	return v.ValidateContext(context.Background(), data)
}

// ValidateContext is Validate with a context for the log records it emits.
func (v *Validator) ValidateContext(ctx context.Context, data Inputs) error {
	var verrs ValidationErrors
	for _, in := range data {
		spec, ok := v.specs[in.Field]
		if !ok {
			if v.strict {
				verrs.Add(ValidationError{
					Field:             in.Field,
					Message:           "Unknown field: " + in.Field,
					TranslationKey:    "validation.unknown_field",
					TranslationValues: map[string]any{"field": in.Field},
				})
			}
			continue
		}
		for _, rule := range spec.Rules {
			if rule.Check(in.Value) {
				continue
			}
			verrs.Add(ValidationError{
				Field:             in.Field,
				Message:           rule.Message,
				TranslationKey:    rule.TranslationKey(),
				TranslationValues: rule.translationValues(in.Field),
			})
		}
	}

	if verrs.IsEmpty() {
		return nil
	}
	v.logger.DebugContext(ctx, "validation failed",
		slog.Int("errors", len(verrs)),
		logger.Fields(verrs.Fields()),
	)
	return verrs
}

// Hint returns the hint of the spec registered for field.
func (v *Validator) Hint(field string) (string, bool) {
	spec, ok := v.specs[field]
	return spec.Hint, ok
}

// Unit returns the display unit of the spec registered for field.
func (v *Validator) Unit(field string) (string, bool) {
	spec, ok := v.specs[field]
	return spec.Unit, ok
}

// Default returns the suggested value of the spec registered for field.
func (v *Validator) Default(field string) (any, bool) {
	spec, ok := v.specs[field]
	return spec.Default, ok
}
