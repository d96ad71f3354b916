package calculator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/dmitrymomot/calckit/pkg/logger"
	"github.com/dmitrymomot/calckit/pkg/validator"
)

// Calculator is one named calculation with the form its inputs are checked
// against.
type Calculator interface {
	Name() string
	Description() string
	Form() *validator.Validator
	Calculate(ctx context.Context, in validator.Inputs) (any, error)
}

// FieldInfo describes one form field for clients rendering the form.
type FieldInfo struct {
	Field    string             `json:"field"`
	Hint     string             `json:"hint,omitempty"`
	Unit     string             `json:"unit,omitempty"`
	Default  any                `json:"default,omitempty"`
	Category validator.Category `json:"category,omitempty"`
}

// Describe lists the fields of a form in registration order.
func Describe(form *validator.Validator) []FieldInfo {
	fields := form.Fields()
	out := make([]FieldInfo, 0, len(fields))
	for _, name := range fields {
		spec, _ := form.Spec(name)
		out = append(out, FieldInfo{
			Field:    name,
			Hint:     spec.Hint,
			Unit:     spec.Unit,
			Default:  spec.Default,
			Category: spec.Category,
		})
	}
	return out
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithFormOptions passes validator options to the forms of the built-in
// calculators, e.g. WithStrictFields or WithTemplates.
func WithFormOptions(opts ...validator.Option) RegistryOption {
	return func(r *Registry) {
		r.formOpts = append(r.formOpts, opts...)
	}
}

// WithLogger sets the logger used for calculation records.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l.With(logger.Component("calculator"))
		}
	}
}

// WithoutBuiltins creates an empty registry.
func WithoutBuiltins() RegistryOption {
	return func(r *Registry) { r.builtins = false }
}

// Registry looks calculators up by name. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
	formOpts    []validator.Option
	builtins    bool
	logger      *slog.Logger
}

// NewRegistry creates a registry holding the cutting, beam, nesting and
// batch calculators.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		calculators: make(map[string]Calculator),
		builtins:    true,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.builtins {
		r.Register(NewCutting(r.formOpts...))
		r.Register(NewBeam(r.formOpts...))
		r.Register(NewNesting(r.formOpts...))
		r.Register(NewBatch(r.formOpts...))
	}
	return r
}

// Register adds c, replacing a calculator with the same name.
func (r *Registry) Register(c Calculator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calculators[c.Name()] = c
}

// Get returns the calculator registered under name.
func (r *Registry) Get(name string) (Calculator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.calculators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalculator, name)
	}
	return c, nil
}

// Names returns the registered names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.calculators))
	for name := range r.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run validates in against the calculator's form and computes the result.
// Fields the form knows but the submission lacks take the form default, or
// nil when there is none, so required rules apply to absent fields.
// Validation failures are returned as ErrInvalidInput joined with the
// validator.ValidationErrors.
func (r *Registry) Run(ctx context.Context, name string, in validator.Inputs) (any, error) {
	c, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	in = WithDefaults(c.Form(), in)
	log := r.logger.With(logger.Calculator(name))

	if err := c.Form().ValidateContext(ctx, in); err != nil {
		verrs := validator.ExtractValidationErrors(err)
		log.DebugContext(ctx, "calculator input rejected", logger.Fields(verrs.Fields()))
		return nil, errors.Join(ErrInvalidInput, err)
	}

	start := time.Now()
	out, err := c.Calculate(ctx, in)
	if err != nil {
		log.WarnContext(ctx, "calculation failed", logger.Error(err))
		return nil, err
	}
	log.DebugContext(ctx, "calculation finished", logger.Duration(time.Since(start)))
	return out, nil
}

// WithDefaults returns a copy of in where every form field missing from the
// submission is set to its default value.
func WithDefaults(form *validator.Validator, in validator.Inputs) validator.Inputs {
	out := make(validator.Inputs, len(in))
	copy(out, in)
	for _, field := range form.Fields() {
		if _, ok := out.Get(field); ok {
			continue
		}
		def, _ := form.Default(field)
		out.Set(field, def)
	}
	return out
}

// bindTemplate registers a template under field after adjust has changed
// the hint, unit or default for this form.
func bindTemplate(form *validator.Validator, field, name string, adjust func(*validator.FieldValidation)) {
	tmpl, ok := form.Template(name)
	if !ok {
		form.AddTemplate(field, name)
		return
	}
	spec := tmpl.Bind(field)
	if adjust != nil {
		adjust(&spec)
	}
	form.AddRule(spec)
}

func intValue(in validator.Inputs, field string) int {
	f := in.Float(field)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Round(f))
}
