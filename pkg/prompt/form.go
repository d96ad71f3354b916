package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cast"

	"github.com/dmitrymomot/calckit/pkg/logger"
	"github.com/dmitrymomot/calckit/pkg/validator"
)

// DefaultAttempts is how many times a field is asked before giving up.
const DefaultAttempts = 3

// Option configures a Form.
type Option func(*Form)

// WithAttempts sets how many answers a field may get. Values below 1 are
// ignored.
func WithAttempts(n int) Option {
	return func(f *Form) {
		if n > 0 {
			f.attempts = n
		}
	}
}

// WithLogger sets the logger for rejected answers. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// Form asks the fields of a validator one after another.
type Form struct {
	driver   Driver
	attempts int
	logger   *slog.Logger
}

// New creates a Form on top of driver.
func New(driver Driver, opts ...Option) *Form {
	f := &Form{
		driver:   driver,
		attempts: DefaultAttempts,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Ask prompts for every field of form in registration order. Each answer is
// checked with ValidateField: errors are shown and the field is asked again,
// warnings are shown and the answer kept. Empty answers take the field
// default.
func (f *Form) Ask(ctx context.Context, form *validator.Validator) (validator.Inputs, error) {
	var out validator.Inputs
	for _, field := range form.Fields() {
		spec, _ := form.Spec(field)
		value, err := f.askField(ctx, form, spec)
		if err != nil {
			return nil, err
		}
		out.Set(field, value)
	}
	return out, nil
}

func (f *Form) askField(ctx context.Context, form *validator.Validator, spec validator.FieldValidation) (any, error) {
	for range f.attempts {
		value, err := f.read(ctx, spec)
		if err != nil {
			return nil, err
		}

		res := form.ValidateField(spec.Field, value)
		if !res.IsValid {
			f.logger.DebugContext(ctx, "answer rejected",
				logger.Field(spec.Field),
				slog.Any("errors", res.Errors),
			)
			for _, msg := range res.Errors {
				if err := f.driver.Info(ctx, "✗ "+msg); err != nil {
					return nil, err
				}
			}
			continue
		}
		for _, msg := range res.Warnings {
			if err := f.driver.Info(ctx, "! "+msg); err != nil {
				return nil, err
			}
		}
		return value, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTooManyAttempts, spec.Field)
}

func (f *Form) read(ctx context.Context, spec validator.FieldValidation) (any, error) {
	if def, ok := spec.Default.(bool); ok {
		return f.driver.Confirm(ctx, ConfirmConfig{
			Message: label(spec),
			Default: def,
			Help:    spec.Hint,
		})
	}

	answer, err := f.driver.Input(ctx, InputConfig{
		Message: label(spec),
		Default: defaultText(spec.Default),
		Help:    spec.Hint,
	})
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" && spec.Default != nil {
		return spec.Default, nil
	}
	return parseAnswer(answer), nil
}

// parseAnswer turns typed text into the value a JSON body would carry:
// numbers, booleans and JSON arrays or objects. Anything else stays text.
func parseAnswer(s string) any {
	if s == "" {
		return ""
	}
	if s[0] == '[' || s[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader([]byte(s)))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err == nil {
			return v
		}
		return s
	}
	if n, err := cast.ToFloat64E(s); err == nil {
		return n
	}
	if b, err := cast.ToBoolE(s); err == nil {
		return b
	}
	return s
}

func label(spec validator.FieldValidation) string {
	if spec.Unit == "" {
		return spec.Field
	}
	return fmt.Sprintf("%s (%s)", spec.Field, spec.Unit)
}

func defaultText(v any) string {
	switch v.(type) {
	case nil, []any, map[string]any:
		return ""
	}
	return validator.String(v)
}
