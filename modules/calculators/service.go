package calculators

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/calckit/handler"
	"github.com/dmitrymomot/calckit/pkg/binder"
	"github.com/dmitrymomot/calckit/pkg/calculator"
	"github.com/dmitrymomot/calckit/pkg/logger"
	"github.com/dmitrymomot/calckit/pkg/validator"
)

// TemplateInfo is one entry of GET /templates.
type TemplateInfo struct {
	Name string `json:"name"`
	calculator.FieldInfo
}

// CalculatorInfo is one entry of GET /calculators.
type CalculatorInfo struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Fields      []calculator.FieldInfo `json:"fields"`
}

// ValidationReport is the body of POST /calculators/{name}/validate.
type ValidationReport struct {
	IsValid bool                        `json:"isValid"`
	Fields  map[string]validator.Result `json:"fields"`
	Errors  []string                    `json:"errors"`
}

type nameRequest struct {
	Name string `path:"name"`
}

type inputsRequest struct {
	Name   string `path:"name"`
	Inputs validator.Inputs
}

// UnmarshalJSON decodes the body into Inputs so the submitted field order
// is kept.
func (r *inputsRequest) UnmarshalJSON(b []byte) error {
	return r.Inputs.UnmarshalJSON(b)
}

// Service serves the calculator API.
type Service struct {
	registry  *calculator.Registry
	templates validator.Templates
	logger    *slog.Logger
}

// NewService creates the API service. Nil templates mean the built-in set.
func NewService(registry *calculator.Registry, templates validator.Templates, log *slog.Logger) *Service {
	if templates == nil {
		templates = validator.DefaultTemplates()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		registry:  registry,
		templates: templates,
		logger:    log.With(logger.Component("api")),
	}
}

// Handle returns the API routes.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	errs := handler.JSONErrorHandler(s.logger)

	r.Get("/templates", handler.Wrap(s.listTemplates,
		handler.WithErrorHandler[struct{}](errs),
	))
	r.Get("/calculators", handler.Wrap(s.listCalculators,
		handler.WithErrorHandler[struct{}](errs),
	))
	r.Get("/calculators/{name}", handler.Wrap(s.describe,
		handler.WithBinders[nameRequest](binder.Path()),
		handler.WithErrorHandler[nameRequest](errs),
	))
	r.Post("/calculators/{name}/validate", handler.Wrap(s.validate,
		handler.WithBinders[inputsRequest](binder.Path(), binder.JSON()),
		handler.WithErrorHandler[inputsRequest](errs),
	))
	r.Post("/calculators/{name}", handler.Wrap(s.calculate,
		handler.WithBinders[inputsRequest](binder.Path(), binder.JSON()),
		handler.WithErrorHandler[inputsRequest](errs),
	))
	return r
}

func (s *Service) listTemplates(_ handler.Context, _ struct{}) handler.Response {
	names := s.templates.Names()
	out := make([]TemplateInfo, 0, len(names))
	for _, name := range names {
		tmpl, _ := s.templates.Lookup(name)
		out = append(out, TemplateInfo{
			Name: name,
			FieldInfo: calculator.FieldInfo{
				Field:    tmpl.Field,
				Hint:     tmpl.Hint,
				Unit:     tmpl.Unit,
				Default:  tmpl.Default,
				Category: tmpl.Category,
			},
		})
	}
	return handler.JSON(out, handler.WithJSONMeta(map[string]any{"count": len(out)}))
}

func (s *Service) listCalculators(_ handler.Context, _ struct{}) handler.Response {
	names := s.registry.Names()
	out := make([]CalculatorInfo, 0, len(names))
	for _, name := range names {
		c, err := s.registry.Get(name)
		if err != nil {
			continue
		}
		out = append(out, info(c))
	}
	return handler.JSON(out, handler.WithJSONMeta(map[string]any{"count": len(out)}))
}

func (s *Service) describe(_ handler.Context, req nameRequest) handler.Response {
	c, err := s.registry.Get(req.Name)
	if err != nil {
		return handler.JSONError(apiError(err))
	}
	return handler.JSON(info(c))
}

// validate checks the submitted fields one by one without running the
// calculation, for live form feedback.
func (s *Service) validate(_ handler.Context, req inputsRequest) handler.Response {
	c, err := s.registry.Get(req.Name)
	if err != nil {
		return handler.JSONError(apiError(err))
	}
	form := c.Form()
	return handler.JSON(ValidationReport{
		IsValid: form.IsValid(req.Inputs),
		Fields:  form.ValidateFields(req.Inputs),
		Errors:  form.AllErrors(req.Inputs),
	})
}

func (s *Service) calculate(ctx handler.Context, req inputsRequest) handler.Response {
	out, err := s.registry.Run(ctx, req.Name, req.Inputs)
	if err != nil {
		return handler.JSONError(apiError(err))
	}
	return handler.JSON(out, handler.WithJSONMeta(map[string]any{"calculator": req.Name}))
}

func info(c calculator.Calculator) CalculatorInfo {
	return CalculatorInfo{
		Name:        c.Name(),
		Description: c.Description(),
		Fields:      calculator.Describe(c.Form()),
	}
}

// apiError maps calculator errors to HTTP errors. Validation errors pass
// through and render as 422.
func apiError(err error) error {
	switch {
	case validator.IsValidationError(err):
		return err
	case errors.Is(err, calculator.ErrUnknownCalculator):
		return fmt.Errorf("%w: %w", handler.ErrNotFound, err)
	case errors.Is(err, calculator.ErrBelowDiffractionLimit),
		errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, calculator.ErrDecodeInput):
		return fmt.Errorf("%w: %w", handler.ErrUnprocessableEntity, err)
	}
	return err
}
