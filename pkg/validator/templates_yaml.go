package validator

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Predicates available to custom rules declared in template files.
var predicates = map[string]Predicate{
	"integer":  IsInteger,
	"positive": IsPositive,
	"finite":   IsFinite,
}

type templateFile struct {
	Templates map[string]templateDef `yaml:"templates"`
}

type templateDef struct {
	Field    string    `yaml:"field"`
	Hint     string    `yaml:"hint"`
	Unit     string    `yaml:"unit"`
	Default  any       `yaml:"default"`
	Category string    `yaml:"category"`
	Rules    []ruleDef `yaml:"rules"`
}

type ruleDef struct {
	Type      string    `yaml:"type"`
	Message   string    `yaml:"message"`
	Value     yaml.Node `yaml:"value"`
	Validator string    `yaml:"validator"`
}

// LoadTemplates decodes a YAML template file.
//
//	templates:
//	  sheetWidth:
//	    field: width
//	    unit: mm
//	    default: 3000
//	    category: dimension
//	    rules:
//	      - type: required
//	        message: Sheet width is required
//	      - type: range
//	        value: [100, 4000]
//	        message: Sheet width must be between 100 and 4000mm
//	      - type: custom
//	        validator: integer
//	        message: Sheet width must be a whole number
func LoadTemplates(r io.Reader) (Templates, error) {
	var file templateFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidTemplates, err)
	}

	out := make(Templates, len(file.Templates))
	for name, def := range file.Templates {
		fv, err := def.build(name)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", name, err)
		}
		out[name] = fv
	}
	return out, nil
}

// LoadTemplatesFile reads templates from a YAML file on disk.
func LoadTemplatesFile(path string) (Templates, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidTemplates, err)
	}
	defer f.Close()
	return LoadTemplates(f)
}

func (d templateDef) build(name string) (FieldValidation, error) {
	field := d.Field
	if field == "" {
		field = name
	}

	fv := FieldValidation{
		Field:    field,
		Hint:     d.Hint,
		Unit:     d.Unit,
		Default:  d.Default,
		Category: Category(d.Category),
		Rules:    make([]Rule, 0, len(d.Rules)),
	}
	for i, rd := range d.Rules {
		rule, err := rd.build()
		if err != nil {
			return FieldValidation{}, fmt.Errorf("rule %d: %w", i, err)
		}
		fv.Rules = append(fv.Rules, rule)
	}
	return fv, nil
}

func (d ruleDef) build() (Rule, error) {
	needsValue := d.Type == string(RuleMin) || d.Type == string(RuleMax) ||
		d.Type == string(RuleRange) || d.Type == string(RulePattern)
	if needsValue && d.Value.Kind == 0 {
		return Rule{}, fmt.Errorf("%w: %s requires a value", ErrInvalidRuleValue, d.Type)
	}

	switch RuleType(d.Type) {
	case RuleRequired:
		return Required(d.Message), nil
	case RuleMin, RuleMax:
		var v float64
		if err := d.Value.Decode(&v); err != nil {
			return Rule{}, fmt.Errorf("%w: %s expects a number", ErrInvalidRuleValue, d.Type)
		}
		if RuleType(d.Type) == RuleMin {
			return Min(v, d.Message), nil
		}
		return Max(v, d.Message), nil
	case RuleRange:
		var v []float64
		if err := d.Value.Decode(&v); err != nil || len(v) != 2 {
			return Rule{}, fmt.Errorf("%w: range expects [min, max]", ErrInvalidRuleValue)
		}
		return Range(v[0], v[1], d.Message), nil
	case RulePattern:
		var expr string
		if err := d.Value.Decode(&expr); err != nil {
			return Rule{}, fmt.Errorf("%w: pattern expects a string", ErrInvalidRuleValue)
		}
		return PatternE(expr, d.Message)
	case RuleCustom:
		if d.Validator == "" {
			return Custom(nil, d.Message), nil
		}
		fn, ok := predicates[d.Validator]
		if !ok {
			return Rule{}, fmt.Errorf("%w: %q", ErrUnknownPredicate, d.Validator)
		}
		return Custom(fn, d.Message), nil
	}
	return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRuleType, d.Type)
}
