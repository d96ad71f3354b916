package calculator

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/dmitrymomot/calckit/pkg/validator"
)

// MaxBatchJobs caps the number of jobs in one batch.
const MaxBatchJobs = 100

// BatchJob is one labelled cutting job of a batch.
type BatchJob struct {
	Label string       `json:"label"`
	Input CuttingInput `json:"input"`
}

// BatchInput is a list of cutting jobs run on the same machine.
type BatchInput struct {
	Jobs []BatchJob `json:"jobs"`
}

// JobResult is the cutting result of one job.
type JobResult struct {
	Label  string        `json:"label"`
	Result CuttingResult `json:"result"`
}

// BatchResult aggregates the jobs of a batch.
type BatchResult struct {
	Jobs         []JobResult `json:"jobs"`
	TotalParts   int         `json:"totalParts"`
	TotalMinutes float64     `json:"totalMinutes"`
	TotalCost    float64     `json:"totalCost"`
	AverageCost  float64     `json:"averageCost"` // per part over the whole batch
	MachineHours float64     `json:"machineHours"`
}

// Batch runs Cutting for every job and sums the results.
func Batch(in BatchInput) BatchResult {
	res := BatchResult{Jobs: make([]JobResult, 0, len(in.Jobs))}
	for i, job := range in.Jobs {
		label := job.Label
		if label == "" {
			label = fmt.Sprintf("job-%d", i+1)
		}
		r := Cutting(job.Input)
		res.Jobs = append(res.Jobs, JobResult{Label: label, Result: r})
		res.TotalParts += r.Quantity
		res.TotalMinutes += r.TotalMinutes
		res.TotalCost += r.TotalCost
	}
	res.MachineHours = res.TotalMinutes / 60
	if res.TotalParts > 0 {
		res.AverageCost = res.TotalCost / float64(res.TotalParts)
	}
	return res
}

type batchCalculator struct {
	form    *validator.Validator
	cutting *validator.Validator
}

// NewBatch returns the batch calculator. Every job is checked against the
// cutting form.
func NewBatch(opts ...validator.Option) Calculator {
	form := validator.New(opts...)
	form.AddRule(validator.FieldValidation{
		Field: "jobs",
		Rules: []validator.Rule{
			validator.Required("At least one job is required"),
			validator.Custom(isJobList, "Jobs must be a non-empty list of objects"),
			validator.Custom(func(v any) bool {
				jobs, _ := v.([]any)
				return len(jobs) <= MaxBatchJobs
			}, fmt.Sprintf("Batch cannot exceed %d jobs", MaxBatchJobs)),
		},
		Hint: "Cutting jobs, each with the fields of the cutting calculator and an optional label",
	})
	return &batchCalculator{form: form, cutting: newCuttingForm(opts...)}
}

func isJobList(value any) bool {
	jobs, ok := value.([]any)
	if !ok || len(jobs) == 0 {
		return false
	}
	for _, job := range jobs {
		if _, ok := job.(map[string]any); !ok {
			return false
		}
	}
	return true
}

func (c *batchCalculator) Name() string { return "batch" }

func (c *batchCalculator) Description() string {
	return "Cost and time of several cutting jobs run as one batch"
}

func (c *batchCalculator) Form() *validator.Validator { return c.form }

// Calculate validates each job with the cutting form. Failures are reported
// as ValidationErrors with fields named jobs[i].field.
func (c *batchCalculator) Calculate(ctx context.Context, in validator.Inputs) (any, error) {
	value, _ := in.Get("jobs")
	raw, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: jobs must be a list", ErrDecodeInput)
	}

	var (
		verrs validator.ValidationErrors
		batch = BatchInput{Jobs: make([]BatchJob, 0, len(raw))}
	)
	for i, item := range raw {
		src, ok := item.(map[string]any)
		if !ok {
			verrs.Add(validator.ValidationError{
				Field:          fmt.Sprintf("jobs[%d]", i),
				Message:        "Job must be an object",
				TranslationKey: "validation.custom",
			})
			continue
		}
		obj := maps.Clone(src)
		label, _ := obj["label"].(string)
		delete(obj, "label")

		job := WithDefaults(c.cutting, validator.InputsFromMap(obj))
		if err := c.cutting.ValidateContext(ctx, job); err != nil {
			for _, e := range validator.ExtractValidationErrors(err) {
				e.Field = fmt.Sprintf("jobs[%d].%s", i, e.Field)
				verrs.Add(e)
			}
			continue
		}
		batch.Jobs = append(batch.Jobs, BatchJob{Label: label, Input: decodeCutting(job)})
	}
	if !verrs.IsEmpty() {
		return nil, errors.Join(ErrInvalidInput, verrs)
	}
	return Batch(batch), nil
}
