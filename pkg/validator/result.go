package validator

// Result is the outcome of validating one field. Errors and Warnings are
// never nil so they encode as empty JSON arrays.
type Result struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func newResult(errs []string, warning string) Result {
	if errs == nil {
		errs = []string{}
	}
	warnings := []string{}
	if warning != "" {
		warnings = append(warnings, warning)
	}
	return Result{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

func validResult() Result {
	return newResult(nil, "")
}
