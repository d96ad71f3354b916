// Package prompt fills a calculator form interactively in a terminal.
//
// A Form walks the fields of a validator.Validator in order, showing the
// field hint as help and the unit next to the name. Every answer is run
// through the field's rules before the next field is asked:
//
//	form := prompt.New(prompt.NewSurveyDriver(os.Stdout))
//	inputs, err := form.Ask(ctx, calc.Form())
//
// The terminal is behind the Driver interface so the flow can be tested
// with scripted answers.
package prompt
