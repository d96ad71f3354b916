// Package binder fills request values from HTTP requests.
//
// JSON decodes an application/json body with a size limit and rejects
// trailing data. Path copies chi URL parameters into struct fields tagged
// `path:"name"`. Both return functions of the shape the handler package
// expects, so they can be combined:
//
//	type calculateRequest struct {
//	    Name   string `path:"name"`
//	    Inputs validator.Inputs
//	}
//
//	r.Post("/calculators/{name}", handler.Wrap(calculate,
//	    handler.WithBinders[calculateRequest](binder.Path(), binder.JSON()),
//	))
//
// Errors wrap the sentinels in errors.go so callers can map them to status
// codes with errors.Is.
package binder
