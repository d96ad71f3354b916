// Package handler turns typed handler functions into http.HandlerFunc values
// and renders JSON responses in a common envelope.
//
// A HandlerFunc receives a Context and a request value filled by binders and
// returns a Response:
//
//	func calculate(ctx handler.Context, req calculateRequest) handler.Response {
//	    out, err := registry.Run(ctx, req.Name, req.Inputs)
//	    if err != nil {
//	        return handler.JSONError(err)
//	    }
//	    return handler.JSON(out)
//	}
//
//	r.Post("/calculators/{name}", handler.Wrap(calculate,
//	    handler.WithBinders[calculateRequest](binder.Path(), binder.JSON()),
//	))
//
// Every JSON body has the shape {"data": ..., "meta": ..., "error": ...}.
// JSONError picks the status from the error: validator.ValidationErrors give
// 422 with per-field messages under error.details, HTTPError values give
// their own code and anything else gives 500 without leaking the message.
package handler
