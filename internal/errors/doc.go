// Package errors provides the structured error type used across pokequest.
//
// Errors carry a Code, a user-facing Message, an optional Cause and free-form
// metadata. The encounter flow relies on two pieces of metadata:
//
//   - "reason": a stable machine-readable tag (see WithReason / GetReason) that
//     distinguishes failures sharing the same code, e.g. an encounter the backend
//     refused versus a connection that never completed.
//   - "http_status": the backend response status, set by the HTTP client.
//
// # Basic Usage
//
//	err := errors.InvalidArgument("location id is required").
//	    WithReason("missing_location")
//
//	if errors.Is(err, errors.InvalidArgument("").WithReason("missing_location")) {
//	    // matches on code and reason
//	}
//
// Wrapping keeps the code and metadata of an inner *Error:
//
//	if err := client.CatchPokemon(ctx, input); err != nil {
//	    return errors.Wrap(err, "capture request failed")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("BaseURL", cfg.BaseURL, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # HTTP
//
// Code.HTTPStatus and CodeFromHTTPStatus map between codes and response statuses;
// the sandbox backend uses the former, the backend client the latter.
package errors
