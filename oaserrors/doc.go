// Package oaserrors provides structured error types for oassamples.
//
// Import path: github.com/erraggy/oassamples/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// so callers can tell user-facing failures (bad input, unsupported dialect, write
// failures) apart from internal-consistency failures (a splice target that vanished).
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures and unrecognizable documents
//   - [DialectError]: The document is not OpenAPI 3.x (for example Swagger 2.0)
//   - [ValidationError]: The document failed OpenAPI validation
//   - [GenerationError]: A snippet renderer failed for one (path, method, language)
//   - [SpliceError]: A snippet directory entry has no matching operation in the document
//   - [WriteError]: The annotated document could not be written
//   - [ConfigError]: Invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrUnsupportedDialect]: Matches any [DialectError]
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrGeneration]: Matches any [GenerationError]
//   - [ErrSplice]: Matches any [SpliceError]
//   - [ErrWrite]: Matches any [WriteError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Example
//
//	_, err := pipeline.Run(ctx, pipeline.WithSpecPath("swagger.yaml"))
//	var dialectErr *oaserrors.DialectError
//	if errors.As(err, &dialectErr) {
//	    fmt.Printf("convert %s %s to OpenAPI 3 first\n", dialectErr.Dialect, dialectErr.Version)
//	}
//
// [SpliceError] signals a bug: the snippet directory was built from a different
// document than the one being spliced. It is never expected from valid input.
package oaserrors
