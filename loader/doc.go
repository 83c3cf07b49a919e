// Package loader reads OpenAPI documents and prepares them for annotation.
//
// Load accepts exactly one source: a file path or URL ([WithFilePath]), an
// io.Reader ([WithReader]) or a byte slice ([WithBytes]). It then:
//
//  1. Decodes the source into an order-preserving yaml.Node tree.
//  2. Detects the dialect from the root "openapi" or "swagger" field.
//  3. Rejects anything older than OpenAPI 3.0 with a *oaserrors.DialectError.
//  4. Builds the kin-openapi model, resolving every $ref, and validates it.
//
// # Quick Start
//
//	doc, err := loader.Load(ctx,
//		loader.WithFilePath("openapi.yaml"),
//		loader.WithLogger(loader.NewSlogAdapter(slog.Default())),
//	)
//
// # External References
//
// Local references (#/components/...) are always resolved. References to other
// files or URLs are refused unless [WithExternalRefs] is enabled; relative refs
// resolve against the source file or URL.
//
// # Logging
//
// [Logger] is the structured logging interface shared by the loader, assembler
// and pipeline packages. [NopLogger] is the default; [NewSlogAdapter] adapts a
// *slog.Logger.
package loader
