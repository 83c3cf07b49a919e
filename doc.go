// Package oassamples augments OpenAPI documents with generated code samples.
//
// For every operation (path + HTTP method) in an OpenAPI 3.x document, oassamples
// renders one request snippet per requested language and writes the snippets back
// into the document under the x-codeSamples vendor extension, the field Redoc and
// similar documentation viewers display as a "Request samples" panel.
//
// # Packages
//
//   - loader: Load a document from a file, URL, reader or bytes, detect its dialect,
//     reject Swagger 2.0, validate and dereference it
//   - document: The order-preserving document tree, the operation model and the writer
//   - example: Pick the request body example that drives generation
//   - snippet: Shape HTTP requests and render them as source code per language
//   - assembler: Generate snippets for every (operation, language) pair
//   - splicer: Write the assembled snippets back into the document
//   - overlay: Express the assembled snippets as an OpenAPI Overlay document
//   - pipeline: Run load, assemble, splice and write as one batch
//
// # Quick Start
//
//	result, err := pipeline.Run(ctx,
//		pipeline.WithSpecPath("openapi.yaml"),
//		pipeline.WithOutputPath("openapi.samples.json"),
//		pipeline.WithLanguages("shell", "python", "go"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("wrote %d snippets for %d operations\n", result.SnippetCount, result.AnnotatedOperations)
//
// # Output
//
// Each annotated operation receives an array of objects:
//
//	x-codeSamples:
//	  - lang: python
//	    label: Python
//	    source: |
//	      import requests
//	      ...
//
// Operations for which no language produced a snippet are left untouched. All other
// fields of the document, including their order, are preserved.
package oassamples
