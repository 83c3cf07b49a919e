// Package pipeline runs the whole augmentation: load and validate the
// document, assemble code samples for every operation, splice them into the
// x-codeSamples extension and write the result.
//
// The output keeps the input's key order and every field it does not touch.
// Running the pipeline on its own output with the same languages yields
// byte-identical output.
package pipeline
