// Package assembler builds the snippet directory for a document: every
// operation crossed with every requested language target.
//
// Operations are visited in declared path order and declared method order;
// targets in requested order. Generation may run in parallel, but the
// resulting [Directory] always lists snippets in that canonical order, so
// unchanged input produces identical output.
//
// A generator that returns an empty source declines the pair; the pair is
// skipped and logged at Info level. Generator errors abort the run unless
// [Assembler.SkipErrors] is set.
//
// Example:
//
//	a := &assembler.Assembler{
//		Languages: []string{"shell", "python"},
//		Generator: snippet.NewRegistry(),
//	}
//	dir, err := a.Assemble(ctx, doc)
package assembler
