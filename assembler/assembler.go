package assembler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/example"
	"github.com/erraggy/oassamples/loader"
	"github.com/erraggy/oassamples/oaserrors"
	"github.com/erraggy/oassamples/snippet"
)

// Assembler crosses a document's operations with language targets.
// The zero value is not usable: Generator must be set.
type Assembler struct {
	// Languages is the ordered target list. Empty means DefaultLanguages.
	Languages []string
	// Generator renders one (operation, target) pair.
	Generator snippet.Generator
	// Selector chooses the request body example. Nil means example.First.
	Selector example.Selector
	// Concurrency bounds parallel generator calls. Values <= 1 run sequentially.
	Concurrency int
	// SkipErrors turns generator errors and panics into skipped pairs.
	SkipErrors bool
	// Logger receives progress and skip messages. Nil means no logging.
	Logger loader.Logger
}

// job is one (operation, target) pair; its index is its canonical position.
type job struct {
	op     *document.Operation
	target string
	values snippet.Values
}

type outcome struct {
	source string
	err    error
}

// Assemble generates the snippet directory for doc, which must have been
// loaded and dereferenced.
func (a *Assembler) Assemble(ctx context.Context, doc *document.Document) (*Directory, error) {
	if doc == nil || doc.Model == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "must be loaded and dereferenced before assembly"}
	}
	if a.Generator == nil {
		return nil, &oaserrors.ConfigError{Option: "generator", Message: "cannot be nil"}
	}
	targets, err := normalizeTargets(a.Languages)
	if err != nil {
		return nil, err
	}
	selector := a.Selector
	if selector == nil {
		selector = example.First{}
	}
	log := loader.OrNop(a.Logger)

	start := time.Now()
	ops := doc.Operations()
	for _, op := range doc.SharedOperations() {
		log.Info("operation reuses an earlier path's node, skipping",
			"path", op.Path, "method", op.Method, "shared_with", op.SharedWith)
	}
	jobs := make([]job, 0, len(ops)*len(targets))
	for _, op := range ops {
		values := snippet.Values{
			Header: map[string]any{},
			Path:   map[string]any{},
			Query:  map[string]any{},
		}
		if sel, ok := selector.Select(op); ok {
			values.Body = sel.Value
			values.BodyMediaType = sel.MediaType
		}
		for _, target := range targets {
			jobs = append(jobs, job{op: op, target: target, values: values})
		}
	}

	results, err := a.run(ctx, doc, jobs)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(targets))
	for _, target := range targets {
		labels[target] = Label(target)
	}

	dir := NewDirectory()
	for i, j := range jobs {
		res := results[i]
		switch {
		case res.err != nil:
			dir.skipped++
			log.Warn("snippet generation failed, skipping",
				"path", j.op.Path, "method", j.op.Method, "language", j.target, "error", res.err)
		case res.source == "":
			dir.declined++
			log.Info("snippet declined",
				"path", j.op.Path, "method", j.op.Method, "language", j.target)
		default:
			dir.Add(j.op.Path, j.op.Method, Snippet{
				Lang:   HighlightTag(j.target),
				Label:  labels[j.target],
				Source: res.source,
			})
		}
	}

	log.Info("snippets assembled",
		"operations", len(ops),
		"languages", len(targets),
		"snippets", dir.SnippetCount(),
		"declined", dir.declined,
		"skipped", dir.skipped,
		"elapsed", time.Since(start),
	)
	return dir, nil
}

// run executes every job and returns outcomes indexed like jobs. Outside of
// SkipErrors mode the first failure, in canonical order, is returned.
func (a *Assembler) run(ctx context.Context, doc *document.Document, jobs []job) ([]outcome, error) {
	results := make([]outcome, len(jobs))

	if a.Concurrency <= 1 {
		for i, j := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = a.generate(ctx, doc, j)
			if results[i].err != nil && !a.SkipErrors {
				return nil, results[i].err
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.generate(gctx, doc, j)
			if results[i].err != nil && !a.SkipErrors {
				return results[i].err
			}
			return nil
		})
	}
	waitErr := g.Wait()

	if !a.SkipErrors {
		for _, res := range results {
			var genErr *oaserrors.GenerationError
			if errors.As(res.err, &genErr) {
				return nil, res.err
			}
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// generate calls the generator for one pair. Panics are converted to errors
// and every failure is wrapped in a *oaserrors.GenerationError.
func (a *Assembler) generate(ctx context.Context, doc *document.Document, j job) (res outcome) {
	defer func() {
		if r := recover(); r != nil {
			res = outcome{err: generationError(j, fmt.Errorf("generator panicked: %v", r))}
		}
	}()

	src, err := a.Generator.Generate(ctx, doc, j.op, j.values, nil, j.target)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return outcome{err: ctxErr}
			}
		}
		return outcome{err: generationError(j, err)}
	}
	return outcome{source: src}
}

func generationError(j job, cause error) error {
	return &oaserrors.GenerationError{
		Path:     j.op.Path,
		Method:   j.op.Method,
		Language: j.target,
		Cause:    cause,
	}
}
