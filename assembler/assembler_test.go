package assembler_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oassamples/assembler"
	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/example"
	"github.com/erraggy/oassamples/internal/testutil"
	"github.com/erraggy/oassamples/loader"
	"github.com/erraggy/oassamples/oaserrors"
	"github.com/erraggy/oassamples/snippet"
)

// pythonOnly renders python and declines everything else.
func pythonOnly(op *document.Operation, target string) (string, error) {
	if target != "python" {
		return "", nil
	}
	return "requests." + op.Method + "()", nil
}

func TestAssemblePythonAndSwiftScenario(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	gen := &testutil.RecordingGenerator{Respond: pythonOnly}

	a := &assembler.Assembler{Languages: []string{"python", "swift"}, Generator: gen}
	dir, err := a.Assemble(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, []assembler.Snippet{
		{Lang: "python", Label: "Python", Source: "requests.get()"},
	}, dir.Get("/pets", "get"))
	assert.Len(t, gen.Calls(), 8, "4 operations x 2 targets")
}

func TestAssembleKotlinScenario(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	gen := &testutil.RecordingGenerator{}

	a := &assembler.Assembler{Languages: []string{"kotlin"}, Generator: gen}
	dir, err := a.Assemble(context.Background(), doc)
	require.NoError(t, err)

	got := dir.Get("/pets", "get")
	require.Len(t, got, 1)
	assert.Equal(t, "java", got[0].Lang)
	assert.Equal(t, "Kotlin", got[0].Label)
}

func TestHighlightTagAndLabel(t *testing.T) {
	tests := []struct {
		target    string
		wantLang  string
		wantLabel string
	}{
		{"swift", "c", "Swift"},
		{"kotlin", "java", "Kotlin"},
		{"go", "go", "Go"},
		{"shell", "shell", "Shell"},
		{"javascript", "javascript", "Javascript"},
		{"élan", "élan", "Élan"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.wantLang, assembler.HighlightTag(tt.target))
			assert.Equal(t, tt.wantLabel, assembler.Label(tt.target))
		})
	}
}

func TestLabelConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.Equal(t, "Kotlin", assembler.Label("kotlin"))
				assert.Equal(t, "Élan", assembler.Label("élan"))
			}
		}()
	}
	wg.Wait()
}

func TestAssembleSkipsSharedOperations(t *testing.T) {
	doc := testutil.LoadYAML(t, `openapi: 3.0.3
info:
  title: Shared
  version: 1.0.0
paths:
  /a:
    get:
      responses:
        "200":
          description: ok
  /b:
    $ref: '#/paths/~1a'
`)
	gen := &testutil.RecordingGenerator{}
	var logs bytes.Buffer
	a := &assembler.Assembler{
		Languages: []string{"shell"},
		Generator: gen,
		Logger:    loader.NewSlogAdapter(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	}

	dir, err := a.Assemble(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a"}, dir.Paths())
	assert.Len(t, gen.Calls(), 1)
	assert.Contains(t, logs.String(), "shared_with=/a")
}

func TestAssembleDefaultLanguages(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	gen := &testutil.RecordingGenerator{}

	dir, err := (&assembler.Assembler{Generator: gen}).Assemble(context.Background(), doc)
	require.NoError(t, err)

	var langs []string
	for _, s := range dir.Get("/pets", "post") {
		langs = append(langs, s.Lang)
	}
	assert.Equal(t, []string{"go", "python", "shell", "java", "java", "c"}, langs)
	assert.Equal(t, 24, dir.SnippetCount())

	defaults := assembler.DefaultLanguages()
	defaults[0] = "mutated"
	assert.Equal(t, "go", assembler.DefaultLanguages()[0])
}

func TestAssembleCanonicalOrder(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	a := &assembler.Assembler{Languages: []string{"shell", "go"}, Generator: &testutil.RecordingGenerator{}}

	dir, err := a.Assemble(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"/pets", "/pets/{petId}"}, dir.Paths())
	assert.Equal(t, []string{"get", "post"}, dir.Methods("/pets"))
	assert.Equal(t, []string{"get", "delete"}, dir.Methods("/pets/{petId}"))
	assert.Equal(t, 4, dir.Len())

	var keys []string
	require.NoError(t, dir.Each(func(path, method string, snippets []assembler.Snippet) error {
		keys = append(keys, method+" "+path)
		assert.Equal(t, "shell", snippets[0].Lang)
		assert.Equal(t, "go", snippets[1].Lang)
		return nil
	}))
	assert.Equal(t, []string{"get /pets", "post /pets", "get /pets/{petId}", "delete /pets/{petId}"}, keys)

	entries := dir.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "/pets/{petId}", entries[3].Path)
	assert.Equal(t, "delete", entries[3].Method)
}

func TestAssembleTargetReordering(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	gen := &testutil.RecordingGenerator{}

	forward, err := (&assembler.Assembler{Languages: []string{"go", "ruby", "php"}, Generator: gen}).Assemble(context.Background(), doc)
	require.NoError(t, err)
	backward, err := (&assembler.Assembler{Languages: []string{"php", "ruby", "go"}, Generator: gen}).Assemble(context.Background(), doc)
	require.NoError(t, err)

	require.Equal(t, forward.Entries()[0].Path, backward.Entries()[0].Path)
	for _, e := range forward.Entries() {
		got := backward.Get(e.Path, e.Method)
		reversed := slices.Clone(e.Snippets)
		slices.Reverse(reversed)
		assert.Equal(t, reversed, got)
	}
}

func TestAssembleCompleteness(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	gen := &testutil.RecordingGenerator{Respond: func(op *document.Operation, target string) (string, error) {
		if op.Method == "delete" {
			return "", nil
		}
		return target, nil
	}}

	dir, err := (&assembler.Assembler{Languages: []string{"go"}, Generator: gen}).Assemble(context.Background(), doc)
	require.NoError(t, err)

	assert.Nil(t, dir.Get("/pets/{petId}", "delete"))
	assert.Equal(t, []string{"get"}, dir.Methods("/pets/{petId}"))
	assert.Equal(t, 3, dir.Len())
}

func TestAssembleValues(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	gen := &testutil.RecordingGenerator{}

	_, err := (&assembler.Assembler{Languages: []string{"go"}, Generator: gen}).Assemble(context.Background(), doc)
	require.NoError(t, err)

	calls := gen.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, map[string]any{"limit": float64(5)}, calls[0].Values.Body)
	assert.Equal(t, "application/json", calls[0].Values.BodyMediaType)
	assert.Equal(t, map[string]any{"name": "Tom"}, calls[1].Values.Body)
	assert.Nil(t, calls[2].Values.Body)
	assert.NotNil(t, calls[2].Values.Header)
	assert.Empty(t, calls[2].Values.Query)
	assert.Empty(t, calls[2].Values.Path)
}

func TestAssembleCustomSelector(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	gen := &testutil.RecordingGenerator{}

	a := &assembler.Assembler{
		Languages: []string{"go"},
		Generator: gen,
		Selector:  example.PreferMediaType("application/x-www-form-urlencoded"),
	}
	_, err := a.Assemble(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", gen.Calls()[1].Values.BodyMediaType)
}

func TestAssembleTargetValidation(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)

	t.Run("blank target", func(t *testing.T) {
		_, err := (&assembler.Assembler{Languages: []string{"go", " "}, Generator: &testutil.RecordingGenerator{}}).Assemble(context.Background(), doc)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("duplicates keep first occurrence", func(t *testing.T) {
		gen := &testutil.RecordingGenerator{}
		dir, err := (&assembler.Assembler{Languages: []string{"go", "shell", "go"}, Generator: gen}).Assemble(context.Background(), doc)
		require.NoError(t, err)
		got := dir.Get("/pets", "get")
		require.Len(t, got, 2)
		assert.Equal(t, "go", got[0].Lang)
		assert.Equal(t, "shell", got[1].Lang)
	})
}

func TestAssembleRequiresModelAndGenerator(t *testing.T) {
	root, err := document.Decode([]byte(testutil.PetstoreYAML))
	require.NoError(t, err)

	_, err = (&assembler.Assembler{Generator: &testutil.RecordingGenerator{}}).Assemble(context.Background(), &document.Document{Root: root})
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	_, err = (&assembler.Assembler{}).Assemble(context.Background(), doc)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestAssembleFailFast(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	boom := errors.New("boom")
	failPost := func(op *document.Operation, target string) (string, error) {
		if op.Method == "post" && target == "python" {
			return "", boom
		}
		return target, nil
	}

	for _, concurrency := range []int{1, 4} {
		gen := &testutil.RecordingGenerator{Respond: failPost}
		a := &assembler.Assembler{Languages: []string{"go", "python"}, Generator: gen, Concurrency: concurrency}

		dir, err := a.Assemble(context.Background(), doc)
		require.Error(t, err)
		assert.Nil(t, dir)

		var genErr *oaserrors.GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "/pets", genErr.Path)
		assert.Equal(t, "post", genErr.Method)
		assert.Equal(t, "python", genErr.Language)
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, oaserrors.ErrGeneration)
	}
}

func TestAssembleSkipErrors(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	gen := &testutil.RecordingGenerator{Respond: func(op *document.Operation, target string) (string, error) {
		switch {
		case op.Method == "post":
			return "", errors.New("boom")
		case op.Method == "delete":
			panic("renderer bug")
		}
		return target, nil
	}}

	var logs bytes.Buffer
	a := &assembler.Assembler{
		Languages:  []string{"go"},
		Generator:  gen,
		SkipErrors: true,
		Logger:     loader.NewSlogAdapter(slog.New(slog.NewTextHandler(&logs, nil))),
	}
	dir, err := a.Assemble(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, 2, dir.Len())
	assert.Nil(t, dir.Get("/pets", "post"))
	assert.Nil(t, dir.Get("/pets/{petId}", "delete"))
	assert.Contains(t, logs.String(), "snippet generation failed, skipping")
	assert.Contains(t, logs.String(), "renderer bug")
	assert.Contains(t, logs.String(), "skipped=2")
}

func TestAssemblePanicFailsFastWithoutSkip(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	gen := &testutil.RecordingGenerator{Respond: func(*document.Operation, string) (string, error) {
		panic("renderer bug")
	}}

	_, err := (&assembler.Assembler{Languages: []string{"go"}, Generator: gen, Concurrency: 2}).Assemble(context.Background(), doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrGeneration)
	assert.Contains(t, err.Error(), "generator panicked: renderer bug")
}

func TestAssembleDeclinesAreLogged(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	var logs bytes.Buffer
	a := &assembler.Assembler{
		Languages: []string{"cobol"},
		Generator: snippet.NewRegistry(),
		Logger:    loader.NewSlogAdapter(slog.New(slog.NewTextHandler(&logs, nil))),
	}

	dir, err := a.Assemble(context.Background(), doc)
	require.NoError(t, err)
	assert.Zero(t, dir.Len())
	assert.Contains(t, logs.String(), "snippet declined")
	assert.Contains(t, logs.String(), "declined=4")
}

func TestAssembleConcurrencyIsDeterministic(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	langs := []string{"shell", "go", "python", "java", "kotlin", "swift", "javascript", "node", "ruby", "php", "csharp"}

	sequential, err := (&assembler.Assembler{Languages: langs, Generator: snippet.NewRegistry()}).Assemble(context.Background(), doc)
	require.NoError(t, err)

	for range 5 {
		parallel, err := (&assembler.Assembler{Languages: langs, Generator: snippet.NewRegistry(), Concurrency: 8}).Assemble(context.Background(), doc)
		require.NoError(t, err)
		if diff := cmp.Diff(sequential.Entries(), parallel.Entries()); diff != "" {
			t.Fatalf("parallel assembly differs (-sequential +parallel):\n%s", diff)
		}
	}
}

func TestAssembleCanceledContext(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, concurrency := range []int{1, 4} {
		_, err := (&assembler.Assembler{Generator: &testutil.RecordingGenerator{}, Concurrency: concurrency}).Assemble(ctx, doc)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestDirectoryCounters(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	gen := &testutil.RecordingGenerator{Respond: func(op *document.Operation, target string) (string, error) {
		switch {
		case target == "ruby":
			return "", nil
		case op.Method == "delete":
			return "", errors.New("boom")
		}
		return target, nil
	}}

	dir, err := (&assembler.Assembler{Languages: []string{"go", "ruby"}, Generator: gen, SkipErrors: true}).Assemble(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 4, dir.Declined())
	assert.Equal(t, 1, dir.Skipped())
	assert.Equal(t, 3, dir.SnippetCount())
}
