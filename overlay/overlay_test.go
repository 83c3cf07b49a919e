package overlay_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oassamples/assembler"
	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/internal/testutil"
	"github.com/erraggy/oassamples/oaserrors"
	"github.com/erraggy/oassamples/overlay"
	"github.com/erraggy/oassamples/splicer"
)

func sampleDirectory() *assembler.Directory {
	dir := assembler.NewDirectory()
	dir.Add("/pets", "get", assembler.Snippet{Lang: "shell", Label: "Shell", Source: "curl --request GET \\\n  --url 'https://x/pets'"})
	dir.Add("/pets", "get", assembler.Snippet{Lang: "c", Label: "Swift", Source: "import Foundation"})
	dir.Add("/pets/{petId}", "delete", assembler.Snippet{Lang: "go", Label: "Go", Source: "package main"})
	return dir
}

func TestTargetRoundTrip(t *testing.T) {
	tests := []struct {
		path   string
		method string
		want   string
	}{
		{"/pets", "get", "$.paths['/pets'].get"},
		{"/pets/{petId}", "delete", "$.paths['/pets/{petId}'].delete"},
		{"/it's", "post", `$.paths['/it\'s'].post`},
		{`/a\b`, "put", `$.paths['/a\\b'].put`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			target := overlay.Target(tt.path, tt.method)
			assert.Equal(t, tt.want, target)

			path, method, err := overlay.ParseTarget(target)
			require.NoError(t, err)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.method, method)
		})
	}
}

func TestParseTargetRejectsOtherExpressions(t *testing.T) {
	for _, target := range []string{
		"$.info",
		"$.paths['/pets']",
		"$.paths['/pets'].summary",
		"$.paths[*].get",
	} {
		_, _, err := overlay.ParseTarget(target)
		assert.Error(t, err, target)
	}
}

func TestFromDirectory(t *testing.T) {
	o := overlay.FromDirectory(sampleDirectory(), overlay.Info{Title: "Code samples", Version: "1.0.0"}, "openapi.yaml")

	assert.Equal(t, overlay.SupportedVersion, o.Version)
	assert.Equal(t, "openapi.yaml", o.Extends)
	var targets []string
	for _, a := range o.Actions {
		targets = append(targets, a.Target)
	}
	assert.Equal(t, []string{
		"$.paths['/pets'].get['x-codeSamples']",
		"$.paths['/pets'].get",
		"$.paths['/pets/{petId}'].delete['x-codeSamples']",
		"$.paths['/pets/{petId}'].delete",
	}, targets)
	assert.True(t, o.Actions[0].Remove)
	assert.NotNil(t, o.Actions[1].Update)
	assert.True(t, overlay.IsValid(o))
}

func TestMarshalAndParse(t *testing.T) {
	o := overlay.FromDirectory(sampleDirectory(), overlay.Info{Title: "Code samples", Version: "1.0.0"}, "")

	for _, format := range []document.SourceFormat{document.SourceFormatYAML, document.SourceFormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := overlay.Marshal(o, format)
			require.NoError(t, err)
			assert.Contains(t, string(data), "x-codeSamples")

			parsed, err := overlay.Parse(data)
			require.NoError(t, err)
			assert.Equal(t, o.Info, parsed.Info)
			require.Len(t, parsed.Actions, 4)
			assert.Equal(t, o.Actions[3].Target, parsed.Actions[3].Target)
			assert.True(t, parsed.Actions[2].Remove)
			assert.Empty(t, overlay.Validate(parsed))
		})
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := overlay.Parse([]byte("overlay: [\n"))
	require.Error(t, err)
	var parseErr *overlay.ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.ErrorIs(t, err, oaserrors.ErrParse)
}

func TestValidate(t *testing.T) {
	errs := overlay.Validate(&overlay.Overlay{
		Version: "2.0.0",
		Actions: []overlay.Action{{Target: "info"}},
	})

	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Path)
	}
	assert.Equal(t, []string{"overlay", "info.title", "info.version", "actions[0].target", "actions[0]"}, fields)
	assert.Contains(t, errs[0].Error(), `unsupported version "2.0.0"`)

	assert.NotEmpty(t, overlay.Validate(&overlay.Overlay{Version: "1.0.0", Info: overlay.Info{Title: "t", Version: "1"}}))
}

func TestApplyMatchesSplice(t *testing.T) {
	dir := sampleDirectory()

	spliced := testutil.LoadYAML(t, testutil.PetstoreYAML)
	require.NoError(t, splicer.Splice(spliced, dir))
	want, err := spliced.Marshal(document.SourceFormatJSON)
	require.NoError(t, err)

	data, err := overlay.Marshal(overlay.FromDirectory(dir, overlay.Info{Title: "t", Version: "1"}, ""), document.SourceFormatYAML)
	require.NoError(t, err)
	parsed, err := overlay.Parse(data)
	require.NoError(t, err)

	applied := testutil.LoadYAML(t, testutil.PetstoreYAML)
	res, err := overlay.Apply(applied, parsed)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ActionsApplied)
	assert.Equal(t, 2, res.ActionsSkipped, "no samples to remove yet")

	got, err := applied.Marshal(document.SourceFormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestApplyReplacesExistingSamples(t *testing.T) {
	src := `openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      x-codeSamples:
        - lang: shell
          label: Shell
          source: old
      responses:
        "200":
          description: ok
`
	dir := assembler.NewDirectory()
	dir.Add("/pets", "get", assembler.Snippet{Lang: "shell", Label: "Shell", Source: "new"})

	spliced := testutil.LoadYAML(t, src)
	require.NoError(t, splicer.Splice(spliced, dir))

	applied := testutil.LoadYAML(t, src)
	res, err := overlay.Apply(applied, overlay.FromDirectory(dir, overlay.Info{Title: "t", Version: "1"}, ""))
	require.NoError(t, err)
	assert.Equal(t, 2, res.ActionsApplied)

	op, ok := applied.LookupOperation("/pets", "get")
	require.True(t, ok)
	var got []assembler.Snippet
	require.NoError(t, document.MappingValue(op, splicer.ExtensionKey).Decode(&got))
	assert.Equal(t, []assembler.Snippet{{Lang: "shell", Label: "Shell", Source: "new"}}, got)

	var want, have any
	require.NoError(t, spliced.Root.Decode(&want))
	require.NoError(t, applied.Root.Decode(&have))
	if diff := cmp.Diff(want, have); diff != "" {
		t.Errorf("overlay result differs from splice (-splice +overlay):\n%s", diff)
	}
}

func TestApplyRemoveAndErrors(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	info := overlay.Info{Title: "t", Version: "1"}

	res, err := overlay.Apply(doc, &overlay.Overlay{
		Version: overlay.SupportedVersion,
		Info:    info,
		Actions: []overlay.Action{
			{Target: overlay.Target("/pets/{petId}", "delete"), Remove: true},
			{Target: overlay.Target("/owners", "get"), Update: map[string]any{"x-a": 1}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ActionsApplied)
	assert.Equal(t, 1, res.ActionsSkipped, "targets matching nothing are skipped")
	assert.Equal(t, []overlay.Change{{ActionIndex: 0, Target: "$.paths['/pets/{petId}'].delete", Operation: "remove", MatchCount: 1}}, res.Changes)
	_, ok := doc.LookupOperation("/pets/{petId}", "delete")
	assert.False(t, ok)

	var applyErr *overlay.ApplyError
	_, err = overlay.Apply(doc, &overlay.Overlay{
		Version: overlay.SupportedVersion,
		Info:    info,
		Actions: []overlay.Action{{Target: overlay.Target("/pets", "get"), Update: []string{"not", "a", "map"}}},
	})
	require.ErrorAs(t, err, &applyErr)
	assert.ErrorIs(t, err, oaserrors.ErrSplice)
	assert.Equal(t, 0, applyErr.ActionIndex)
	assert.Contains(t, err.Error(), "update must be a mapping")

	_, err = overlay.Apply(doc, &overlay.Overlay{
		Version: overlay.SupportedVersion,
		Info:    info,
		Actions: []overlay.Action{{Target: "$.info.title", Update: "renamed"}},
	})
	require.ErrorAs(t, err, &applyErr)
	assert.Contains(t, err.Error(), "scalar")

	_, err = overlay.Apply(doc, &overlay.Overlay{Version: "0.1"})
	var validationErr overlay.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.ErrorIs(t, err, oaserrors.ErrValidation)
}

func TestApplyWildcardsAndMerge(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)

	res, err := overlay.Apply(doc, &overlay.Overlay{
		Version: overlay.SupportedVersion,
		Info:    overlay.Info{Title: "t", Version: "1"},
		Actions: []overlay.Action{
			{Target: "$.paths.*.get", Update: map[string]any{"x-reviewed": true}},
			{Target: "$.paths['/pets'][?@.operationId=='createPet']", Remove: true},
			{Target: "$.servers", Update: map[string]any{"url": "https://staging.example"}},
			{Target: "$.info", Update: map[string]any{"x-meta": map[string]any{"team": "pets"}}},
			{Target: "$.info", Update: map[string]any{"x-meta": map[string]any{"tier": 1}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.ActionsApplied)
	assert.Equal(t, 2, res.Changes[0].MatchCount)

	for _, path := range []string{"/pets", "/pets/{petId}"} {
		op, ok := doc.LookupOperation(path, "get")
		require.True(t, ok)
		reviewed := document.MappingValue(op, "x-reviewed")
		require.NotNil(t, reviewed, path)
		assert.Equal(t, "true", reviewed.Value)
	}
	_, ok := doc.LookupOperation("/pets", "post")
	assert.False(t, ok)

	servers := document.MappingValue(doc.RootMapping(), "servers")
	assert.Len(t, servers.Content, 2)

	meta := document.MappingValue(document.MappingValue(doc.RootMapping(), "info"), "x-meta")
	assert.Equal(t, []string{"team", "tier"}, document.MappingKeys(meta))
}
