package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oassamples/oaserrors"
)

func TestExactlyOne(t *testing.T) {
	sources := func(set ...bool) []Source {
		names := []string{"WithSpecPath", "WithSpecReader", "WithSpecBytes"}
		out := make([]Source, len(set))
		for i, s := range set {
			out[i] = Source{Name: names[i], Set: s}
		}
		return out
	}

	assert.NoError(t, ExactlyOne("input", sources(false, true, false)...))

	err := ExactlyOne("input", sources(false, false, false)...)
	require.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.Contains(t, err.Error(), "must specify one of WithSpecPath, WithSpecReader or WithSpecBytes")

	err = ExactlyOne("input", sources(true, false, true)...)
	require.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.Contains(t, err.Error(), "only one of")
}

func TestAtMostOne(t *testing.T) {
	assert.NoError(t, AtMostOne("output", Source{Name: "a"}, Source{Name: "b"}))
	assert.NoError(t, AtMostOne("output", Source{Name: "a", Set: true}, Source{Name: "b"}))

	err := AtMostOne("output", Source{Name: "WithOutputPath", Set: true}, Source{Name: "WithOutputWriter", Set: true})
	require.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.Contains(t, err.Error(), "at most one of WithOutputPath or WithOutputWriter")
}
