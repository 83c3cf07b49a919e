package overlay

import (
	"strings"

	"github.com/erraggy/oassamples/assembler"
)

// SupportedVersion is the overlay specification version produced and accepted.
const SupportedVersion = "1.0.0"

// CodeSamplesUpdate is the update body of a generated action.
type CodeSamplesUpdate struct {
	CodeSamples []assembler.Snippet `yaml:"x-codeSamples" json:"x-codeSamples"`
}

// FromDirectory builds an overlay with two actions per operation in dir, in
// directory order: a remove of any existing x-codeSamples, then an update that
// sets the new ones. Updates append to sequences, so without the remove old
// samples would survive. extends may be empty.
func FromDirectory(dir *assembler.Directory, info Info, extends string) *Overlay {
	o := &Overlay{
		Version: SupportedVersion,
		Info:    info,
		Extends: extends,
		Actions: make([]Action, 0, 2*dir.Len()),
	}
	_ = dir.Each(func(path, method string, snippets []assembler.Snippet) error {
		o.Actions = append(o.Actions,
			Action{Target: SamplesTarget(path, method), Remove: true},
			Action{Target: Target(path, method), Update: CodeSamplesUpdate{CodeSamples: snippets}},
		)
		return nil
	})
	return o
}

// SamplesTarget returns the JSONPath expression selecting the operation's
// x-codeSamples.
func SamplesTarget(path, method string) string {
	return Target(path, method) + "['x-codeSamples']"
}

// Target returns the JSONPath expression selecting the operation.
func Target(path, method string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(path)
	return "$.paths['" + escaped + "']." + method
}
