package overlay

import (
	"fmt"

	"github.com/erraggy/oassamples/oaserrors"
)

// ValidationError is a structural problem in an overlay document. It matches
// oaserrors.ErrValidation.
type ValidationError struct {
	// Path locates the problem, e.g. "info.title" or "actions[0].target".
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return "overlay: invalid: " + e.Message
	}
	return fmt.Sprintf("overlay: invalid %s: %s", e.Path, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == oaserrors.ErrValidation
}

// ApplyError reports an action that could not be applied to the document
// tree. It matches oaserrors.ErrSplice.
type ApplyError struct {
	ActionIndex int
	Target      string
	Cause       error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("overlay: actions[%d] (%s): %v", e.ActionIndex, e.Target, e.Cause)
}

func (e *ApplyError) Unwrap() error { return e.Cause }

func (e *ApplyError) Is(target error) bool {
	return target == oaserrors.ErrSplice
}

// ParseError reports overlay bytes that are not YAML or JSON. It matches
// oaserrors.ErrParse.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("overlay: parsing: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Is(target error) bool {
	return target == oaserrors.ErrParse
}
