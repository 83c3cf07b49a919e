package overlay

import (
	"fmt"

	"github.com/erraggy/oassamples/internal/jsonpath"
)

// Validate checks an overlay document for structural errors.
//
// An empty result means the overlay is valid. Checks cover required fields
// (overlay version, info.title, info.version, actions), the supported
// version, JSONPath syntax of action targets, and that every action updates or removes.
func Validate(o *Overlay) []ValidationError {
	var errs []ValidationError

	if o.Version == "" {
		errs = append(errs, ValidationError{Path: "overlay", Message: "version is required"})
	} else if o.Version != SupportedVersion {
		errs = append(errs, ValidationError{
			Path:    "overlay",
			Message: fmt.Sprintf("unsupported version %q; only %q is supported", o.Version, SupportedVersion),
		})
	}

	if o.Info.Title == "" {
		errs = append(errs, ValidationError{Path: "info.title", Message: "title is required"})
	}
	if o.Info.Version == "" {
		errs = append(errs, ValidationError{Path: "info.version", Message: "version is required"})
	}

	if len(o.Actions) == 0 {
		errs = append(errs, ValidationError{Path: "actions", Message: "at least one action is required"})
	}
	for i, action := range o.Actions {
		errs = append(errs, validateAction(action, i)...)
	}

	return errs
}

func validateAction(action Action, index int) []ValidationError {
	var errs []ValidationError
	pathPrefix := fmt.Sprintf("actions[%d]", index)

	if action.Target == "" {
		errs = append(errs, ValidationError{Path: pathPrefix + ".target", Message: "target is required"})
	} else if _, err := jsonpath.Parse(action.Target); err != nil {
		errs = append(errs, ValidationError{Path: pathPrefix + ".target", Message: err.Error()})
	}

	if action.Update == nil && !action.Remove {
		errs = append(errs, ValidationError{Path: pathPrefix, Message: "action must have update or remove"})
	}

	return errs
}

// IsValid reports whether o has no validation errors.
func IsValid(o *Overlay) bool {
	return len(Validate(o)) == 0
}
