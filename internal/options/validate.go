// Package options holds checks shared by the functional option layers of
// the pipeline and loader packages.
package options

import "github.com/erraggy/oassamples/oaserrors"

// Source is one way of setting an option, such as a path or a reader.
type Source struct {
	Name string
	Set  bool
}

// ExactlyOne returns a *oaserrors.ConfigError for option unless exactly one
// of sources is set. The message names the alternatives.
func ExactlyOne(option string, sources ...Source) error {
	set := countSet(sources)
	switch {
	case set == 0:
		return &oaserrors.ConfigError{Option: option, Message: "must specify one of " + names(sources)}
	case set > 1:
		return &oaserrors.ConfigError{Option: option, Message: "must specify only one of " + names(sources)}
	}
	return nil
}

// AtMostOne is like ExactlyOne but accepts none being set.
func AtMostOne(option string, sources ...Source) error {
	if countSet(sources) > 1 {
		return &oaserrors.ConfigError{Option: option, Message: "must specify at most one of " + names(sources)}
	}
	return nil
}

func countSet(sources []Source) int {
	n := 0
	for _, s := range sources {
		if s.Set {
			n++
		}
	}
	return n
}

func names(sources []Source) string {
	var out string
	for i, s := range sources {
		switch {
		case i == 0:
		case i == len(sources)-1:
			out += " or "
		default:
			out += ", "
		}
		out += s.Name
	}
	return out
}
