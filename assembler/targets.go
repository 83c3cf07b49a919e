package assembler

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oassamples/oaserrors"
)

// DefaultLanguages returns the targets used when none are requested.
// A fresh slice is returned on each call.
func DefaultLanguages() []string {
	return []string{"go", "python", "shell", "java", "kotlin", "swift"}
}

// highlightTags remaps targets whose name is not a syntax highlighting tag
// that documentation renderers understand.
var highlightTags = map[string]string{
	"swift":  "c",
	"kotlin": "java",
}

// HighlightTag returns the "lang" value recorded for target.
func HighlightTag(target string) string {
	if tag, ok := highlightTags[target]; ok {
		return tag
	}
	return target
}

// A Caser keeps state between calls, so the shared one is locked.
var (
	titleMu    sync.Mutex
	titleCaser = cases.Title(language.English, cases.NoLower)
)

// Label returns target with its first character upper-cased.
func Label(target string) string {
	r, size := utf8.DecodeRuneInString(target)
	if r == utf8.RuneError {
		return target
	}
	titleMu.Lock()
	defer titleMu.Unlock()
	return titleCaser.String(string(r)) + target[size:]
}

// normalizeTargets applies the default list, rejects blank targets and drops
// repeats while keeping first-occurrence order.
func normalizeTargets(targets []string) ([]string, error) {
	if len(targets) == 0 {
		return DefaultLanguages(), nil
	}
	out := make([]string, 0, len(targets))
	seen := make(map[string]bool, len(targets))
	for i, t := range targets {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, &oaserrors.ConfigError{Option: "languages", Value: i, Message: "language target cannot be blank"}
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}
