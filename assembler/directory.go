package assembler

// Snippet is one generated code sample as recorded in the document.
type Snippet struct {
	// Lang is the syntax highlighting tag.
	Lang string `json:"lang" yaml:"lang"`
	// Label is the human readable language name.
	Label string `json:"label" yaml:"label"`
	// Source is the generated code.
	Source string `json:"source" yaml:"source"`
}

// Entry is the snippet list of one operation.
type Entry struct {
	Path     string    `json:"path"`
	Method   string    `json:"method"`
	Snippets []Snippet `json:"snippets"`
}

// Directory maps path -> method -> ordered snippets. Paths and methods keep
// insertion order. Only operations with at least one snippet are present.
type Directory struct {
	paths   []string
	entries map[string]*pathEntry

	declined int
	skipped  int
}

type pathEntry struct {
	methods  []string
	snippets map[string][]Snippet
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{entries: make(map[string]*pathEntry)}
}

// Add appends s to the snippets of (path, method).
func (d *Directory) Add(path, method string, s Snippet) {
	pe, ok := d.entries[path]
	if !ok {
		pe = &pathEntry{snippets: make(map[string][]Snippet)}
		d.entries[path] = pe
		d.paths = append(d.paths, path)
	}
	if _, ok := pe.snippets[method]; !ok {
		pe.methods = append(pe.methods, method)
	}
	pe.snippets[method] = append(pe.snippets[method], s)
}

// Get returns the snippets of (path, method), or nil.
func (d *Directory) Get(path, method string) []Snippet {
	if pe, ok := d.entries[path]; ok {
		return pe.snippets[method]
	}
	return nil
}

// Paths returns the paths in insertion order.
func (d *Directory) Paths() []string {
	return append([]string(nil), d.paths...)
}

// Methods returns the methods recorded for path in insertion order.
func (d *Directory) Methods(path string) []string {
	if pe, ok := d.entries[path]; ok {
		return append([]string(nil), pe.methods...)
	}
	return nil
}

// Len returns the number of (path, method) keys.
func (d *Directory) Len() int {
	n := 0
	for _, pe := range d.entries {
		n += len(pe.methods)
	}
	return n
}

// SnippetCount returns the total number of snippets.
func (d *Directory) SnippetCount() int {
	n := 0
	for _, pe := range d.entries {
		for _, s := range pe.snippets {
			n += len(s)
		}
	}
	return n
}

// Each calls fn for every key in insertion order and stops at the first error.
func (d *Directory) Each(fn func(path, method string, snippets []Snippet) error) error {
	for _, path := range d.paths {
		pe := d.entries[path]
		for _, method := range pe.methods {
			if err := fn(path, method, pe.snippets[method]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Entries flattens the directory in insertion order.
func (d *Directory) Entries() []Entry {
	out := make([]Entry, 0, d.Len())
	_ = d.Each(func(path, method string, snippets []Snippet) error {
		out = append(out, Entry{Path: path, Method: method, Snippets: snippets})
		return nil
	})
	return out
}

// Declined returns how many (operation, target) pairs the generator declined.
func (d *Directory) Declined() int {
	return d.declined
}

// Skipped returns how many pairs were skipped after a generator failure.
func (d *Directory) Skipped() int {
	return d.skipped
}
