package snippet

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"regexp"
	"slices"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/internal/httputil"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(templateFuncs).
	ParseFS(templateFS, "templates/*.tmpl"))

var templateFuncs = template.FuncMap{
	"cquote":        cQuote,
	"ktquote":       kotlinQuote,
	"swiftquote":    swiftQuote,
	"rbquote":       rubyQuote,
	"shquote":       shellQuote,
	"phpquote":      phpQuote,
	"goquote":       goQuote,
	"pyliteral":     pyLiteral,
	"rubymethod":    rubyMethod,
	"basemediatype": httputil.BaseMediaType,
	"compactjson":   compactJSON,
	"iscontenttype": func(name string) bool { return strings.EqualFold(name, "Content-Type") },
}

// Renderer turns a shaped request into source code. An empty result declines.
type Renderer interface {
	Render(req *Request) (string, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(req *Request) (string, error)

// Render implements Renderer.
func (f RendererFunc) Render(req *Request) (string, error) {
	return f(req)
}

// templateRenderer executes one embedded template.
type templateRenderer struct {
	name      string
	multipart bool
	format    func(src []byte) []byte
}

func (t templateRenderer) Render(req *Request) (string, error) {
	if req.Kind == BodyMultipart && !t.multipart {
		return "", nil
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, t.name+".tmpl", req); err != nil {
		return "", err
	}
	src := buf.Bytes()
	if t.format != nil {
		src = t.format(src)
	}
	return tidy(src), nil
}

// formatGo runs goimports-equivalent processing. Unformattable source is
// returned as rendered.
func formatGo(src []byte) []byte {
	formatted, err := imports.Process("snippet.go", src, nil)
	if err != nil {
		return src
	}
	return formatted
}

var blankRuns = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+\n`)

// tidy collapses runs of blank lines and trims surrounding whitespace.
func tidy(src []byte) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(string(src), "\n\n"))
}

func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Registry maps language targets to renderers and implements Generator.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry returns a registry holding every built-in renderer.
func NewRegistry() *Registry {
	r := &Registry{renderers: make(map[string]Renderer)}
	for _, t := range builtins {
		r.renderers[t.name] = t
	}
	return r
}

var builtins = []templateRenderer{
	{name: "shell", multipart: true},
	{name: "go", format: formatGo},
	{name: "python", multipart: true},
	{name: "java"},
	{name: "kotlin"},
	{name: "swift"},
	{name: "javascript", multipart: true},
	{name: "node", multipart: true},
	{name: "ruby"},
	{name: "php"},
	{name: "csharp"},
}

// Register adds or replaces the renderer for target.
func (r *Registry) Register(target string, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[strings.ToLower(target)] = renderer
}

// Lookup returns the renderer for target.
func (r *Registry) Lookup(target string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[strings.ToLower(target)]
	return renderer, ok
}

// Targets returns the registered targets in sorted order.
func (r *Registry) Targets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	targets := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		targets = append(targets, name)
	}
	slices.Sort(targets)
	return targets
}

// Generate implements Generator. Unknown targets and operations without a
// model are declined.
func (r *Registry) Generate(ctx context.Context, doc *document.Document, op *document.Operation, values Values, auth Auth, target string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	renderer, ok := r.Lookup(target)
	if !ok || op == nil || op.Model == nil {
		return "", nil
	}
	req, err := BuildRequest(doc, op, values, auth)
	if err != nil {
		return "", err
	}
	return renderer.Render(req)
}
