package snippet

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/internal/httputil"
)

// DefaultServerURL is used when a document declares no servers, or only
// relative ones.
const DefaultServerURL = "https://example.com"

// BodyKind classifies how a request body is encoded.
type BodyKind string

const (
	// BodyNone means the request carries no body.
	BodyNone BodyKind = ""
	// BodyJSON is a JSON document.
	BodyJSON BodyKind = "json"
	// BodyForm is an application/x-www-form-urlencoded body.
	BodyForm BodyKind = "form"
	// BodyMultipart is a multipart/form-data body.
	BodyMultipart BodyKind = "multipart"
	// BodyText is any other body, sent verbatim.
	BodyText BodyKind = "text"
)

// Param is a name/value pair in declared order.
type Param struct {
	Name  string
	Value string
}

// Request is the language-neutral shape of an HTTP call that renderers turn
// into source code.
type Request struct {
	// Method is the upper-case HTTP method.
	Method string
	// URL is the absolute request URL, query string included.
	URL string
	// Headers are sent in order. Content-Type is omitted for multipart bodies.
	Headers []Param
	// MediaType is the request body media type, or "".
	MediaType string
	// Kind says how Body is encoded.
	Kind BodyKind
	// Body is the encoded body text.
	Body string
	// JSON is the decoded body value when Kind is BodyJSON.
	JSON any
	// Form holds the fields of form and multipart bodies, sorted by name.
	Form []Param
	// OperationID and Summary describe the operation, when declared.
	OperationID string
	Summary     string
}

// HasBody reports whether the request carries a body.
func (r *Request) HasBody() bool {
	return r.Kind != BodyNone
}

// MethodRequiresBody reports whether clients that insist on a body for
// POST, PUT and PATCH need an empty one.
func (r *Request) MethodRequiresBody() bool {
	switch r.Method {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

// HTTPS reports whether the URL uses the https scheme.
func (r *Request) HTTPS() bool {
	return strings.HasPrefix(strings.ToLower(r.URL), "https://")
}

// Header returns the value of the named header, matched case-insensitively.
func (r *Request) Header(name string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// BuildRequest shapes the HTTP request for op from the dereferenced model and
// the supplied values. The operation must have a model.
func BuildRequest(doc *document.Document, op *document.Operation, values Values, auth Auth) (*Request, error) {
	if op == nil {
		return nil, fmt.Errorf("snippet: nil operation")
	}
	if op.Model == nil {
		return nil, fmt.Errorf("snippet: operation %s %s has no model", op.Method, op.Path)
	}

	req := &Request{
		Method:      strings.ToUpper(op.Method),
		OperationID: op.OperationID,
		Summary:     op.Model.Summary,
	}

	params := mergeParameters(op.PathItem, op.Model)

	path := op.Path
	var query, headers, cookies []Param
	for _, p := range params {
		switch p.In {
		case openapi3.ParameterInPath:
			if v, ok := paramValue(p, values.Path); ok {
				path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(v))
			}
		case openapi3.ParameterInQuery:
			if v, ok := requiredOrSupplied(p, values.Query); ok {
				query = append(query, Param{Name: p.Name, Value: v})
			}
		case openapi3.ParameterInHeader:
			if v, ok := requiredOrSupplied(p, values.Header); ok {
				headers = append(headers, Param{Name: p.Name, Value: v})
			}
		case openapi3.ParameterInCookie:
			if v, ok := requiredOrSupplied(p, values.Cookie); ok {
				cookies = append(cookies, Param{Name: p.Name, Value: v})
			}
		}
	}

	authHeaders, authQuery, authCookies := credentials(doc, op, auth)
	headers = append(headers, authHeaders...)
	query = append(query, authQuery...)
	cookies = append(cookies, authCookies...)

	req.URL = serverURL(doc, op) + path
	if len(query) > 0 {
		parts := make([]string, 0, len(query))
		for _, q := range query {
			parts = append(parts, url.QueryEscape(q.Name)+"="+url.QueryEscape(q.Value))
		}
		req.URL += "?" + strings.Join(parts, "&")
	}

	if accept := op.ResponseMediaType(); accept != "" {
		req.Headers = append(req.Headers, Param{Name: "Accept", Value: accept})
	}

	if values.Body != nil {
		mediaType := values.BodyMediaType
		if mediaType == "" {
			if declared := op.RequestMediaTypes(); len(declared) > 0 {
				mediaType = declared[0]
			} else {
				mediaType = "application/json"
			}
		}
		if err := encodeBody(req, mediaType, values.Body); err != nil {
			return nil, fmt.Errorf("snippet: encoding %s body: %w", mediaType, err)
		}
		if req.Kind != BodyMultipart {
			req.Headers = append(req.Headers, Param{Name: "Content-Type", Value: mediaType})
		}
	}

	req.Headers = append(req.Headers, headers...)
	if len(cookies) > 0 {
		parts := make([]string, 0, len(cookies))
		for _, c := range cookies {
			parts = append(parts, c.Name+"="+c.Value)
		}
		req.Headers = append(req.Headers, Param{Name: "Cookie", Value: strings.Join(parts, "; ")})
	}

	return req, nil
}

// mergeParameters combines path item and operation parameters. Operation
// parameters override path item parameters with the same name and location.
func mergeParameters(item *openapi3.PathItem, op *openapi3.Operation) []*openapi3.Parameter {
	var out []*openapi3.Parameter
	index := make(map[string]int)
	add := func(refs openapi3.Parameters) {
		for _, ref := range refs {
			if ref == nil || ref.Value == nil {
				continue
			}
			p := ref.Value
			key := p.In + "\x00" + p.Name
			if i, ok := index[key]; ok {
				out[i] = p
				continue
			}
			index[key] = len(out)
			out = append(out, p)
		}
	}
	if item != nil {
		add(item.Parameters)
	}
	add(op.Parameters)
	return out
}

func requiredOrSupplied(p *openapi3.Parameter, supplied map[string]any) (string, bool) {
	if v, ok := supplied[p.Name]; ok {
		return stringify(v), true
	}
	if !p.Required {
		return "", false
	}
	if v, ok := paramValue(p, nil); ok {
		return v, true
	}
	return placeholder(p), true
}

// paramValue resolves a parameter value from the supplied map, then the
// parameter example, then the schema example, default and first enum value.
func paramValue(p *openapi3.Parameter, supplied map[string]any) (string, bool) {
	if v, ok := supplied[p.Name]; ok {
		return stringify(v), true
	}
	if p.Example != nil {
		return stringify(p.Example), true
	}
	for _, name := range sortedKeys(p.Examples) {
		if ex := p.Examples[name]; ex != nil && ex.Value != nil && ex.Value.Value != nil {
			return stringify(ex.Value.Value), true
		}
	}
	if p.Schema != nil && p.Schema.Value != nil {
		s := p.Schema.Value
		switch {
		case s.Example != nil:
			return stringify(s.Example), true
		case s.Default != nil:
			return stringify(s.Default), true
		case len(s.Enum) > 0:
			return stringify(s.Enum[0]), true
		}
	}
	return "", false
}

func placeholder(p *openapi3.Parameter) string {
	if p.Schema == nil || p.Schema.Value == nil || p.Schema.Value.Type == nil {
		return "string"
	}
	types := p.Schema.Value.Type.Slice()
	if len(types) == 0 {
		return "string"
	}
	switch types[0] {
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return "0"
	case openapi3.TypeBoolean:
		return "true"
	}
	return "string"
}

// serverURL returns the base URL from the closest servers declaration, with
// variables replaced by their defaults.
func serverURL(doc *document.Document, op *document.Operation) string {
	var servers openapi3.Servers
	switch {
	case op.Model.Servers != nil && len(*op.Model.Servers) > 0:
		servers = *op.Model.Servers
	case op.PathItem != nil && len(op.PathItem.Servers) > 0:
		servers = op.PathItem.Servers
	case doc != nil && doc.Model != nil:
		servers = doc.Model.Servers
	}
	if len(servers) == 0 || servers[0] == nil {
		return DefaultServerURL
	}

	s := servers[0]
	base := s.URL
	for name, v := range s.Variables {
		if v != nil {
			base = strings.ReplaceAll(base, "{"+name+"}", v.Default)
		}
	}
	base = strings.TrimRight(base, "/")
	if !strings.Contains(base, "://") {
		if base != "" && !strings.HasPrefix(base, "/") {
			base = "/" + base
		}
		base = DefaultServerURL + base
	}
	return base
}

// credentials applies auth values for the security schemes that the
// operation's first satisfiable requirement names.
func credentials(doc *document.Document, op *document.Operation, auth Auth) (headers, query, cookies []Param) {
	if len(auth) == 0 || doc == nil {
		return nil, nil, nil
	}
	security := document.MappingValue(op.Node, "security")
	if security == nil {
		security = document.MappingValue(doc.RootMapping(), "security")
	}
	if security == nil || security.Kind != yaml.SequenceNode {
		return nil, nil, nil
	}
	schemes := document.MappingValue(document.MappingValue(doc.RootMapping(), "components"), "securitySchemes")

	for _, requirement := range security.Content {
		names := document.MappingKeys(requirement)
		if len(names) == 0 || !allSupplied(names, auth) {
			continue
		}
		for _, name := range names {
			scheme := doc.ResolveLocalRef(document.MappingValue(schemes, name))
			if scheme == nil {
				continue
			}
			value := auth[name]
			switch scalar(scheme, "type") {
			case "apiKey":
				p := Param{Name: scalar(scheme, "name"), Value: value}
				switch scalar(scheme, "in") {
				case "header":
					headers = append(headers, p)
				case "query":
					query = append(query, p)
				case "cookie":
					cookies = append(cookies, p)
				}
			case "http":
				switch strings.ToLower(scalar(scheme, "scheme")) {
				case "basic":
					headers = append(headers, Param{Name: "Authorization", Value: "Basic " + value})
				default:
					headers = append(headers, Param{Name: "Authorization", Value: "Bearer " + value})
				}
			case "oauth2", "openIdConnect":
				headers = append(headers, Param{Name: "Authorization", Value: "Bearer " + value})
			}
		}
		return headers, query, cookies
	}
	return nil, nil, nil
}

func allSupplied(names []string, auth Auth) bool {
	for _, n := range names {
		if _, ok := auth[n]; !ok {
			return false
		}
	}
	return true
}

func scalar(node *yaml.Node, key string) string {
	if v := document.MappingValue(node, key); v != nil && v.Kind == yaml.ScalarNode {
		return v.Value
	}
	return ""
}

func encodeBody(req *Request, mediaType string, body any) error {
	req.MediaType = mediaType
	switch {
	case httputil.IsJSONMediaType(mediaType):
		data, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return err
		}
		req.Kind = BodyJSON
		req.Body = string(data)
		req.JSON = body
	case httputil.IsFormMediaType(mediaType), httputil.IsMultipartMediaType(mediaType):
		fields, err := formFields(body)
		if err != nil {
			return err
		}
		req.Form = fields
		if httputil.IsMultipartMediaType(mediaType) {
			req.Kind = BodyMultipart
			return nil
		}
		vals := url.Values{}
		for _, f := range fields {
			vals.Add(f.Name, f.Value)
		}
		req.Kind = BodyForm
		req.Body = vals.Encode()
	default:
		req.Kind = BodyText
		if s, ok := body.(string); ok {
			req.Body = s
			return nil
		}
		data, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return err
		}
		req.Body = string(data)
	}
	return nil
}

func formFields(body any) ([]Param, error) {
	m, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("form body must be an object, got %T", body)
	}
	fields := make([]Param, 0, len(m))
	for _, k := range sortedKeys(m) {
		if list, ok := m[k].([]any); ok {
			for _, item := range list {
				fields = append(fields, Param{Name: k, Value: stringify(item)})
			}
			continue
		}
		fields = append(fields, Param{Name: k, Value: stringify(m[k])})
	}
	return fields, nil
}

// stringify renders a scalar example value the way it appears on the wire.
// Composite values are rendered as compact JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
