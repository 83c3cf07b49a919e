// Package jsonpath provides a minimal JSONPath implementation over yaml.Node
// trees for OpenAPI Overlay support.
//
// Supported syntax (a subset of RFC 9535):
//   - $ (root)
//   - .field or ['field'] (child access)
//   - .* or [*] (wildcard: all children)
//   - [0] (array index, negative counts from the end)
//   - [?@.field==value] (simple comparison filter: ==, !=, <, <=, >, >=)
//
// Matches are returned in document order, so evaluation is deterministic.
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed JSONPath expression.
type Path struct {
	raw      string
	segments []segment
}

// String returns the original expression.
func (p *Path) String() string {
	return p.raw
}

type segmentKind int

const (
	kindChild segmentKind = iota
	kindWildcard
	kindIndex
	kindFilter
)

type segment struct {
	kind   segmentKind
	key    string
	index  int
	filter *filter
}

// Parse parses a JSONPath expression.
//
//	Parse("$.info")
//	Parse("$.paths['/users/{id}'].get")
//	Parse("$.paths.*[?@.x-internal==true]")
func Parse(expr string) (*Path, error) {
	if expr == "" {
		return nil, fmt.Errorf("jsonpath: empty expression")
	}
	s := &scanner{input: expr}
	if !s.consume('$') {
		return nil, fmt.Errorf("jsonpath: expression must start with '$'")
	}

	var segments []segment
	for !s.done() {
		var seg segment
		var err error
		switch ch := s.next(); ch {
		case '.':
			seg, err = s.dotSegment()
		case '[':
			seg, err = s.bracketSegment()
		default:
			err = fmt.Errorf("jsonpath: unexpected character %q at position %d", ch, s.pos-1)
		}
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return &Path{raw: expr, segments: segments}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) *Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

type scanner struct {
	input string
	pos   int
}

func (s *scanner) done() bool { return s.pos >= len(s.input) }

func (s *scanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) next() byte {
	ch := s.peek()
	if !s.done() {
		s.pos++
	}
	return ch
}

func (s *scanner) consume(ch byte) bool {
	if !s.done() && s.input[s.pos] == ch {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) skipSpace() {
	for !s.done() && (s.input[s.pos] == ' ' || s.input[s.pos] == '\t') {
		s.pos++
	}
}

func (s *scanner) dotSegment() (segment, error) {
	if s.consume('*') {
		return segment{kind: kindWildcard}, nil
	}
	key := s.identifier()
	if key == "" {
		return segment{}, fmt.Errorf("jsonpath: expected identifier after '.' at position %d", s.pos)
	}
	return segment{kind: kindChild, key: key}, nil
}

func (s *scanner) bracketSegment() (segment, error) {
	switch ch := s.peek(); {
	case ch == '*':
		s.pos++
		if !s.consume(']') {
			return segment{}, fmt.Errorf("jsonpath: expected ']' after '[*'")
		}
		return segment{kind: kindWildcard}, nil

	case ch == '?':
		s.pos++
		f, err := s.filterExpr()
		if err != nil {
			return segment{}, err
		}
		return segment{kind: kindFilter, filter: f}, nil

	case ch == '\'' || ch == '"':
		s.pos++
		key, err := s.quoted(ch)
		if err != nil {
			return segment{}, err
		}
		if !s.consume(']') {
			return segment{}, fmt.Errorf("jsonpath: expected ']' after quoted key")
		}
		return segment{kind: kindChild, key: key}, nil

	case ch == '-' || isDigit(ch):
		num := s.number()
		if !s.consume(']') {
			return segment{}, fmt.Errorf("jsonpath: expected ']' after index")
		}
		idx, err := strconv.Atoi(num)
		if err != nil {
			return segment{}, fmt.Errorf("jsonpath: invalid index %q: %w", num, err)
		}
		return segment{kind: kindIndex, index: idx}, nil

	default:
		return segment{}, fmt.Errorf("jsonpath: unexpected character %q in bracket at position %d", ch, s.pos)
	}
}

func (s *scanner) filterExpr() (*filter, error) {
	paren := s.consume('(')
	s.consume('@')
	if !s.consume('.') {
		return nil, fmt.Errorf("jsonpath: expected '@.' in filter expression at position %d", s.pos)
	}
	field := s.identifier()
	if field == "" {
		return nil, fmt.Errorf("jsonpath: expected field name in filter at position %d", s.pos)
	}

	s.skipSpace()
	op := s.operator()
	if op == "" {
		return nil, fmt.Errorf("jsonpath: expected operator in filter at position %d", s.pos)
	}
	s.skipSpace()

	value, err := s.literal()
	if err != nil {
		return nil, err
	}
	if paren {
		s.skipSpace()
		if !s.consume(')') {
			return nil, fmt.Errorf("jsonpath: expected ')' in filter expression at position %d", s.pos)
		}
	}
	if !s.consume(']') {
		return nil, fmt.Errorf("jsonpath: expected ']' after filter expression")
	}
	return &filter{field: field, op: op, value: value}, nil
}

func (s *scanner) identifier() string {
	start := s.pos
	for !s.done() && isIdentChar(s.input[s.pos]) {
		s.pos++
	}
	return s.input[start:s.pos]
}

func (s *scanner) quoted(quote byte) (string, error) {
	var b strings.Builder
	for !s.done() {
		ch := s.next()
		switch {
		case ch == quote:
			return b.String(), nil
		case ch == '\\' && !s.done():
			switch esc := s.next(); esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(ch)
		}
	}
	return "", fmt.Errorf("jsonpath: unterminated string at position %d", s.pos)
}

func (s *scanner) number() string {
	start := s.pos
	s.consume('-')
	for !s.done() && (isDigit(s.input[s.pos]) || s.input[s.pos] == '.') {
		s.pos++
	}
	return s.input[start:s.pos]
}

func (s *scanner) operator() string {
	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		if strings.HasPrefix(s.input[s.pos:], op) {
			s.pos += len(op)
			return op
		}
	}
	return ""
}

func (s *scanner) literal() (any, error) {
	rest := s.input[s.pos:]
	switch ch := s.peek(); {
	case ch == '\'' || ch == '"':
		s.pos++
		return s.quoted(ch)
	case strings.HasPrefix(rest, "true"):
		s.pos += 4
		return true, nil
	case strings.HasPrefix(rest, "false"):
		s.pos += 5
		return false, nil
	case strings.HasPrefix(rest, "null"):
		s.pos += 4
		return nil, nil
	case ch == '-' || isDigit(ch):
		num := s.number()
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return nil, fmt.Errorf("jsonpath: invalid number %q: %w", num, err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("jsonpath: unexpected character %q when parsing value at position %d", ch, s.pos)
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// isIdentChar allows hyphens so x-* extensions work with dot access.
func isIdentChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		isDigit(ch) ||
		ch == '_' || ch == '-' || ch == '$'
}
