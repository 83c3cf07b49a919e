package snippet

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// quoteStyle selects the escape rules of a target language's double-quoted
// string literal.
type quoteStyle int

const (
	styleC      quoteStyle = iota // Java, C#, JavaScript, Python
	styleKotlin                   // C rules plus "$" templates
	styleSwift                    // \u{XX} escapes
	styleRuby                     // C rules plus "#" interpolation
)

func quoteWith(s string, style quoteStyle) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '$':
			if style == styleKotlin {
				b.WriteString(`\$`)
			} else {
				b.WriteRune(r)
			}
		case '#':
			if style == styleRuby {
				b.WriteString(`\#`)
			} else {
				b.WriteRune(r)
			}
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				if style == styleSwift {
					fmt.Fprintf(&b, `\u{%x}`, r)
				} else {
					fmt.Fprintf(&b, `\u%04x`, r)
				}
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func cQuote(s string) string      { return quoteWith(s, styleC) }
func kotlinQuote(s string) string { return quoteWith(s, styleKotlin) }
func swiftQuote(s string) string  { return quoteWith(s, styleSwift) }
func rubyQuote(s string) string   { return quoteWith(s, styleRuby) }

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// phpQuote wraps s in single quotes, where only \ and ' are special.
func phpQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// goQuote prefers a raw string literal for multi-line text.
func goQuote(s string) string {
	if strings.Contains(s, "\n") && !strings.ContainsAny(s, "`\r") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}

// pyLiteral renders a decoded JSON value as a Python expression.
func pyLiteral(v any) string {
	var b strings.Builder
	writePy(&b, v, "")
	return b.String()
}

func writePy(b *strings.Builder, v any, indent string) {
	next := indent + "    "
	switch t := v.(type) {
	case nil:
		b.WriteString("None")
	case bool:
		if t {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case string:
		b.WriteString(cQuote(t))
	case map[string]any:
		if len(t) == 0 {
			b.WriteString("{}")
			return
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b.WriteString("{\n")
		for _, k := range keys {
			b.WriteString(next)
			b.WriteString(cQuote(k))
			b.WriteString(": ")
			writePy(b, t[k], next)
			b.WriteString(",\n")
		}
		b.WriteString(indent)
		b.WriteString("}")
	case []any:
		if len(t) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for _, item := range t {
			b.WriteString(next)
			writePy(b, item, next)
			b.WriteString(",\n")
		}
		b.WriteString(indent)
		b.WriteString("]")
	default:
		b.WriteString(stringify(t))
	}
}

// rubyMethod maps an HTTP method to its Net::HTTP request class.
func rubyMethod(method string) string {
	if method == "" {
		return ""
	}
	m := strings.ToLower(method)
	return strings.ToUpper(m[:1]) + m[1:]
}
