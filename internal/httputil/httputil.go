// Package httputil provides HTTP method and media type helpers shared by the
// operation walk and the request shaper.
package httputil

import (
	"mime"
	"strings"
)

// HTTP Method Constants, lower-case as they appear as path item keys.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
	MethodQuery   = "query" // OAS 3.2+ only
)

// operationMethods is the set of path item keys that hold operations.
var operationMethods = map[string]bool{
	MethodGet:     true,
	MethodPut:     true,
	MethodPost:    true,
	MethodDelete:  true,
	MethodOptions: true,
	MethodHead:    true,
	MethodPatch:   true,
	MethodTrace:   true,
	MethodQuery:   true,
}

// IsOperationMethod reports whether a path item key names an operation.
// Keys are matched case-sensitively, as the OpenAPI specification requires.
func IsOperationMethod(key string) bool {
	return operationMethods[key]
}

// IsSuccessStatusCode reports whether a response key is a 2xx code or the 2XX wildcard.
func IsSuccessStatusCode(code string) bool {
	if len(code) != 3 || code[0] != '2' {
		return false
	}
	if code[1] == 'X' && code[2] == 'X' {
		return true
	}
	return code[1] >= '0' && code[1] <= '9' && code[2] >= '0' && code[2] <= '9'
}

// BaseMediaType strips parameters (charset, boundary) and lower-cases a media type.
// Invalid media types are returned trimmed and lower-cased.
func BaseMediaType(mediaType string) string {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mediaType))
	}
	return mt
}

// IsJSONMediaType reports whether a media type carries JSON, including
// structured syntax suffixes such as application/problem+json.
func IsJSONMediaType(mediaType string) bool {
	mt := BaseMediaType(mediaType)
	return mt == "application/json" || strings.HasSuffix(mt, "+json") || mt == "*/*"
}

// IsFormMediaType reports whether a media type is URL-encoded form data.
func IsFormMediaType(mediaType string) bool {
	return BaseMediaType(mediaType) == "application/x-www-form-urlencoded"
}

// IsMultipartMediaType reports whether a media type is a multipart body.
func IsMultipartMediaType(mediaType string) bool {
	return strings.HasPrefix(BaseMediaType(mediaType), "multipart/")
}

// IsTextMediaType reports whether a media type is plain text-like (text/*, XML).
func IsTextMediaType(mediaType string) bool {
	mt := BaseMediaType(mediaType)
	return strings.HasPrefix(mt, "text/") || mt == "application/xml" || strings.HasSuffix(mt, "+xml")
}
