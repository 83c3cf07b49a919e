package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOperationMethod(t *testing.T) {
	for _, m := range []string{"get", "put", "post", "delete", "options", "head", "patch", "trace", "query"} {
		assert.True(t, IsOperationMethod(m), m)
	}
	for _, k := range []string{"GET", "parameters", "summary", "servers", "x-internal", "$ref", ""} {
		assert.False(t, IsOperationMethod(k), k)
	}
}

func TestIsSuccessStatusCode(t *testing.T) {
	tests := map[string]bool{
		"200":     true,
		"201":     true,
		"2XX":     true,
		"204":     true,
		"300":     false,
		"404":     false,
		"default": false,
		"2X":      false,
		"2a0":     false,
	}
	for code, want := range tests {
		assert.Equal(t, want, IsSuccessStatusCode(code), code)
	}
}

func TestMediaTypeClassification(t *testing.T) {
	assert.Equal(t, "application/json", BaseMediaType("application/json; charset=utf-8"))
	assert.Equal(t, "application/json", BaseMediaType(" Application/JSON "))

	assert.True(t, IsJSONMediaType("application/json"))
	assert.True(t, IsJSONMediaType("application/merge-patch+json"))
	assert.True(t, IsJSONMediaType("*/*"))
	assert.False(t, IsJSONMediaType("application/xml"))

	assert.True(t, IsFormMediaType("application/x-www-form-urlencoded"))
	assert.True(t, IsMultipartMediaType("multipart/form-data; boundary=xyz"))
	assert.False(t, IsMultipartMediaType("application/json"))

	assert.True(t, IsTextMediaType("text/plain"))
	assert.True(t, IsTextMediaType("application/atom+xml"))
	assert.False(t, IsTextMediaType("application/octet-stream"))
}
