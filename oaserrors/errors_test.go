package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "api.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   errors.New("underlying error"),
		}
		if got := err.Error(); got != "parse error in api.yaml at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", got)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if err.Unwrap() != cause {
			t.Error("Unwrap should return cause")
		}
	})
}

func TestDialectError(t *testing.T) {
	err := &DialectError{Path: "petstore.yaml", Dialect: "swagger", Version: "2.0"}

	want := "unsupported dialect: swagger 2.0 in petstore.yaml (OpenAPI 3.0 or later is required)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnsupportedDialect) {
		t.Error("DialectError should match ErrUnsupportedDialect")
	}
	if errors.Is(err, ErrParse) {
		t.Error("DialectError should not match ErrParse")
	}
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("template failed")
	err := &GenerationError{Path: "/pets", Method: "get", Language: "python", Cause: cause}

	if got := err.Error(); got != "generation error for get /pets (python): template failed" {
		t.Errorf("unexpected error message: %s", got)
	}
	if !errors.Is(err, ErrGeneration) {
		t.Error("GenerationError should match ErrGeneration")
	}
	if !errors.Is(err, cause) {
		t.Error("GenerationError should unwrap to its cause")
	}
}

func TestSpliceError(t *testing.T) {
	tests := []struct {
		name string
		err  *SpliceError
		want string
	}{
		{
			name: "missing path",
			err:  &SpliceError{Path: "/pets", Method: "get", MissingPath: true},
			want: `splice error: path "/pets" not found in document (snippets for get)`,
		},
		{
			name: "missing method",
			err:  &SpliceError{Path: "/pets", Method: "post"},
			want: `splice error: operation post "/pets" not found in document`,
		},
		{
			name: "shared node",
			err:  &SpliceError{Path: "/animals", Method: "get", SharedWith: "/pets"},
			want: `splice error: operation get "/animals" is the same node as get "/pets"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrSplice) {
				t.Error("SpliceError should match ErrSplice")
			}
		})
	}
}

func TestWriteAndConfigErrors(t *testing.T) {
	writeErr := &WriteError{Destination: "out.json", Cause: errors.New("disk full")}
	if got := writeErr.Error(); got != "write error for out.json: disk full" {
		t.Errorf("unexpected error message: %s", got)
	}
	if !errors.Is(writeErr, ErrWrite) {
		t.Error("WriteError should match ErrWrite")
	}

	cfgErr := &ConfigError{Option: "languages", Value: "", Message: "must not be blank"}
	if got := cfgErr.Error(); got != "configuration error for languages (value: ): must not be blank" {
		t.Errorf("unexpected error message: %s", got)
	}
	if !errors.Is(cfgErr, ErrConfig) {
		t.Error("ConfigError should match ErrConfig")
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	base := &ValidationError{Path: "api.yaml", Message: "paths must be an object"}
	wrapped := fmt.Errorf("loader: %w", base)

	var target *ValidationError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should find ValidationError through wrapping")
	}
	if target.Path != "api.yaml" {
		t.Errorf("Path = %q, want api.yaml", target.Path)
	}
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("wrapped ValidationError should match ErrValidation")
	}
}
