package snippet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/internal/testutil"
	"github.com/erraggy/oassamples/snippet"
)

func findOperation(t *testing.T, doc *document.Document, method, path string) *document.Operation {
	t.Helper()
	for _, op := range doc.Operations() {
		if op.Method == method && op.Path == path {
			return op
		}
	}
	t.Fatalf("operation %s %s not found", method, path)
	return nil
}

func TestBuildRequestJSONBody(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	op := findOperation(t, doc, "get", "/pets")

	req, err := snippet.BuildRequest(doc, op, snippet.Values{Body: map[string]any{"limit": 5}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "https://eu.petstore.example/v1/pets?limit=20", req.URL)
	assert.Equal(t, snippet.BodyJSON, req.Kind)
	assert.Equal(t, "{\n  \"limit\": 5\n}", req.Body)
	assert.Equal(t, "application/json", req.MediaType)
	assert.Equal(t, []snippet.Param{
		{Name: "Accept", Value: "application/json"},
		{Name: "Content-Type", Value: "application/json"},
	}, req.Headers)
	assert.True(t, req.HTTPS())
	assert.Equal(t, "listPets", req.OperationID)
	assert.Equal(t, "List pets", req.Summary)
}

func TestBuildRequestNoBody(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	op := findOperation(t, doc, "post", "/pets")

	req, err := snippet.BuildRequest(doc, op, snippet.Values{}, nil)
	require.NoError(t, err)

	assert.False(t, req.HasBody())
	assert.True(t, req.MethodRequiresBody())
	_, ok := req.Header("content-type")
	assert.False(t, ok)
}

func TestBuildRequestPathParameters(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)

	t.Run("parameter example", func(t *testing.T) {
		req, err := snippet.BuildRequest(doc, findOperation(t, doc, "get", "/pets/{petId}"), snippet.Values{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://eu.petstore.example/v1/pets/rex", req.URL)
	})

	t.Run("supplied value wins and is escaped", func(t *testing.T) {
		values := snippet.Values{Path: map[string]any{"petId": "a b"}}
		req, err := snippet.BuildRequest(doc, findOperation(t, doc, "get", "/pets/{petId}"), values, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://eu.petstore.example/v1/pets/a%20b", req.URL)
	})

	t.Run("placeholder when nothing is known", func(t *testing.T) {
		req, err := snippet.BuildRequest(doc, findOperation(t, doc, "delete", "/pets/{petId}"), snippet.Values{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://eu.petstore.example/v1/pets/{petId}", req.URL)
		assert.Empty(t, req.Headers)
	})
}

const paramsDoc = `openapi: 3.0.3
info:
  title: Params
  version: 1.0.0
servers:
  - url: /api/
components:
  securitySchemes:
    apiKey:
      type: apiKey
      in: header
      name: X-API-Key
    bearer:
      type: http
      scheme: bearer
security:
  - apiKey: []
paths:
  /items:
    parameters:
      - name: X-Tenant
        in: header
        required: true
        schema:
          type: string
          default: acme
    post:
      parameters:
        - name: verbose
          in: query
          schema:
            type: boolean
        - name: count
          in: query
          required: true
          schema:
            type: integer
        - name: session
          in: cookie
          required: true
          schema:
            type: string
            enum: [abc, def]
      security:
        - bearer: []
      requestBody:
        content:
          multipart/form-data:
            example:
              name: Tom
              tags: [a, b]
      responses:
        '201':
          description: Created
          content:
            application/xml: {}
`

func TestBuildRequestParametersAndAuth(t *testing.T) {
	doc := testutil.LoadYAML(t, paramsDoc)
	op := findOperation(t, doc, "post", "/items")

	values := snippet.Values{
		Body:  map[string]any{"name": "Tom", "tags": []any{"a", "b"}},
		Query: map[string]any{"verbose": true},
	}
	req, err := snippet.BuildRequest(doc, op, values, snippet.Auth{"bearer": "TOKEN"})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/api/items?verbose=true&count=0", req.URL)
	assert.Equal(t, snippet.BodyMultipart, req.Kind)
	assert.Equal(t, []snippet.Param{
		{Name: "name", Value: "Tom"},
		{Name: "tags", Value: "a"},
		{Name: "tags", Value: "b"},
	}, req.Form)
	assert.Equal(t, []snippet.Param{
		{Name: "Accept", Value: "application/xml"},
		{Name: "X-Tenant", Value: "acme"},
		{Name: "Authorization", Value: "Bearer TOKEN"},
		{Name: "Cookie", Value: "session=abc"},
	}, req.Headers)
}

func TestBuildRequestAuthNotSupplied(t *testing.T) {
	doc := testutil.LoadYAML(t, paramsDoc)
	op := findOperation(t, doc, "post", "/items")

	req, err := snippet.BuildRequest(doc, op, snippet.Values{}, snippet.Auth{"apiKey": "k"})
	require.NoError(t, err)
	_, ok := req.Header("Authorization")
	assert.False(t, ok, "operation security overrides the root requirement")
}

func TestBuildRequestFormBody(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	op := findOperation(t, doc, "post", "/pets")

	values := snippet.Values{
		Body:          map[string]any{"name": "Rex & co"},
		BodyMediaType: "application/x-www-form-urlencoded",
	}
	req, err := snippet.BuildRequest(doc, op, values, nil)
	require.NoError(t, err)

	assert.Equal(t, snippet.BodyForm, req.Kind)
	assert.Equal(t, "name=Rex+%26+co", req.Body)
	v, ok := req.Header("Content-Type")
	require.True(t, ok)
	assert.Equal(t, "application/x-www-form-urlencoded", v)
}

func TestBuildRequestRejectsBadFormBody(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	op := findOperation(t, doc, "post", "/pets")

	_, err := snippet.BuildRequest(doc, op, snippet.Values{Body: "plain", BodyMediaType: "application/x-www-form-urlencoded"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "form body must be an object")
}

func TestBuildRequestTextBody(t *testing.T) {
	doc := testutil.LoadYAML(t, testutil.PetstoreYAML)
	op := findOperation(t, doc, "post", "/pets")

	req, err := snippet.BuildRequest(doc, op, snippet.Values{Body: "hello", BodyMediaType: "text/plain"}, nil)
	require.NoError(t, err)
	assert.Equal(t, snippet.BodyText, req.Kind)
	assert.Equal(t, "hello", req.Body)
}

func TestBuildRequestWithoutModel(t *testing.T) {
	_, err := snippet.BuildRequest(nil, &document.Operation{Path: "/x", Method: "get"}, snippet.Values{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no model")
}
