// Package testutil provides fixtures and helpers shared by unit tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/loader"
	"github.com/erraggy/oassamples/snippet"
)

// PetstoreYAML is an OpenAPI 3.0 document with two paths and four operations.
// It covers request body examples (inline, examples map, $ref'd), path item
// level keys that are not operations, and extensions that must survive output.
const PetstoreYAML = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
x-logo: keep-me
servers:
  - url: https://{region}.petstore.example/v1
    variables:
      region:
        default: eu
paths:
  /pets:
    summary: Pets collection
    x-owner: pets-team
    get:
      operationId: listPets
      summary: List pets
      parameters:
        - name: limit
          in: query
          required: true
          schema:
            type: integer
            example: 20
      requestBody:
        content:
          application/json:
            example:
              limit: 5
      responses:
        '200':
          description: A list of pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
    post:
      operationId: createPet
      x-internal-note: untouched
      requestBody:
        $ref: '#/components/requestBodies/NewPet'
      responses:
        '201':
          description: Created
  /pets/{petId}:
    get:
      operationId: showPetById
      parameters:
        - name: petId
          in: path
          required: true
          example: rex
          schema:
            type: string
      responses:
        '200':
          description: A pet
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
    delete:
      operationId: deletePet
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
      responses:
        '204':
          description: Deleted
components:
  schemas:
    Pet:
      type: object
      properties:
        id:
          type: integer
        name:
          type: string
  requestBodies:
    NewPet:
      content:
        application/json:
          examples:
            cat:
              value:
                name: Tom
            dog:
              $ref: '#/components/examples/Dog'
        application/x-www-form-urlencoded:
          example:
            name: Rex
  examples:
    Dog:
      value:
        name: Rex
`

// PetstoreJSON is a small OpenAPI 3.0 document in JSON form.
const PetstoreJSON = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Petstore",
    "version": "1.0.0"
  },
  "paths": {
    "/pets": {
      "post": {
        "operationId": "createPet",
        "requestBody": {
          "content": {
            "application/json": {
              "example": {
                "name": "Tom",
                "age": 3
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Created"
          }
        }
      },
      "get": {
        "operationId": "listPets",
        "responses": {
          "200": {
            "description": "OK"
          }
        }
      }
    }
  }
}
`

// SwaggerYAML is a Swagger 2.0 document, which must be rejected.
const SwaggerYAML = `swagger: "2.0"
info:
  title: Legacy
  version: 1.0.0
paths:
  /pets:
    get:
      responses:
        '200':
          description: OK
`

// LoadYAML loads src through the loader and fails the test on error.
func LoadYAML(t testing.TB, src string) *document.Document {
	t.Helper()

	doc, err := loader.Load(context.Background(), loader.WithBytes([]byte(src)))
	if err != nil {
		t.Fatalf("failed to load document: %v", err)
	}
	return doc
}

// WriteTempFile writes content to name inside a per-test temporary directory
// and returns the full path.
func WriteTempFile(t testing.TB, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// Call records one generator invocation.
type Call struct {
	Path   string
	Method string
	Target string
	Values snippet.Values
}

// RecordingGenerator is a snippet.Generator that records its calls. Respond
// decides the outcome; when nil every call returns "<target> <method> <path>".
// It is safe for concurrent use.
type RecordingGenerator struct {
	Respond func(op *document.Operation, target string) (string, error)

	mu    sync.Mutex
	calls []Call
}

// Generate implements snippet.Generator.
func (g *RecordingGenerator) Generate(_ context.Context, _ *document.Document, op *document.Operation, values snippet.Values, _ snippet.Auth, target string) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, Call{Path: op.Path, Method: op.Method, Target: target, Values: values})
	g.mu.Unlock()

	if g.Respond != nil {
		return g.Respond(op, target)
	}
	return target + " " + op.Method + " " + op.Path, nil
}

// Calls returns a copy of the recorded calls.
func (g *RecordingGenerator) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}
