package overlay_test

import (
	"context"
	"fmt"
	"log"

	"github.com/erraggy/oassamples/loader"
	"github.com/erraggy/oassamples/overlay"
)

// Example applies an overlay whose targets use a wildcard and a filter.
func Example() {
	doc, err := loader.Load(context.Background(), loader.WithBytes([]byte(`openapi: 3.0.3
info:
  title: Inventory
  version: 1.0.0
paths:
  /items:
    get:
      operationId: listItems
      responses:
        "200":
          description: ok
  /items/{id}:
    get:
      operationId: getItem
      parameters:
        - {name: id, in: path, required: true, schema: {type: string}}
      responses:
        "200":
          description: ok
      x-internal: true
`)))
	if err != nil {
		log.Fatal(err)
	}

	result, err := overlay.Apply(doc, &overlay.Overlay{
		Version: overlay.SupportedVersion,
		Info:    overlay.Info{Title: "Publish", Version: "1.0.0"},
		Actions: []overlay.Action{
			{Target: "$.paths.*.get", Update: map[string]any{"x-stability": "beta"}},
			{Target: "$.paths.*[?@.x-internal==true]", Remove: true},
			{Target: "$.paths['/orders']", Remove: true},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range result.Changes {
		fmt.Printf("%s %s: %d\n", c.Operation, c.Target, c.MatchCount)
	}
	fmt.Println("skipped:", result.ActionsSkipped)
	for _, op := range doc.Operations() {
		fmt.Println(op.Method, op.Path)
	}
	// Output:
	// update $.paths.*.get: 2
	// remove $.paths.*[?@.x-internal==true]: 1
	// skipped: 1
	// get /items
}
