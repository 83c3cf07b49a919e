package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/splicer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type operationsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OAS document to inspect"`
	Offset int       `json:"offset,omitempty" jsonschema:"Number of operations to skip"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of operations to return"`
}

type operationSummary struct {
	Method          string   `json:"method"`
	Path            string   `json:"path"`
	OperationID     string   `json:"operation_id,omitempty"`
	MediaTypes      []string `json:"media_types,omitempty"`
	HasExample      bool     `json:"has_example"`
	ExistingSamples int      `json:"existing_samples,omitempty"`
}

type operationsOutput struct {
	Total      int                `json:"total"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
	Summary    string             `json:"summary"`
}

func handleOperations(ctx context.Context, _ *mcp.CallToolRequest, input operationsInput) (*mcp.CallToolResult, operationsOutput, error) {
	doc, err := input.Spec.load(ctx)
	if err != nil {
		return errResult(err), operationsOutput{}, nil
	}

	all := doc.Operations()
	page := paginate(all, input.Offset, input.Limit)

	output := operationsOutput{
		Total:      len(all),
		Returned:   len(page),
		Operations: makeSlice[operationSummary](len(page)),
	}
	for _, op := range page {
		output.Operations = append(output.Operations, summarizeOperation(op))
	}
	output.Summary = fmt.Sprintf("Showing %d of %s.", len(page), formatCount(len(all), "operation"))

	return nil, output, nil
}

func summarizeOperation(op *document.Operation) operationSummary {
	s := operationSummary{
		Method:      op.Method,
		Path:        op.Path,
		OperationID: op.OperationID,
		MediaTypes:  op.RequestMediaTypes(),
	}
	for _, set := range op.RequestBodyExamples() {
		if len(set.Examples) > 0 {
			s.HasExample = true
			break
		}
	}
	if existing := document.MappingValue(op.Node, splicer.ExtensionKey); existing != nil {
		s.ExistingSamples = len(existing.Content)
	}
	return s
}
