package mcpserver

import (
	"context"
	"slices"

	"github.com/erraggy/oassamples/assembler"
	"github.com/erraggy/oassamples/snippet"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type languagesInput struct{}

type languageInfo struct {
	Target  string `json:"target"`
	Lang    string `json:"lang"`
	Label   string `json:"label"`
	Default bool   `json:"default,omitempty"`
}

type languagesOutput struct {
	Languages []languageInfo `json:"languages"`
}

func handleLanguages(_ context.Context, _ *mcp.CallToolRequest, _ languagesInput) (*mcp.CallToolResult, languagesOutput, error) {
	defaults := assembler.DefaultLanguages()
	targets := snippet.NewRegistry().Targets()

	output := languagesOutput{Languages: makeSlice[languageInfo](len(targets))}
	for _, target := range targets {
		output.Languages = append(output.Languages, languageInfo{
			Target:  target,
			Lang:    assembler.HighlightTag(target),
			Label:   assembler.Label(target),
			Default: slices.Contains(defaults, target),
		})
	}
	return nil, output, nil
}
