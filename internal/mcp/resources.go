package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/harscope/internal/mcp/tools"
	"github.com/usestring/harscope/internal/rules"
)

// Resource URI scheme: har://
// Supported URIs:
//   har://entry/{index}
//   har://rules/{preset}
//   har://rules-schema

const resourceScheme = "har://"

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "har://entry/{index}",
		Name:        "HAR Entry",
		Description: "Full archive entry with headers and complete request/response bodies. Use har_get_entry first; it links here when a body was truncated.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.8,
		},
	}, s.handleResourceEntry)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "har://rules/{preset}",
		Name:        "Report Preset",
		Description: "Builtin report rule set (course-plan, academic-status). Shows which URL filters and extractions the CLI report runs.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceRules)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         "har://rules-schema",
		Name:        "Rule Set Schema",
		Description: "JSON Schema for report rule files accepted by harscope report --rules.",
		MIMEType:    tools.MimeJSON,
	}, s.handleResourceRulesSchema)
}

// Resource handlers

func (s *Server) handleResourceEntry(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	index, err := strconv.Atoi(params["index"])
	if err != nil {
		return nil, tools.ErrInvalidInput(fmt.Sprintf("entry index must be an integer: %q", params["index"]))
	}
	entry, err := s.deps.Entry(index)
	if err != nil {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return toResourceResult(req.Params.URI, tools.BuildEntryDetail(index, entry, 0, true))
}

func (s *Server) handleResourceRules(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	rs, err := rules.Builtin(params["preset"])
	if err != nil {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	return toResourceResult(req.Params.URI, rs)
}

func (s *Server) handleResourceRulesSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	return toResourceResult(req.Params.URI, rules.Schema())
}

// Helper functions

// parseResourceURI extracts parameters from a har:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected har://")
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	params := make(map[string]string)

	switch resourceType := parts[0]; resourceType {
	case "entry":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("entry URI requires an index")
		}
		params["index"] = parts[1]

	case "rules":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("rules URI requires a preset name")
		}
		params["preset"] = parts[1]

	case "":
		return nil, tools.ErrInvalidInput("empty resource path")

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
