package mcpsrv

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/harscope/internal/config"
)

// serverConfig holds configuration built from options.
type serverConfig struct {
	config  *config.Config
	version string

	// Logging overrides
	logLevel         string
	logFile          string
	skipLoggingSetup bool

	// Extension toggles
	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// Registration callbacks keep the handlers' type parameters
	toolRegistrations     []func(*mcp.Server)
	promptRegistrations   []func(*mcp.Server)
	resourceRegistrations []func(*mcp.Server)

	// Run once Deps exist
	deferredToolRegistrations []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile sets the log file path.
// If empty, logs are written to stderr only.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithConfig replaces the configuration otherwise loaded from the
// environment.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		cfg.config = c
	}
}

// WithVersion sets the version reported to MCP clients.
func WithVersion(version string) Option {
	return func(cfg *serverConfig) {
		cfg.version = version
	}
}

// WithExistingLogging keeps the process-wide slog default as is.
// Use this when the caller has already configured logging.
func WithExistingLogging() Option {
	return func(cfg *serverConfig) {
		cfg.skipLoggingSetup = true
	}
}

// WithoutBuiltinTools disables all builtin harscope tools.
// Use this if you want to register only your own tools.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables all builtin harscope prompts.
// Use this if you want to register only your own prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a tool whose handler needs nothing but its input, for
// example a helper that decodes portal form fields pasted by the agent:
//
//	type DecodeFormInput struct {
//	    Body string `json:"body"`
//	}
//
//	type DecodeFormOutput struct {
//	    Fields map[string]string `json:"fields"`
//	}
//
//	func decodeForm(ctx context.Context, req *mcp.CallToolRequest, in DecodeFormInput) (*mcp.CallToolResult, DecodeFormOutput, error) {
//	    values, err := url.ParseQuery(in.Body)
//	    if err != nil {
//	        return nil, DecodeFormOutput{}, err
//	    }
//	    out := DecodeFormOutput{Fields: map[string]string{}}
//	    for k := range values {
//	        out.Fields[k] = values.Get(k)
//	    }
//	    return nil, out, nil
//	}
//
//	mcpsrv.WithTool(&mcp.Tool{Name: "decode_form", Description: "Decode a url-encoded body"}, decodeForm)
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.toolRegistrations = append(cfg.toolRegistrations, func(srv *mcp.Server) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a tool built from Deps, for tools that read the
// archive or reuse the extractors and query engine. The builder runs once,
// after the builtin dependencies exist.
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "count_matches", Description: "Count entries whose URL contains a substring"},
//	    func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	            n := len(har.Filter(d.Archive.Entries, []string{in.Substring}, nil))
//	            return nil, CountOutput{Count: n}, nil
//	        }
//	    },
//	)
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.deferredToolRegistrations = append(cfg.deferredToolRegistrations, func(srv *mcp.Server, deps *Deps) {
			handler := builder(deps)
			AddTool(srv, tool, handler)
		})
	}
}

// WithPrompt registers an additional prompt:
//
//	mcpsrv.WithPrompt(
//	    &mcp.Prompt{Name: "timetable", Description: "Find the timetable requests"},
//	    func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
//	        return &mcp.GetPromptResult{
//	            Messages: []*mcp.PromptMessage{{
//	                Role:    "user",
//	                Content: &mcp.TextContent{Text: `Call har_list_entries(include=["kbcx"]) and summarize the POST bodies.`},
//	            }},
//	        }, nil
//	    },
//	)
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.promptRegistrations = append(cfg.promptRegistrations, func(srv *mcp.Server) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers an additional resource template. URIs
// under har:// are taken by the builtin resources, so use another scheme:
//
//	mcpsrv.WithResourceTemplate(
//	    &mcp.ResourceTemplate{URITemplate: "notes://{module}", Name: "Module notes", MIMEType: "text/plain"},
//	    func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
//	        return &mcp.ReadResourceResult{
//	            Contents: []*mcp.ResourceContents{{URI: req.Params.URI, MIMEType: "text/plain", Text: notes[req.Params.URI]}},
//	        }, nil
//	    },
//	)
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.resourceRegistrations = append(cfg.resourceRegistrations, func(srv *mcp.Server) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
