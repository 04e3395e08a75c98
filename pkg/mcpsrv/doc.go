// Package mcpsrv serves a loaded HAR archive to MCP clients.
//
// The server exposes the builtin har_* tools (list and read entries, extract
// select options and attribute pairs, query bodies), the har:// resources and
// the inspect_capture prompt. Embedders can add their own tools, prompts and
// resource templates through options.
//
// # Serving an archive
//
//	archive, err := har.Load("jwgl.har")
//	if err != nil {
//	    return err
//	}
//	server, err := mcpsrv.NewServer(archive)
//	if err != nil {
//	    return err
//	}
//	defer server.Close()
//	return server.Run(ctx)
//
// # Custom tools
//
// Tools that only need their input use [WithTool]. Tools that read the
// archive or reuse the extractors use [WithDepsTool]:
//
//	type PortalPagesInput struct {
//	    Module string `json:"module" jsonschema:"URL path segment, e.g. jxzxjhgl"`
//	}
//
//	type PortalPagesOutput struct {
//	    URLs []string `json:"urls"`
//	}
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "portal_pages", Description: "HTML pages captured for a portal module"},
//	    func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, PortalPagesInput) (*mcp.CallToolResult, PortalPagesOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in PortalPagesInput) (*mcp.CallToolResult, PortalPagesOutput, error) {
//	            out := PortalPagesOutput{URLs: []string{}}
//	            for _, e := range d.Archive.Filter([]string{in.Module}, []string{".js", ".css"}) {
//	                out.URLs = append(out.URLs, e.Request.URL)
//	            }
//	            return nil, out, nil
//	        }
//	    },
//	)
//
// Output slices must be non-nil in the zero value path, see [AddTool].
//
// # Configuration
//
// Limits, the extractor backend and logging come from HARSCOPE_* and LOG_*
// environment variables unless [WithConfig] supplies a config. [WithLogLevel]
// and [WithLogFile] override the logging part only. Callers that already set
// up slog pass [WithExistingLogging].
package mcpsrv
