package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/harscope/internal/mcp/tools"
)

// AddTool registers a tool on srv after checking that the zero value of Out
// satisfies the output schema the SDK infers for it. A nil slice marshals to
// null, which fails an "array" schema on every call; the check turns that
// into a panic at registration naming the offending field.
//
// The With*Tool options call it for you. Call it directly when registering on
// the SDK server returned by [Server.MCPServer].
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
