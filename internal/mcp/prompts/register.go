package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "inspect_capture",
		Description: "RECOMMENDED: Walk through a loaded HAR capture to find the requests of interest and extract form options and attribute data from them.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "url_hint",
				Description: "URL substring of the page or endpoint to focus on",
				Required:    false,
			},
			{
				Name:        "goal",
				Description: "What you want to pull out of the capture (e.g., 'all grade options for the course plan form')",
				Required:    false,
			},
		},
	}, HandleInspectCapture(cfg))
}
