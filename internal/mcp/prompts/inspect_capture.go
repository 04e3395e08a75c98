package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleInspectCapture implements the capture inspection workflow.
func HandleInspectCapture(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		urlHint := ""
		goal := ""
		if args != nil {
			if v, ok := args["url_hint"]; ok {
				urlHint = v
			}
			if v, ok := args["goal"]; ok {
				goal = v
			}
		}

		var sb strings.Builder

		sb.WriteString("# Inspect a HAR Capture\n\n")
		sb.WriteString("You are analysing a browser traffic capture from a web portal. ")
		sb.WriteString("Your goal is to find the requests that carry the data of interest and extract it in structured form.\n\n")

		sb.WriteString("## Loaded Archive\n\n")
		sb.WriteString(fmt.Sprintf("- **File**: %s\n", cfg.ArchivePath))
		sb.WriteString(fmt.Sprintf("- **Entries**: %d\n", cfg.EntryCount))
		if goal != "" {
			sb.WriteString(fmt.Sprintf("- **Goal**: %s\n", goal))
		}
		sb.WriteString("\n")

		sb.WriteString("## Context Usage Guide\n\n")
		sb.WriteString("- **Tools** return clipped bodies and extracted values - use these for most analysis\n")
		sb.WriteString("- **Resources** (`har://entry/{index}`) return complete bodies - high context cost, only fetch when a tool reports truncation\n")
		sb.WriteString("- URL filters are case-sensitive substrings; an entry matches when its URL contains any include and none of the excludes\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **List entries** - Find the candidate requests\n")
		sb.WriteString("   - Start with an include filter taken from the page name or endpoint path\n")
		sb.WriteString("   - Add excludes to drop noise such as script or asset requests\n\n")
		sb.WriteString("2. **Inspect one entry** - Check the form data and the response shape\n")
		sb.WriteString("   - Bodies are clipped; `full_body: true` returns them whole\n\n")
		sb.WriteString("3. **Extract** - Pick the extractor that fits the response\n")
		sb.WriteString("   - `<select>` dropdowns: har_select_options with the select ids\n")
		sb.WriteString("   - Elements carrying an id attribute plus `data-content`: har_attribute_pairs\n")
		sb.WriteString("   - JSON, XML, or anything else: har_query_body (jq, xpath, css, regex, form)\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString("# Step 1: List candidate entries\n")
		if urlHint != "" {
			sb.WriteString(fmt.Sprintf("har_list_entries(include=[\"%s\"])\n", urlHint))
		} else {
			sb.WriteString("har_list_entries()\n")
		}
		sb.WriteString("\n")
		sb.WriteString("# Step 2: Inspect a single entry\n")
		sb.WriteString("har_get_entry(index=<index>, include_headers=true)\n")
		sb.WriteString("\n")
		sb.WriteString("# Step 3: Extract values\n")
		sb.WriteString("har_select_options(indices=[<index>], select_ids=[\"jg_id\", \"njdm_id\"])\n")
		sb.WriteString("har_attribute_pairs(include=[\"<url part>\"])\n")
		sb.WriteString("har_query_body(include=[\"<url part>\"], expression=\".items[].name\", mode=\"jq\")\n")
		sb.WriteString("```\n\n")

		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("1. **Requests**: Index, method, and URL of each relevant entry\n")
		sb.WriteString("2. **Inputs**: The form fields each request posted\n")
		sb.WriteString("3. **Extracted Data**: Options, pairs, or query values grouped by entry\n\n")

		sb.WriteString("## Constraints\n\n")
		sb.WriteString("- Do NOT read `har://entry` resources unless a tool reported a truncated body you need\n")
		sb.WriteString("- Do NOT list every entry without a filter on large captures - page with offset instead\n\n")

		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **No entries matched?** Filters are case-sensitive; try a shorter URL fragment\n")
		sb.WriteString("- **No selects found?** The response may be JSON; try har_query_body instead\n")
		sb.WriteString("- **No attribute pairs?** Set `attribute` to the id attribute the page actually uses\n")
		sb.WriteString("- **Query returns nothing?** Set `mode` explicitly; auto-detection follows the content type\n")

		return &sdkmcp.GetPromptResult{
			Description: "Workflow for extracting data from a HAR capture",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
