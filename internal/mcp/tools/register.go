package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "har_list_entries",
		Description: "List entries of the loaded HAR archive in recorded order. Returns index, method, url, status, content types and body sizes. Filter with include/exclude URL substrings (case-sensitive; an entry matches when its URL contains any include and no exclude). Pass index to har_get_entry or indices to the extraction tools.",
	}, ToolListEntries(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "har_get_entry",
		Description: "Get one entry with its post data and response body. Bodies are truncated to max_chars characters (default HARSCOPE_RESPONSE_LIMIT); set full_body=true or read the har://entry/{index} resource for complete bodies. Set include_headers=true for headers.",
	}, ToolGetEntry(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "har_select_options",
		Description: "List the <select> element ids in HTML response bodies and the (value, label) options of the requested selects, matched by name or id. Requires indices or include. The regex extractor matches case-sensitively and stops at the first </select>; use extractor=markup for an HTML parser.",
	}, ToolSelectOptions(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "har_attribute_pairs",
		Description: "Extract distinct (id, content) pairs from markup of the form attribute='ID' data-content='TEXT' in response bodies. Defaults to the xfyqjd_id attribute with ids in A-F0-9. Returns pairs deduplicated across all entries plus per-entry results.",
	}, ToolAttributePairs(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "har_query_body",
		Description: "Extract specific values from request or response bodies across entries. Requires indices or include. Expression language is auto-detected from content-type (JQ for JSON, CSS for HTML, XPath for XML, regex for text, field name for form post data); set mode to override. Use har_get_entry instead for viewing raw body content.",
	}, ToolQueryBody(d))
}
