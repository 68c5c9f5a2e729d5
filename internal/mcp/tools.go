// ABOUTME: MCP tool definitions and registration for the coaching server
// ABOUTME: Exposes chat, module search, history and contact lookup to agents
package mcp

import (
	"github.com/harper/tap-coach/internal/logging"
	"github.com/harper/tap-coach/internal/lookup"
	"github.com/harper/tap-coach/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server. hunter may be nil,
// in which case find_contact_email reports that it is not configured.
func RegisterTools(server *mcpserver.MCPServer, sess *session.Session, hunter *lookup.HunterClient) *Handlers {
	handlers := &Handlers{
		session: sess,
		hunter:  hunter,
		log:     logging.For("mcp"),
	}

	// 1. ask_coach - one conversation turn
	server.AddTool(mcp.Tool{
		Name:        "ask_coach",
		Description: "Ask the TAP sponsorship coach a question. Returns the reply and a recommended curriculum module (M1-M7).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "Question or message for the coach",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.AskCoach)

	// 2. search_modules - keyword retrieval over module content
	server.AddTool(mcp.Tool{
		Name:        "search_modules",
		Description: "Search the sponsorship curriculum modules for the most relevant sections.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of sections to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchModules)

	// 3. list_modules - the curriculum catalog
	server.AddTool(mcp.Tool{
		Name:        "list_modules",
		Description: "List the curriculum modules with their ids and titles.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListModules)

	// 4. get_chat_history - the persisted conversation
	server.AddTool(mcp.Tool{
		Name:        "get_chat_history",
		Description: "Get the coaching conversation so far, oldest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Only return the most recent N messages (default: all)",
				},
			},
		},
	}, handlers.GetChatHistory)

	// 5. clear_chat_history - destructive, needs confirm=true
	server.AddTool(mcp.Tool{
		Name:        "clear_chat_history",
		Description: "Clear all chat history. This cannot be undone; pass confirm=true.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"confirm": map[string]interface{}{
					"type":        "boolean",
					"description": "Must be true to clear the history",
				},
			},
			Required: []string{"confirm"},
		},
	}, handlers.ClearChatHistory)

	// 6. find_contact_email - Hunter.io email finder
	server.AddTool(mcp.Tool{
		Name:        "find_contact_email",
		Description: "Find a likely email address for a person at a company domain via Hunter.io.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"domain": map[string]interface{}{
					"type":        "string",
					"description": "Company domain, e.g. patagonia.com",
				},
				"first_name": map[string]interface{}{
					"type":        "string",
					"description": "Person's first name",
				},
				"last_name": map[string]interface{}{
					"type":        "string",
					"description": "Person's last name",
				},
				"company": map[string]interface{}{
					"type":        "string",
					"description": "Optional company name",
				},
			},
			Required: []string{"domain"},
		},
	}, handlers.FindContactEmail)

	return handlers
}
