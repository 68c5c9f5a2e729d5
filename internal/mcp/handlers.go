// ABOUTME: MCP tool handler implementations for the coaching server
// ABOUTME: Tool errors are returned as error results, never as transport errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/tap-coach/internal/interpret"
	"github.com/harper/tap-coach/internal/logging"
	"github.com/harper/tap-coach/internal/lookup"
	"github.com/harper/tap-coach/internal/models"
	"github.com/harper/tap-coach/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	session *session.Session
	hunter  *lookup.HunterClient
	log     logging.Logger
}

// AskCoach handles the ask_coach tool
func (h *Handlers) AskCoach(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	reply, err := h.session.Submit(ctx, message)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := map[string]interface{}{
		"reply":        reply.Content,
		"limited_mode": h.session.Degraded(),
		"links":        interpret.ModuleLinks(reply.Content),
	}
	if id := reply.Recommendation(); id != "" {
		response["recommended_module"] = id
		response["module_title"] = id.Title()
	}

	return jsonResult(response)
}

// SearchModules handles the search_modules tool
func (h *Handlers) SearchModules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 5)
	if maxResults < 1 {
		return mcp.NewToolResultError("max_results must be positive"), nil
	}

	return jsonResult(map[string]interface{}{
		"results": h.session.Search(query, maxResults),
	})
}

// ListModules handles the list_modules tool
func (h *Handlers) ListModules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"modules": models.Catalog,
	})
}

// GetChatHistory handles the get_chat_history tool
func (h *Handlers) GetChatHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history := h.session.History()

	if limit := request.GetInt("limit", 0); limit > 0 && limit < len(history) {
		history = history[len(history)-limit:]
	}

	return jsonResult(map[string]interface{}{
		"messages":     history,
		"limited_mode": h.session.Degraded(),
	})
}

// ClearChatHistory handles the clear_chat_history tool
func (h *Handlers) ClearChatHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !request.GetBool("confirm", false) {
		return mcp.NewToolResultError("refusing to clear history without confirm=true"), nil
	}

	if err := h.session.ClearHistory(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h.log.Info("chat history cleared via MCP")

	return jsonResult(map[string]interface{}{"cleared": true})
}

// FindContactEmail handles the find_contact_email tool
func (h *Handlers) FindContactEmail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain, err := request.RequireString("domain")
	if err != nil {
		return mcp.NewToolResultError("domain argument is required and must be a string"), nil
	}
	if h.hunter == nil {
		return mcp.NewToolResultError("contact lookup is not configured (set HUNTER_API_KEY)"), nil
	}

	result, err := h.hunter.FindEmail(ctx, lookup.EmailQuery{
		Domain:    domain,
		FirstName: request.GetString("first_name", ""),
		LastName:  request.GetString("last_name", ""),
		Company:   request.GetString("company", ""),
	})
	if errors.Is(err, lookup.ErrNotFound) {
		return jsonResult(map[string]interface{}{"found": false})
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("contact lookup failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"found":   true,
		"contact": result,
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
