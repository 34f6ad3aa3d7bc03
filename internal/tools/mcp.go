package tools

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Register attaches the six memory tools to the supplied MCP server.
func Register(srv *server.MCPServer, deps *Deps) {
	srv.AddTool(buildSearchMemoriesTool(), deps.handleSearchMemories)
	srv.AddTool(buildAddMemoryTool(), deps.handleAddMemory)
	srv.AddTool(buildListMemoriesTool(), deps.handleListMemories)
	srv.AddTool(buildDeleteMemoryTool(), deps.handleDeleteMemory)
	srv.AddTool(buildSearchGraphTool(), deps.handleSearchGraph)
	srv.AddTool(buildGetEntityTool(), deps.handleGetEntity)
}

func buildSearchMemoriesTool() mcp.Tool {
	return mcp.NewTool(
		"search_memories",
		mcp.WithDescription("Semantically search memories for relevant context. Use this at the start of tasks to recall preferences, decisions, patterns, and facts from previous sessions."),
		mcp.WithString("query",
			mcp.Description("Natural language search query (e.g. \"TypeScript preferences\", \"server architecture\")"),
			mcp.Required(),
		),
	)
}

func buildAddMemoryTool() mcp.Tool {
	return mcp.NewTool(
		"add_memory",
		mcp.WithDescription("Store a new memory for future recall. Use this to remember important facts, user preferences, architectural decisions, and lessons learned."),
		mcp.WithString("text",
			mcp.Description("The fact or information to remember"),
			mcp.Required(),
		),
	)
}

func buildListMemoriesTool() mcp.Tool {
	return mcp.NewTool(
		"list_memories",
		mcp.WithDescription("List all stored memories for the current user, across every writer sharing the store."),
	)
}

func buildDeleteMemoryTool() mcp.Tool {
	return mcp.NewTool(
		"delete_memory",
		mcp.WithDescription("Delete a specific memory by its ID."),
		mcp.WithString("memory_id",
			mcp.Description("The full UUID of the memory to delete"),
			mcp.Required(),
		),
	)
}

func buildSearchGraphTool() mcp.Tool {
	return mcp.NewTool(
		"search_graph",
		mcp.WithDescription("Search the knowledge graph for entity relationships. Finds entities matching the query and their connections."),
		mcp.WithString("query",
			mcp.Description("Entity or topic to search for"),
			mcp.Required(),
		),
	)
}

func buildGetEntityTool() mcp.Tool {
	return mcp.NewTool(
		"get_entity",
		mcp.WithDescription("Get all relationships for a specific entity, both incoming and outgoing."),
		mcp.WithString("name",
			mcp.Description("The entity name"),
			mcp.Required(),
		),
	)
}

func (d *Deps) handleSearchMemories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return nil, err
	}
	logCall("search_memories", "query", query)

	text, err := d.SearchMemories(ctx, query)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

func (d *Deps) handleAddMemory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return nil, err
	}
	logCall("add_memory")

	result, err := d.AddMemory(ctx, text)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(result), nil
}

func (d *Deps) handleListMemories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logCall("list_memories")

	text, err := d.ListMemories(ctx)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

func (d *Deps) handleDeleteMemory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	memoryID, err := req.RequireString("memory_id")
	if err != nil {
		return nil, err
	}
	logCall("delete_memory", "memory_id", memoryID)

	text, err := d.DeleteMemory(ctx, memoryID)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

func (d *Deps) handleSearchGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return nil, err
	}
	logCall("search_graph", "query", query)

	text, err := d.SearchGraph(ctx, query)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

func (d *Deps) handleGetEntity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return nil, err
	}
	logCall("get_entity", "name", name)

	text, err := d.GetEntity(ctx, name)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

func logCall(tool string, keyvals ...any) {
	args := append([]any{"request_id", uuid.NewString()[:8]}, keyvals...)
	log.Info(tool, args...)
}
