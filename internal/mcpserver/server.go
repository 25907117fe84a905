// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the Zettelkasten stores as tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/JangVincent/zettelkasten-cli/internal/store"
	"github.com/JangVincent/zettelkasten-cli/internal/zettelservice"
	"github.com/JangVincent/zettelkasten-cli/internal/zid"
)

// Server wraps the MCP server with Zettelkasten tools.
type Server struct {
	mcp   *server.MCPServer
	store *store.Store
	svc   *zettelservice.Service
}

// New creates a new MCP server with all tools registered.
func New(st *store.Store, svc *zettelservice.Service) *Server {
	s := &Server{store: st, svc: svc}

	s.mcp = server.NewMCPServer(
		"Zettelkasten",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search across fleeting notes, literature notes, and zettels."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a note by id. The namespace prefix picks the kind: "+
			"fl: for fleeting, lit: for literature, anything else is a zettel id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id (e.g. 1a2, fl:3, lit:sapiens)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("capture_fleeting_note",
		mcp.WithDescription("Capture a fleeting note. The next id in the fl: sequence is assigned automatically."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note content")),
	), s.captureFleeting)

	s.mcp.AddTool(mcp.NewTool("suggest_zettel_id",
		mcp.WithDescription("Suggest the next free Luhmann id, optionally derived from a parent zettel."),
		mcp.WithString("parent", mcp.Description("Parent zettel id (empty for a new root id)")),
	), s.suggestID)

	s.mcp.AddTool(mcp.NewTool("promote_fleeting_note",
		mcp.WithDescription("Promote a fleeting note into a permanent zettel and delete the original."),
		mcp.WithString("fleeting_id", mcp.Required(), mcp.Description("Id of the fleeting note to promote")),
		mcp.WithString("zettel_id", mcp.Description("Target zettel id (empty accepts the suggested next root id)")),
	), s.promoteFleeting)

	s.mcp.AddTool(mcp.NewTool("link_zettels",
		mcp.WithDescription("Create a typed link between two zettels with a free-text reason."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Source zettel id")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Target zettel id")),
		mcp.WithString("reason", mcp.Required(), mcp.Description("Why the zettels connect (e.g. support, contradict)")),
	), s.linkZettels)

	s.mcp.AddTool(mcp.NewTool("list_dangling",
		mcp.WithDescription("List all dangling links and references left behind by deleted notes."),
	), s.listDangling)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var note any
	switch zid.Detect(id) {
	case zid.KindFleeting:
		n, ferr := s.store.Fleeting.FindByID(id)
		if ferr != nil {
			return mcp.NewToolResultError(ferr.Error()), nil
		}
		if n != nil {
			note = n
		}
	case zid.KindLiterature:
		n, ferr := s.store.Literature.FindByID(id)
		if ferr != nil {
			return mcp.NewToolResultError(ferr.Error()), nil
		}
		if n != nil {
			note = n
		}
	default:
		n, ferr := s.store.Zettels.FindByID(id)
		if ferr != nil {
			return mcp.NewToolResultError(ferr.Error()), nil
		}
		if n != nil {
			note = n
		}
	}
	if note == nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(note, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) captureFleeting(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.store.Fleeting.Create("", title, content)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(note, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) suggestID(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	parent := req.GetString("parent", "")
	id, err := s.store.Zettels.SuggestNextID(parent)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(id), nil
}

func (s *Server) promoteFleeting(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fleetingID, err := req.RequireString("fleeting_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	zettelID := req.GetString("zettel_id", "")
	zettel, err := s.svc.Promote(ctx, fleetingID, zettelID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(zettel, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) linkZettels(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := req.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reason, err := req.RequireString("reason")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	exists, err := s.store.Links.Exists(source, target)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if exists {
		return mcp.NewToolResultError(fmt.Sprintf("link already exists: %s -> %s", source, target)), nil
	}
	link, err := s.store.Links.Create(source, target, reason)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(link, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listDangling(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.svc.Dangling(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
