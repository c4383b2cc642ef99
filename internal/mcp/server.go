// Package mcp exposes the VQL command set to agent clients over the
// Model Context Protocol.
//
// The server speaks MCP over stdio and delegates every tool call to one
// CLI invocation spawned as a subprocess. The subprocess boundary keeps
// the adapter honest: a tool call sees exactly the behavior, error
// messages, and exit discipline a human invoking the CLI would see.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roach88/vql/internal/schema"
)

// Session identifies one MCP serving session. Handlers receive the
// session explicitly instead of consulting process-global state.
type Session struct {
	ID   string
	Mode string
}

// NewSession mints a session with a fresh ID.
func NewSession(mode string) *Session {
	return &Session{ID: uuid.NewString(), Mode: mode}
}

// Server bridges MCP tool calls to CLI subprocess invocations.
type Server struct {
	binary  string
	dir     string
	session *Session
}

// NewServer builds a server that spawns binary with --dir dir for every
// tool call.
func NewServer(binary, dir string) *Server {
	return &Server{
		binary:  binary,
		dir:     dir,
		session: NewSession("mcp"),
	}
}

// Session returns the serving session.
func (s *Server) Session() *Session {
	return s.session
}

// Run serves MCP over stdio until the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	srv := server.NewMCPServer(
		"vql",
		schema.Version,
		server.WithLogging(),
	)
	s.register(srv)

	slog.Info("serving MCP over stdio", "session", s.session.ID, "dir", s.dir)
	return server.ServeStdio(srv)
}

func (s *Server) register(srv *server.MCPServer) {
	srv.AddTool(
		mcp.NewTool(
			"setup",
			mcp.WithDescription("Initialize the VQL directory and storage file for the workspace."),
		),
		s.handleSetup,
	)

	srv.AddTool(
		mcp.NewTool(
			"add_principle",
			mcp.WithDescription("Add or overwrite a review principle."),
			mcp.WithString("short", mcp.Required(), mcp.Description("Single-character principle identifier")),
			mcp.WithString("long_name", mcp.Required(), mcp.Description("Human-readable principle name")),
			mcp.WithString("guidance", mcp.Description("Review guidance text")),
		),
		s.handleAddPrinciple,
	)

	srv.AddTool(
		mcp.NewTool(
			"add_entity",
			mcp.WithDescription("Add or overwrite a domain entity."),
			mcp.WithString("short", mcp.Required(), mcp.Description("Entity identifier")),
			mcp.WithString("description", mcp.Required(), mcp.Description("Entity description")),
		),
		s.handleAddEntity,
	)

	srv.AddTool(
		mcp.NewTool(
			"add_asset_type",
			mcp.WithDescription("Add or overwrite an asset type."),
			mcp.WithString("short", mcp.Required(), mcp.Description("Single-character asset type identifier")),
			mcp.WithString("description", mcp.Required(), mcp.Description("Asset type description")),
		),
		s.handleAddAssetType,
	)

	srv.AddTool(
		mcp.NewTool(
			"add_asset_reference",
			mcp.WithDescription("Register a tracked file. The entity and asset type must already exist."),
			mcp.WithString("short", mcp.Required(), mcp.Description("Asset identifier")),
			mcp.WithString("entity", mcp.Required(), mcp.Description("Owning entity identifier")),
			mcp.WithString("asset_type", mcp.Required(), mcp.Description("Asset type identifier")),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path, absolute or workspace-relative")),
		),
		s.handleAddAssetReference,
	)

	srv.AddTool(
		mcp.NewTool(
			"store_review",
			mcp.WithDescription("Store a principle's review of an asset, replacing any prior review for the pair. Without an explicit rating, a compliance level is derived from the text."),
			mcp.WithString("asset", mcp.Required(), mcp.Description("Asset identifier")),
			mcp.WithString("principle", mcp.Required(), mcp.Description("Principle identifier")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Review analysis text")),
			mcp.WithString("rating", mcp.Description("Explicit rating H, M, or L; overrides extraction")),
		),
		s.handleStoreReview,
	)

	srv.AddTool(
		mcp.NewTool(
			"set_exemplar",
			mcp.WithDescription("Mark or unmark an asset as a best-practice example."),
			mcp.WithString("asset", mcp.Required(), mcp.Description("Asset identifier")),
			mcp.WithBoolean("exemplar", mcp.Required(), mcp.Description("Exemplar status")),
		),
		s.handleSetExemplar,
	)

	srv.AddTool(
		mcp.NewTool(
			"set_compliance",
			mcp.WithDescription("Set a compliance rating for an (asset, principle) pair, preserving any analysis text."),
			mcp.WithString("asset", mcp.Required(), mcp.Description("Asset identifier")),
			mcp.WithString("principle", mcp.Required(), mcp.Description("Principle identifier")),
			mcp.WithString("rating", mcp.Required(), mcp.Description("Rating H, M, or L")),
		),
		s.handleSetCompliance,
	)

	srv.AddTool(
		mcp.NewTool(
			"query_reviews",
			mcp.WithDescription("Show the reviews recorded for an asset, optionally filtered to specific principles."),
			mcp.WithString("asset", mcp.Required(), mcp.Description("Asset identifier")),
			mcp.WithString("principles", mcp.Description("Comma- or space-separated principle identifiers to filter by")),
		),
		s.handleQueryReviews,
	)

	srv.AddTool(
		mcp.NewTool(
			"import_principles",
			mcp.WithDescription("Batch-import principles from a markdown file. A single bad shortcode fails the whole import."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the markdown file")),
		),
		s.handleImportPrinciples,
	)

	srv.AddTool(
		mcp.NewTool(
			"export_report",
			mcp.WithDescription("Write an assessment report into the VQL directory."),
			mcp.WithString("format", mcp.Description("Report format: md or json (default md)")),
			mcp.WithBoolean("details", mcp.Description("Include per-review analysis text (md only)")),
		),
		s.handleExportReport,
	)
}

// invoke runs one CLI subprocess with JSON output and reports its stdout
// on success. On failure the subprocess stderr is forwarded verbatim so
// the client sees the same diagnostics a terminal user would.
func (s *Server) invoke(ctx context.Context, args ...string) (*mcp.CallToolResult, error) {
	full := append([]string{"--dir", s.dir, "--format", "json"}, args...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.binary, full...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("tool call", "session", s.session.ID, "args", args)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			msg = fmt.Sprintf("vql %s: %v", strings.Join(args, " "), err)
		}
		return mcp.NewToolResultError(msg), nil
	}
	return mcp.NewToolResultText(stdout.String()), nil
}

func stringArg(args map[string]any, name string) (string, bool) {
	v, ok := args[name].(string)
	return v, ok
}

func (s *Server) handleSetup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.invoke(ctx, "setup")
}

func (s *Server) handleAddPrinciple(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	short, ok := stringArg(args, "short")
	if !ok {
		return mcp.NewToolResultError("short argument required"), nil
	}
	longName, ok := stringArg(args, "long_name")
	if !ok {
		return mcp.NewToolResultError("long_name argument required"), nil
	}

	cli := []string{"principle", "add", short, longName}
	if guidance, ok := stringArg(args, "guidance"); ok && guidance != "" {
		cli = append(cli, guidance)
	}
	return s.invoke(ctx, cli...)
}

func (s *Server) handleAddEntity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	short, ok := stringArg(args, "short")
	if !ok {
		return mcp.NewToolResultError("short argument required"), nil
	}
	description, ok := stringArg(args, "description")
	if !ok {
		return mcp.NewToolResultError("description argument required"), nil
	}
	return s.invoke(ctx, "entity", "add", short, description)
}

func (s *Server) handleAddAssetType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	short, ok := stringArg(args, "short")
	if !ok {
		return mcp.NewToolResultError("short argument required"), nil
	}
	description, ok := stringArg(args, "description")
	if !ok {
		return mcp.NewToolResultError("description argument required"), nil
	}
	return s.invoke(ctx, "asset-type", "add", short, description)
}

func (s *Server) handleAddAssetReference(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	short, ok := stringArg(args, "short")
	if !ok {
		return mcp.NewToolResultError("short argument required"), nil
	}
	entity, ok := stringArg(args, "entity")
	if !ok {
		return mcp.NewToolResultError("entity argument required"), nil
	}
	assetType, ok := stringArg(args, "asset_type")
	if !ok {
		return mcp.NewToolResultError("asset_type argument required"), nil
	}
	path, ok := stringArg(args, "path")
	if !ok {
		return mcp.NewToolResultError("path argument required"), nil
	}
	return s.invoke(ctx, "asset", "add", short, entity, assetType, path)
}

func (s *Server) handleStoreReview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	asset, ok := stringArg(args, "asset")
	if !ok {
		return mcp.NewToolResultError("asset argument required"), nil
	}
	principle, ok := stringArg(args, "principle")
	if !ok {
		return mcp.NewToolResultError("principle argument required"), nil
	}
	text, ok := stringArg(args, "text")
	if !ok {
		return mcp.NewToolResultError("text argument required"), nil
	}

	cli := []string{"review", "store", asset, principle, text}
	if rating, ok := stringArg(args, "rating"); ok && rating != "" {
		cli = append(cli, "--rating", rating)
	}
	return s.invoke(ctx, cli...)
}

func (s *Server) handleSetExemplar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	asset, ok := stringArg(args, "asset")
	if !ok {
		return mcp.NewToolResultError("asset argument required"), nil
	}
	exemplar, ok := args["exemplar"].(bool)
	if !ok {
		return mcp.NewToolResultError("exemplar argument required"), nil
	}
	return s.invoke(ctx, "set", "exemplar", asset, fmt.Sprintf("%t", exemplar))
}

func (s *Server) handleSetCompliance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	asset, ok := stringArg(args, "asset")
	if !ok {
		return mcp.NewToolResultError("asset argument required"), nil
	}
	principle, ok := stringArg(args, "principle")
	if !ok {
		return mcp.NewToolResultError("principle argument required"), nil
	}
	rating, ok := stringArg(args, "rating")
	if !ok {
		return mcp.NewToolResultError("rating argument required"), nil
	}
	return s.invoke(ctx, "set", "compliance", asset, principle, rating)
}

func (s *Server) handleQueryReviews(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	asset, ok := stringArg(args, "asset")
	if !ok {
		return mcp.NewToolResultError("asset argument required"), nil
	}

	cli := []string{"query", asset}
	if principles, ok := stringArg(args, "principles"); ok {
		sep := func(r rune) bool { return r == ',' || unicode.IsSpace(r) }
		cli = append(cli, strings.FieldsFunc(principles, sep)...)
	}
	return s.invoke(ctx, cli...)
}

func (s *Server) handleImportPrinciples(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	path, ok := stringArg(args, "path")
	if !ok {
		return mcp.NewToolResultError("path argument required"), nil
	}
	return s.invoke(ctx, "import", path)
}

func (s *Server) handleExportReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	cli := []string{"export"}
	if format, ok := stringArg(args, "format"); ok && format != "" {
		cli = append(cli, format)
	}
	if details, ok := args["details"].(bool); ok && details {
		cli = append(cli, "--details")
	}
	return s.invoke(ctx, cli...)
}
