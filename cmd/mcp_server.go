package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-rpa/internal/config"
	"github.com/mj1618/desktop-rpa/internal/model"
	"github.com/mj1618/desktop-rpa/internal/platform"
	"github.com/mj1618/desktop-rpa/internal/player"
	"github.com/mj1618/desktop-rpa/internal/store"
	"github.com/mj1618/desktop-rpa/internal/version"
)

// mcpServer exposes the session store and the player over MCP.
type mcpServer struct {
	cfg   *config.Config
	store store.Store

	// runMu serializes replays: injected input cannot overlap.
	runMu sync.Mutex

	mcp *mcpserver.MCPServer
}

// newMCPServer opens the store and registers the desktop-rpa tools.
func newMCPServer(c *config.Config) (*mcpServer, error) {
	st, err := openStore(c)
	if err != nil {
		return nil, err
	}

	s := &mcpServer{cfg: c, store: st}
	s.mcp = mcpserver.NewMCPServer(
		"desktop-rpa",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

func (s *mcpServer) close() {
	_ = s.store.Close()
}

// serve starts the MCP server with the requested transport.
func (s *mcpServer) serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_sessions",
			mcp.WithDescription("List recorded desktop sessions, newest first"),
		),
		s.handleListSessions,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_steps",
			mcp.WithDescription("Get the ordered steps of a recorded session"),
			mcp.WithString("session", mcp.Description("Session id (default: latest session)")),
		),
		s.handleGetSteps,
	)

	s.mcp.AddTool(
		mcp.NewTool("run_session",
			mcp.WithDescription("Replay a recorded session on the desktop and return a run summary"),
			mcp.WithString("session", mcp.Description("Session id (default: latest session)")),
			mcp.WithBoolean("dry_run", mcp.Description("Resolve every step but inject nothing")),
		),
		s.handleRunSession,
	)

	s.mcp.AddTool(
		mcp.NewTool("delete_session",
			mcp.WithDescription("Delete a recorded session and its steps"),
			mcp.WithString("session", mcp.Description("Session id"), mcp.Required()),
		),
		s.handleDeleteSession,
	)
}

func (s *mcpServer) handleListSessions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.store.ListSessions()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if sessions == nil {
		sessions = []*model.Session{}
	}
	b, _ := yaml.Marshal(sessions)
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleGetSteps(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := selectSession(s.store, stringParam(request.GetArguments(), "session", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	steps, err := s.store.Steps(sess.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if steps == nil {
		steps = []model.Step{}
	}
	b, _ := yaml.Marshal(steps)
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleRunSession(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	dryRun := boolParam(params, "dry_run", false)

	sess, err := selectSession(s.store, stringParam(params, "session", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	provider, err := platform.NewProvider()
	if err != nil {
		if !dryRun {
			return mcp.NewToolResultError(err.Error()), nil
		}
		provider = &platform.Provider{}
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	pl := player.New(s.store, newResolver(provider, s.cfg), provider.Inputter, playerOptions(s.cfg, dryRun))
	res, err := pl.Run(&player.Signals{}, sess.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, _ := yaml.Marshal(res)
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleDeleteSession(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringParam(request.GetArguments(), "session", "")
	if id == "" {
		return mcp.NewToolResultError("session parameter is required"), nil
	}

	sess, err := selectSession(s.store, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.store.DeleteSession(sess.ID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted session %s", sess.ID)), nil
}
