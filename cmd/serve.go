package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-rpa/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing recorded sessions",
	Long: `Start a Model Context Protocol (MCP) server so AI agents can list recorded
sessions, inspect their steps, replay them, and delete them.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  desktop-rpa serve
  desktop-rpa serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	// stdio belongs to the MCP transport; nothing may log to it.
	if transport == "stdio" {
		logger.InitQuiet()
	}

	srv, err := newMCPServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.close()

	return srv.serve(transport, port)
}
