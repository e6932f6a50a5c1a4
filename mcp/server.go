// Package mcp exposes Bright Data tools over the Model Context Protocol,
// on stdio or streamable HTTP transports.
package mcp

import (
	"context"
	"time"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/deepnoodle-ai/brightdata/slogger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Default identity reported to MCP clients during initialization.
const (
	DefaultServerName    = "brightdata"
	DefaultServerVersion = "dev"
)

// ServerOptions configures a Server.
type ServerOptions struct {
	// Name reported to clients. Defaults to DefaultServerName.
	Name string

	// Version reported to clients. Defaults to DefaultServerVersion.
	Version string

	// Instructions optionally describe to clients how the tools should
	// be used.
	Instructions string

	// Tools to expose. More can be registered later with AddTool.
	Tools []brightdata.Tool

	// Logger receives request logs. Defaults to a no-op logger.
	Logger slogger.Logger
}

// Server exposes a set of tools to MCP clients.
type Server struct {
	mcpServer *server.MCPServer
	logger    slogger.Logger
}

// NewServer creates an MCP server exposing the given tools.
func NewServer(opts ServerOptions) (*Server, error) {
	name := opts.Name
	if name == "" {
		name = DefaultServerName
	}
	version := opts.Version
	if version == "" {
		version = DefaultServerVersion
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogger.DefaultLogger
	}
	serverOpts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if opts.Instructions != "" {
		serverOpts = append(serverOpts, server.WithInstructions(opts.Instructions))
	}
	s := &Server{
		mcpServer: server.NewMCPServer(name, version, serverOpts...),
		logger:    logger,
	}
	for _, tool := range opts.Tools {
		if err := s.AddTool(tool); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddTool registers a tool with the server.
func (s *Server) AddTool(tool brightdata.Tool) error {
	mcpTool, err := convertTool(tool)
	if err != nil {
		return err
	}
	s.mcpServer.AddTool(mcpTool, s.toolHandler(tool))
	return nil
}

func (s *Server) toolHandler(tool brightdata.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		arguments := request.GetArguments()
		if arguments == nil {
			arguments = map[string]any{}
		}
		start := time.Now()
		result, err := tool.Call(ctx, arguments)
		if err != nil {
			s.logger.Error("tool call failed",
				"tool", tool.Name(),
				"duration", time.Since(start).String(),
				"error", err)
			return nil, err
		}
		converted := convertResult(result)
		s.logger.Info("tool call completed",
			"tool", tool.Name(),
			"duration", time.Since(start).String(),
			"is_error", converted.IsError)
		return converted, nil
	}
}

// ServeStdio serves MCP over stdin and stdout, blocking until the client
// disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ListenAndServe serves MCP over streamable HTTP on addr, blocking until
// the server stops. The MCP endpoint is mounted at /mcp.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("mcp server listening", "addr", addr, "path", "/mcp")
	return server.NewStreamableHTTPServer(s.mcpServer).Start(addr)
}
