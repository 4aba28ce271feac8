// Package service hosts the Planfix MCP server: it owns the API client, the
// tool/resource/prompt registration table, and the stdio and HTTP transports.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"planfixmcp/internal/planfix"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Planfix MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = planfix.Version
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	// Planfix configures the API client behind every tool and resource.
	Planfix planfix.Config
	// Transport selects stdio (default) or http.
	Transport TransportKind
	// HTTPAddr is the HTTP listen address. Defaults to localhost:8700 so
	// the server is never exposed beyond the local machine by accident.
	HTTPAddr string
}

type registrationKind int

const (
	registrationKindTools registrationKind = iota
	registrationKindResources
	registrationKindPrompts
)

// registrationModule names one unit of the MCP surface so the full set is
// enumerable without serving.
type registrationModule struct {
	name     string
	kind     registrationKind
	register func(*mcp.Server, *planfix.Client)
}

func registrationModules() []registrationModule {
	return []registrationModule{
		{name: "task-tools", kind: registrationKindTools, register: registerTaskTools},
		{name: "contact-tools", kind: registrationKindTools, register: registerContactTools},
		{name: "project-tools", kind: registrationKindTools, register: registerProjectTools},
		{name: "directory-tools", kind: registrationKindTools, register: registerDirectoryTools},
		{name: "workspace-resources", kind: registrationKindResources, register: registerWorkspaceResources},
		{name: "planning-prompts", kind: registrationKindPrompts, register: registerPlanningPrompts},
	}
}

// Server hosts the MCP server and the API client it serves from.
type Server struct {
	mcpServer *mcp.Server
	client    *planfix.Client
}

// New creates a configured MCP server backed by a Planfix API client.
func New(cfg planfix.Config) (*Server, error) {
	client, err := planfix.New(cfg)
	if err != nil {
		return nil, err
	}
	return newServer(client), nil
}

// newServer binds every tool, resource, and prompt handler to the client.
func newServer(client *planfix.Client) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler:  completionHandler,
		SubscribeHandler:   resourceSubscribeHandler,
		UnsubscribeHandler: resourceUnsubscribeHandler,
	})

	for _, module := range registrationModules() {
		module.register(mcpServer, client)
	}

	return &Server{mcpServer: mcpServer, client: client}
}

// completionHandler handles completion/complete requests with empty results.
// Prompt arguments are free-form names and dates, so there is nothing useful
// to complete yet.
func completionHandler(_ context.Context, _ *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// resourceSubscribeHandler accepts resource subscriptions with a valid URI.
func resourceSubscribeHandler(_ context.Context, req *mcp.SubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}

// resourceUnsubscribeHandler accepts resource unsubscriptions with a valid URI.
func resourceUnsubscribeHandler(_ context.Context, req *mcp.UnsubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}

// Run is the service entrypoint and blocks until the context ends. The API is
// probed once before serving so bad credentials fail at startup instead of on
// the first tool call.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := New(cfg.Planfix)
	if err != nil {
		return err
	}
	if err := server.client.TestConnection(ctx); err != nil {
		server.Close()
		return fmt.Errorf("planfix connection probe: %w", err)
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		server.Close()
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the API client held by the server.
func (s *Server) Close() {
	if s == nil || s.client == nil {
		return
	}
	s.client.Close()
	s.client = nil
}

// serveWithTransport starts the MCP server using the provided transport. The
// stdio and HTTP paths share this single exit point so the API client is
// always released the same way.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	s.Close()
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
