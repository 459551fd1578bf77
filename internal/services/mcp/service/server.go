package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/actionconsole/internal/action"
	"github.com/louisbranch/actionconsole/internal/action/confirm"
	"github.com/louisbranch/actionconsole/internal/action/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "actionconsole"
	// defaultHTTPAddr keeps the HTTP transport on the loopback interface.
	defaultHTTPAddr = "localhost:8091"
)

// TransportKind selects how the MCP server is reached.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves the streamable HTTP transport.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr defaults to localhost:8091 for the HTTP transport.
	HTTPAddr string
	Version  string

	Registry  *action.Registry
	Engine    *engine.Engine
	Gate      *confirm.Gate
	Validator action.Validator
	Logger    *log.Logger
}

// Server maps registry actions onto MCP tools.
type Server struct {
	mcpServer *mcp.Server
	registry  *action.Registry
	engine    *engine.Engine
	gate      *confirm.Gate
	validator action.Validator
	binder    action.Binder
	logger    *log.Logger
	tools     []string
}

// NewServer registers one tool per action that passes validation. Actions
// with invalid signatures or names that are not valid tool names are skipped.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("action registry is required")
	}
	s := &Server{
		registry:  cfg.Registry,
		engine:    cfg.Engine,
		gate:      cfg.Gate,
		validator: cfg.Validator,
		logger:    cfg.Logger,
	}
	if s.engine == nil {
		s.engine = engine.New()
	}
	if s.gate == nil {
		s.gate = confirm.NewGate()
	}
	if s.validator == nil {
		s.validator = action.SignatureValidator{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = "dev"
	}
	s.mcpServer = mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)

	for _, a := range s.registry.ResolveAll() {
		if status := s.validator.Validate(a); status.IsInvalid() {
			s.logger.Printf("skip tool %q: %s", a.Name(), status.Message())
			continue
		}
		if !validToolName(a.Name()) {
			s.logger.Printf("skip tool %q: not a valid tool name", a.Name())
			continue
		}
		s.mcpServer.AddTool(toolFor(a), s.toolHandler(a.Name()))
		s.tools = append(s.tools, a.Name())
	}
	return s, nil
}

// Tools returns the registered tool names in registry order.
func (s *Server) Tools() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.tools...)
}

// Serve runs the server on transport until the peer disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Run builds the server and blocks on the configured transport until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := NewServer(cfg)
	if err != nil {
		return err
	}
	server.logger.Printf("serving %d tools over %s", len(server.tools), cfg.Transport)

	if cfg.Transport == TransportHTTP {
		httpAddr := strings.TrimSpace(cfg.HTTPAddr)
		if httpAddr == "" {
			httpAddr = defaultHTTPAddr
		}
		return server.ListenAndServe(ctx, httpAddr)
	}
	return server.Serve(ctx, &mcp.StdioTransport{})
}

func validToolName(name string) bool {
	if name == "" || len(name) > 128 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}
