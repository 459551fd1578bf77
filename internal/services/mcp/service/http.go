package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/louisbranch/actionconsole/internal/platform/httpx"
	"github.com/louisbranch/actionconsole/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HTTPHandler serves the streamable HTTP transport behind the shared request
// middleware.
func (s *Server) HTTPHandler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	return httpx.Chain(streamable,
		httpx.RecoverPanic(s.logger),
		httpx.RequestID("mcp"),
		httpx.RequestLogger(s.logger),
	)
}

// ListenAndServe serves HTTPHandler on addr until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.HTTPHandler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()
	s.logger.Printf("MCP HTTP transport listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown MCP http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP http: %w", err)
	}
}
