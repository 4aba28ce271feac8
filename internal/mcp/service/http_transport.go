package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// defaultHTTPAddr binds to the loopback interface only. Exposing the
	// server beyond localhost requires an explicit address.
	defaultHTTPAddr = "localhost:8700"
	// httpShutdownTimeout bounds graceful shutdown of in-flight requests.
	httpShutdownTimeout = 30 * time.Second
)

// serveHTTP runs the MCP server over streamable HTTP until the context ends.
// The handler is mounted at /mcp; /mcp/health answers liveness probes.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if addr == "" {
		addr = defaultHTTPAddr
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.HandleFunc("/mcp/health", handleHealth)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("MCP HTTP server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var err error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			err = fmt.Errorf("shutdown HTTP server: %w", shutdownErr)
		}
	case serveErr := <-errChan:
		err = fmt.Errorf("HTTP server error: %w", serveErr)
	}

	s.Close()
	return err
}

// handleHealth reports server liveness for load balancers and probes.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","server":%q,"version":%q}`, serverName, serverVersion)
}
