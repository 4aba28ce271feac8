// Package service tests the MCP server wiring.
package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"planfixmcp/internal/planfix"
)

// failingTransport returns a connection error for tests.
type failingTransport struct{}

func (f failingTransport) Connect(context.Context) (mcp.Connection, error) {
	return nil, errors.New("transport failure")
}

func testClient(t *testing.T) *planfix.Client {
	t.Helper()
	client, err := planfix.New(planfix.Config{Account: "testco", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("planfix.New: %v", err)
	}
	return client
}

func TestRegistrationModules(t *testing.T) {
	modules := registrationModules()

	want := map[string]registrationKind{
		"task-tools":          registrationKindTools,
		"contact-tools":       registrationKindTools,
		"project-tools":       registrationKindTools,
		"directory-tools":     registrationKindTools,
		"workspace-resources": registrationKindResources,
		"planning-prompts":    registrationKindPrompts,
	}
	if len(modules) != len(want) {
		t.Fatalf("expected %d modules, got %d", len(want), len(modules))
	}
	seen := map[string]bool{}
	for _, module := range modules {
		kind, ok := want[module.name]
		if !ok {
			t.Errorf("unexpected module %q", module.name)
			continue
		}
		if module.kind != kind {
			t.Errorf("module %q has kind %d, want %d", module.name, module.kind, kind)
		}
		if module.register == nil {
			t.Errorf("module %q has no register function", module.name)
		}
		if seen[module.name] {
			t.Errorf("module %q registered twice", module.name)
		}
		seen[module.name] = true
	}
}

func TestNewServer(t *testing.T) {
	server := newServer(testClient(t))
	if server.mcpServer == nil {
		t.Fatal("expected a configured MCP server")
	}
	if server.client == nil {
		t.Fatal("expected a configured API client")
	}
	server.Close()
	if server.client != nil {
		t.Error("expected Close to release the client")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(planfix.Config{Account: "testco"}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestServeWithTransport(t *testing.T) {
	t.Run("unconfigured server", func(t *testing.T) {
		var server *Server
		if err := server.serveWithTransport(context.Background(), &mcp.StdioTransport{}); err == nil {
			t.Fatal("expected error for nil server")
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		server := newServer(testClient(t))
		err := server.serveWithTransport(context.Background(), failingTransport{})
		if err == nil {
			t.Fatal("expected error from failing transport")
		}
		if !strings.Contains(err.Error(), "serve MCP") {
			t.Errorf("unexpected error: %v", err)
		}
		if server.client != nil {
			t.Error("expected the client to be released after serving")
		}
	})
}

func TestCompletionHandler(t *testing.T) {
	result, err := completionHandler(context.Background(), &mcp.CompleteRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || result.Completion.Values == nil {
		t.Fatal("expected an empty completion list, not nil")
	}
	if len(result.Completion.Values) != 0 {
		t.Errorf("expected no completions, got %v", result.Completion.Values)
	}
}

func TestResourceSubscribeHandlers(t *testing.T) {
	valid := &mcp.SubscribeRequest{Params: &mcp.SubscribeParams{URI: "projects://list"}}
	if err := resourceSubscribeHandler(context.Background(), valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	empty := &mcp.SubscribeRequest{Params: &mcp.SubscribeParams{URI: "  "}}
	if err := resourceSubscribeHandler(context.Background(), empty); err == nil {
		t.Error("expected error for blank URI")
	}

	validUnsub := &mcp.UnsubscribeRequest{Params: &mcp.UnsubscribeParams{URI: "projects://list"}}
	if err := resourceUnsubscribeHandler(context.Background(), validUnsub); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := resourceUnsubscribeHandler(context.Background(), &mcp.UnsubscribeRequest{}); err == nil {
		t.Error("expected error for missing params")
	}
}

func TestHandleHealth(t *testing.T) {
	t.Run("GET", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handleHealth(recorder, httptest.NewRequest(http.MethodGet, "/mcp/health", nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		if !strings.Contains(recorder.Body.String(), `"status":"ok"`) {
			t.Errorf("unexpected body: %s", recorder.Body.String())
		}
	})

	t.Run("POST is rejected", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handleHealth(recorder, httptest.NewRequest(http.MethodPost, "/mcp/health", nil))
		if recorder.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", recorder.Code)
		}
	})
}
