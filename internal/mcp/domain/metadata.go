package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// invocationIDKey is the result metadata key carrying the tool invocation id.
const invocationIDKey = "planfix.invocation_id"

// apiCallTimeout caps one tool or resource handler call, retries included.
// The retry schedule fits well inside this envelope.
const apiCallTimeout = 2 * time.Minute

// NewInvocationID generates a correlation identifier for a tool call.
func NewInvocationID() string {
	return uuid.NewString()
}

// CallToolResultWithMetadata builds a tool result carrying the invocation id
// so clients can correlate logs with calls.
func CallToolResultWithMetadata(invocationID string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Meta: map[string]any{
			invocationIDKey: invocationID,
		},
	}
}

// formatTime renders a timestamp for protocol output, empty when unset.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
