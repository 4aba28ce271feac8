package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"planfixmcp/internal/planfix"
)

// ProjectCreateInput represents the MCP tool input for project creation.
type ProjectCreateInput struct {
	Name           string `json:"name" jsonschema:"project name"`
	Description    string `json:"description,omitempty" jsonschema:"project description"`
	IdempotencyKey string `json:"idempotency_key,omitempty" jsonschema:"caller-supplied key making the create safe to retry"`
}

// ProjectEntry represents one project in MCP output.
type ProjectEntry struct {
	ID          int    `json:"id" jsonschema:"project identifier"`
	Name        string `json:"name" jsonschema:"project name"`
	Description string `json:"description,omitempty" jsonschema:"project description"`
	OwnerName   string `json:"owner_name,omitempty" jsonschema:"project owner display name"`
	TaskCount   int    `json:"task_count" jsonschema:"number of tasks in the project"`
}

// ProjectCreateResult represents the MCP tool output for project creation.
type ProjectCreateResult struct {
	Project ProjectEntry `json:"project" jsonschema:"created project as echoed by the server"`
}

// ProjectCreateTool defines the MCP tool schema for project creation.
func ProjectCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_project",
		Description: "Creates a project",
	}
}

func projectEntryFromDomain(project planfix.Project) ProjectEntry {
	return ProjectEntry{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerName:   project.OwnerName,
		TaskCount:   project.TaskCount,
	}
}

// ProjectCreateHandler executes a project creation request.
func ProjectCreateHandler(api ProjectAPI) mcp.ToolHandlerFor[ProjectCreateInput, ProjectCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectCreateInput) (*mcp.CallToolResult, ProjectCreateResult, error) {
		invocationID := NewInvocationID()
		if strings.TrimSpace(input.Name) == "" {
			return nil, ProjectCreateResult{}, fmt.Errorf("name is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		project, err := api.CreateProject(runCtx, planfix.ProjectCreate{
			Name:           input.Name,
			Description:    input.Description,
			IdempotencyKey: input.IdempotencyKey,
		})
		if err != nil {
			return nil, ProjectCreateResult{}, operationError("project create", err)
		}
		return CallToolResultWithMetadata(invocationID), ProjectCreateResult{Project: projectEntryFromDomain(project)}, nil
	}
}
