package planfix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const projectFields = "id,name,description,owner,taskCount,startDate,endDate"

type projectPayload struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       *shortRef `json:"owner"`
	TaskCount   int       `json:"taskCount"`
}

func (p projectPayload) toDomain() Project {
	project := Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		TaskCount:   p.TaskCount,
	}
	if p.Owner != nil {
		project.OwnerName = p.Owner.Name
	}
	return project
}

type projectEnvelope struct {
	Project projectPayload `json:"project"`
	ID      int            `json:"id"`
}

type projectListEnvelope struct {
	Projects []projectPayload `json:"projects"`
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, id int) (Project, error) {
	if id <= 0 {
		return Project{}, NewError(CategoryValidation, "project id must be a positive integer")
	}
	body, err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("project/%d", id),
		query:  fieldsQuery(projectFields),
	})
	if err != nil {
		return Project{}, err
	}
	var envelope projectEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Project{}, NewError(CategoryRemoteRejected, "planfix returned an unreadable project")
	}
	return envelope.Project.toDomain(), nil
}

// ListProjects returns projects within the account.
func (c *Client) ListProjects(ctx context.Context, limit, offset int) ([]Project, error) {
	limit, offset, err := normalizeWindow(limit, offset)
	if err != nil {
		return nil, err
	}

	projects := make([]Project, 0, limit)
	err = c.paginate(ctx, limit, offset, func(ctx context.Context, pageOffset, pageSize int) (int, error) {
		body, err := c.do(ctx, apiRequest{
			method: http.MethodPost,
			path:   "project/list",
			body: map[string]any{
				"offset":   pageOffset,
				"pageSize": pageSize,
				"fields":   projectFields,
			},
		})
		if err != nil {
			return 0, err
		}
		var envelope projectListEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return 0, NewError(CategoryRemoteRejected, "planfix returned an unreadable project list")
		}
		for _, payload := range envelope.Projects {
			projects = append(projects, payload.toDomain())
		}
		return len(envelope.Projects), nil
	})
	if err != nil {
		return nil, err
	}
	if len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}

// ProjectCreate is the input for CreateProject.
type ProjectCreate struct {
	Name        string
	Description string
	// IdempotencyKey, when set, makes the create safe to retry on 5xx.
	IdempotencyKey string
}

// CreateProject creates a project and returns the server's echo.
func (c *Client) CreateProject(ctx context.Context, in ProjectCreate) (Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Project{}, NewError(CategoryValidation, "project name is required")
	}
	body, err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "project/",
		body: map[string]any{
			"name":        in.Name,
			"description": in.Description,
		},
		write:          true,
		idempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		return Project{}, err
	}
	var envelope projectEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Project{}, NewError(CategoryRemoteRejected, "planfix returned an unreadable project")
	}
	if envelope.Project.ID != 0 || envelope.Project.Name != "" {
		return envelope.Project.toDomain(), nil
	}
	if envelope.ID > 0 {
		return c.GetProject(ctx, envelope.ID)
	}
	return Project{}, nil
}
