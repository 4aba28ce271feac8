package planfix

import (
	"context"
	"encoding/json"
	"net/http"
)

const processFields = "id,name,description,status,createdDate"

type processPayload struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      *struct {
		Name string `json:"name"`
	} `json:"status"`
	CreatedDate *timePoint `json:"createdDate"`
}

func (p processPayload) toDomain() Process {
	process := Process{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedDate.toTime(),
	}
	if p.Status != nil {
		process.Status = p.Status.Name
	}
	return process
}

type processListEnvelope struct {
	Processes []processPayload `json:"processes"`
}

// ListProcesses returns the account's business process definitions.
func (c *Client) ListProcesses(ctx context.Context, limit, offset int) ([]Process, error) {
	limit, offset, err := normalizeWindow(limit, offset)
	if err != nil {
		return nil, err
	}

	processes := make([]Process, 0, limit)
	err = c.paginate(ctx, limit, offset, func(ctx context.Context, pageOffset, pageSize int) (int, error) {
		body, err := c.do(ctx, apiRequest{
			method: http.MethodPost,
			path:   "process/list",
			body: map[string]any{
				"offset":   pageOffset,
				"pageSize": pageSize,
				"fields":   processFields,
			},
		})
		if err != nil {
			return 0, err
		}
		var envelope processListEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return 0, NewError(CategoryRemoteRejected, "planfix returned an unreadable process list")
		}
		for _, payload := range envelope.Processes {
			processes = append(processes, payload.toDomain())
		}
		return len(envelope.Processes), nil
	})
	if err != nil {
		return nil, err
	}
	if len(processes) > limit {
		processes = processes[:limit]
	}
	return processes, nil
}
