package planfix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// taskFields is the field set requested for task reads.
const taskFields = "id,name,description,priority,status,assigner,assignees,project,startDateTime,endDateTime,createdDate"

// Planfix filter type identifiers for task/list.
const (
	filterTypeAssignee = 2
	filterTypeProject  = 5
	filterTypeName     = 8
	filterTypeStatus   = 10
)

// TaskFilter narrows a task search. Zero values place no constraint.
type TaskFilter struct {
	// Query matches against the task name.
	Query string
	// ProjectID restricts to one project.
	ProjectID int
	// AssigneeID restricts to one assignee user id.
	AssigneeID int
	// Status is one of "active", "completed", or "all". Empty means active.
	Status string
	// Limit caps the total number of returned tasks. Defaults to 20.
	Limit int
	// Offset skips that many records.
	Offset int
}

type taskListFilter struct {
	Type     int    `json:"type"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

type taskListRequest struct {
	Offset   int              `json:"offset"`
	PageSize int              `json:"pageSize"`
	Fields   string           `json:"fields"`
	Filters  []taskListFilter `json:"filters,omitempty"`
}

type taskPayload struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	Status        *statusRef `json:"status"`
	Assigner      *shortRef  `json:"assigner"`
	Assignees     *peopleRef `json:"assignees"`
	Project       *shortRef  `json:"project"`
	StartDateTime *timePoint `json:"startDateTime"`
	EndDateTime   *timePoint `json:"endDateTime"`
	CreatedDate   *timePoint `json:"createdDate"`
}

func (p taskPayload) toDomain() Task {
	task := Task{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Priority:    ParsePriority(p.Priority),
		CreatedAt:   p.CreatedDate.toTime(),
		DueAt:       p.EndDateTime.toTime(),
	}
	if p.Status != nil {
		task.Status = TaskStatus{
			ID:   p.Status.ID,
			Name: p.Status.Name,
			Kind: statusKindFromName(p.Status.Name),
		}
	} else {
		task.Status = TaskStatus{Kind: StatusUnknown}
	}
	if assignee, ok := p.Assignees.first(); ok {
		task.AssigneeID = assignee.ID.String()
		task.AssigneeName = assignee.Name
	} else if p.Assigner != nil {
		task.AssigneeID = p.Assigner.ID.String()
		task.AssigneeName = p.Assigner.Name
	}
	if p.Project != nil {
		task.ProjectID = p.Project.ID.Int()
		task.ProjectName = p.Project.Name
	}
	return task
}

type taskEnvelope struct {
	Task taskPayload `json:"task"`
	ID   int         `json:"id"`
}

type taskListEnvelope struct {
	Tasks []taskPayload `json:"tasks"`
}

// filters translates the caller's filter fields into Planfix filter objects.
func (f TaskFilter) filters() []taskListFilter {
	var filters []taskListFilter
	if f.Query != "" {
		filters = append(filters, taskListFilter{Type: filterTypeName, Operator: "contains", Value: f.Query})
	}
	if f.ProjectID > 0 {
		filters = append(filters, taskListFilter{Type: filterTypeProject, Operator: "equal", Value: f.ProjectID})
	}
	if f.AssigneeID > 0 {
		filters = append(filters, taskListFilter{Type: filterTypeAssignee, Operator: "equal", Value: fmt.Sprintf("user:%d", f.AssigneeID)})
	}
	if status := strings.TrimSpace(f.Status); status != "" && status != "all" {
		filters = append(filters, taskListFilter{Type: filterTypeStatus, Operator: "equal", Value: status})
	}
	return filters
}

// SearchTasks returns tasks matching the filter, paginating until the limit
// is satisfied or the service runs out of pages. The returned sequence never
// exceeds the requested limit.
func (c *Client) SearchTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	limit, offset, err := normalizeWindow(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	switch filter.Status {
	case "", "active", "completed", "all":
	default:
		return nil, NewError(CategoryValidation, "status must be one of: active, completed, all")
	}

	tasks := make([]Task, 0, limit)
	err = c.paginate(ctx, limit, offset, func(ctx context.Context, pageOffset, pageSize int) (int, error) {
		body, err := c.do(ctx, apiRequest{
			method: http.MethodPost,
			path:   "task/list",
			body: taskListRequest{
				Offset:   pageOffset,
				PageSize: pageSize,
				Fields:   taskFields,
				Filters:  filter.filters(),
			},
		})
		if err != nil {
			return 0, err
		}
		var envelope taskListEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return 0, NewError(CategoryRemoteRejected, "planfix returned an unreadable task list")
		}
		for _, payload := range envelope.Tasks {
			tasks = append(tasks, payload.toDomain())
		}
		return len(envelope.Tasks), nil
	})
	if err != nil {
		return nil, err
	}
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, id int) (Task, error) {
	if id <= 0 {
		return Task{}, NewError(CategoryValidation, "task id must be a positive integer")
	}
	body, err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("task/%d", id),
		query:  fieldsQuery(taskFields),
	})
	if err != nil {
		return Task{}, err
	}
	var envelope taskEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Task{}, NewError(CategoryRemoteRejected, "planfix returned an unreadable task")
	}
	return envelope.Task.toDomain(), nil
}

// TaskCreate is the input for CreateTask.
type TaskCreate struct {
	Name        string
	Description string
	Priority    Priority
	ProjectID   int
	AssigneeID  string
	// DueDate is an optional due date in YYYY-MM-DD form.
	DueDate string
	// IdempotencyKey, when set, makes the create safe to retry on 5xx.
	IdempotencyKey string
}

type taskCreateRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Project     *idRef     `json:"project,omitempty"`
	Assignees   *usersRef  `json:"assignees,omitempty"`
	EndDateTime *timePoint `json:"endDateTime,omitempty"`
}

type idRef struct {
	ID any `json:"id"`
}

type usersRef struct {
	Users []idRef `json:"users"`
}

// CreateTask creates a task and returns the server's authoritative echo.
// When the create response carries only the new id, the task is fetched back.
func (c *Client) CreateTask(ctx context.Context, in TaskCreate) (Task, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Task{}, NewError(CategoryValidation, "task name is required")
	}

	request := taskCreateRequest{
		Name:        in.Name,
		Description: in.Description,
		EndDateTime: datePoint(in.DueDate),
	}
	if in.Priority != "" && in.Priority != PriorityUnknown {
		request.Priority = string(in.Priority)
	}
	if in.ProjectID > 0 {
		request.Project = &idRef{ID: in.ProjectID}
	}
	if in.AssigneeID != "" {
		request.Assignees = &usersRef{Users: []idRef{{ID: in.AssigneeID}}}
	}

	body, err := c.do(ctx, apiRequest{
		method:         http.MethodPost,
		path:           "task/",
		body:           request,
		write:          true,
		idempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		return Task{}, err
	}
	return c.taskEcho(ctx, body)
}

// UpdateTaskStatus moves a task to the given status and returns the echo.
func (c *Client) UpdateTaskStatus(ctx context.Context, id, statusID int, idempotencyKey string) (Task, error) {
	if id <= 0 {
		return Task{}, NewError(CategoryValidation, "task id must be a positive integer")
	}
	if statusID <= 0 {
		return Task{}, NewError(CategoryValidation, "status id must be a positive integer")
	}
	body, err := c.do(ctx, apiRequest{
		method:         http.MethodPost,
		path:           fmt.Sprintf("task/%d", id),
		body:           map[string]any{"status": idRef{ID: statusID}},
		write:          true,
		idempotencyKey: idempotencyKey,
	})
	if err != nil {
		return Task{}, err
	}
	task, err := c.taskEcho(ctx, body)
	if err != nil {
		return Task{}, err
	}
	if task.ID == 0 {
		// Update responses may carry no payload at all; fetch the
		// authoritative state.
		return c.GetTask(ctx, id)
	}
	return task, nil
}

// taskEcho decodes a write response that carries either the full task or just
// its id, fetching the task back in the latter case.
func (c *Client) taskEcho(ctx context.Context, body []byte) (Task, error) {
	var envelope taskEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Task{}, NewError(CategoryRemoteRejected, "planfix returned an unreadable task")
	}
	if envelope.Task.ID != 0 || envelope.Task.Name != "" {
		return envelope.Task.toDomain(), nil
	}
	if envelope.ID > 0 {
		return c.GetTask(ctx, envelope.ID)
	}
	return Task{}, nil
}
