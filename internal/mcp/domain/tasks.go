package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"planfixmcp/internal/planfix"
)

// TaskSearchInput represents the MCP tool input for task search.
type TaskSearchInput struct {
	Query      string `json:"query,omitempty" jsonschema:"text matched against task names"`
	ProjectID  int    `json:"project_id,omitempty" jsonschema:"restrict to one project"`
	AssigneeID int    `json:"assignee_id,omitempty" jsonschema:"restrict to one assignee user id"`
	Status     string `json:"status,omitempty" jsonschema:"task status filter (active, completed, all; default active)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of results (1-100, default 20)"`
	Offset     int    `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Page       int    `json:"page,omitempty" jsonschema:"1-based page number, alternative to offset"`
}

// TaskEntry represents one task in MCP tool output.
type TaskEntry struct {
	ID           int    `json:"id" jsonschema:"task identifier"`
	Name         string `json:"name" jsonschema:"task name"`
	Description  string `json:"description,omitempty" jsonschema:"task description"`
	Status       string `json:"status" jsonschema:"account status name"`
	StatusKind   string `json:"status_kind" jsonschema:"stable status bucket (active, completed, overdue, draft, unknown)"`
	Priority     string `json:"priority" jsonschema:"task priority (LOW, NORMAL, HIGH, URGENT, UNKNOWN)"`
	AssigneeID   string `json:"assignee_id,omitempty" jsonschema:"assignee user identifier"`
	AssigneeName string `json:"assignee_name,omitempty" jsonschema:"assignee display name"`
	ProjectID    int    `json:"project_id,omitempty" jsonschema:"project identifier"`
	ProjectName  string `json:"project_name,omitempty" jsonschema:"project name"`
	CreatedAt    string `json:"created_at,omitempty" jsonschema:"RFC3339 creation timestamp"`
	DueAt        string `json:"due_at,omitempty" jsonschema:"RFC3339 due timestamp"`
}

// TaskSearchResult represents the MCP tool output for task search.
type TaskSearchResult struct {
	Tasks []TaskEntry `json:"tasks" jsonschema:"matching tasks, at most limit entries"`
	Count int         `json:"count" jsonschema:"number of returned tasks"`
}

// TaskGetInput represents the MCP tool input for a single task read.
type TaskGetInput struct {
	TaskID int `json:"task_id" jsonschema:"task identifier"`
}

// TaskGetResult represents the MCP tool output for a single task read.
type TaskGetResult struct {
	Task TaskEntry `json:"task" jsonschema:"task detail"`
}

// TaskCreateInput represents the MCP tool input for task creation.
type TaskCreateInput struct {
	Name           string `json:"name" jsonschema:"task name"`
	Description    string `json:"description,omitempty" jsonschema:"task description"`
	Priority       string `json:"priority,omitempty" jsonschema:"task priority (LOW, NORMAL, HIGH, URGENT)"`
	ProjectID      int    `json:"project_id,omitempty" jsonschema:"project to create the task in"`
	AssigneeID     string `json:"assignee_id,omitempty" jsonschema:"assignee user identifier"`
	DueDate        string `json:"due_date,omitempty" jsonschema:"due date in YYYY-MM-DD form"`
	IdempotencyKey string `json:"idempotency_key,omitempty" jsonschema:"caller-supplied key making the create safe to retry"`
}

// TaskCreateResult represents the MCP tool output for task creation.
type TaskCreateResult struct {
	Task TaskEntry `json:"task" jsonschema:"created task as echoed by the server"`
}

// TaskStatusUpdateInput represents the MCP tool input for status changes.
type TaskStatusUpdateInput struct {
	TaskID         int    `json:"task_id" jsonschema:"task identifier"`
	StatusID       int    `json:"status_id" jsonschema:"target status identifier"`
	IdempotencyKey string `json:"idempotency_key,omitempty" jsonschema:"caller-supplied key making the update safe to retry"`
}

// TaskStatusUpdateResult represents the MCP tool output for status changes.
type TaskStatusUpdateResult struct {
	Task TaskEntry `json:"task" jsonschema:"task after the status change"`
}

// CommentAddInput represents the MCP tool input for posting a task comment.
type CommentAddInput struct {
	TaskID         int    `json:"task_id" jsonschema:"task identifier"`
	Body           string `json:"body" jsonschema:"comment text"`
	IdempotencyKey string `json:"idempotency_key,omitempty" jsonschema:"caller-supplied key making the create safe to retry"`
}

// CommentEntry represents one comment in MCP tool output.
type CommentEntry struct {
	ID         int    `json:"id" jsonschema:"comment identifier"`
	TaskID     int    `json:"task_id,omitempty" jsonschema:"task the comment belongs to"`
	ProjectID  int    `json:"project_id,omitempty" jsonschema:"project the comment belongs to"`
	AuthorID   string `json:"author_id,omitempty" jsonschema:"author user identifier"`
	AuthorName string `json:"author_name,omitempty" jsonschema:"author display name"`
	Body       string `json:"body" jsonschema:"comment text"`
	CreatedAt  string `json:"created_at,omitempty" jsonschema:"RFC3339 creation timestamp"`
}

// CommentAddResult represents the MCP tool output for posting a comment.
type CommentAddResult struct {
	Comment CommentEntry `json:"comment" jsonschema:"created comment"`
}

// CommentListInput represents the MCP tool input for listing comments.
type CommentListInput struct {
	TaskID    int `json:"task_id,omitempty" jsonschema:"list comments of this task"`
	ProjectID int `json:"project_id,omitempty" jsonschema:"list comments of this project"`
	Limit     int `json:"limit,omitempty" jsonschema:"maximum number of results (1-100, default 20)"`
	Offset    int `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Page      int `json:"page,omitempty" jsonschema:"1-based page number, alternative to offset"`
}

// CommentListResult represents the MCP tool output for listing comments.
type CommentListResult struct {
	Comments []CommentEntry `json:"comments" jsonschema:"comments, newest last"`
	Count    int            `json:"count" jsonschema:"number of returned comments"`
}

// FileListInput represents the MCP tool input for listing file attachments.
type FileListInput struct {
	TaskID    int `json:"task_id,omitempty" jsonschema:"list files of this task"`
	ProjectID int `json:"project_id,omitempty" jsonschema:"list files of this project"`
	Limit     int `json:"limit,omitempty" jsonschema:"maximum number of results (1-100, default 20)"`
	Offset    int `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Page      int `json:"page,omitempty" jsonschema:"1-based page number, alternative to offset"`
}

// FileEntry represents one file attachment in MCP tool output.
type FileEntry struct {
	ID          int    `json:"id" jsonschema:"file identifier"`
	TaskID      int    `json:"task_id,omitempty" jsonschema:"task the file is attached to"`
	ProjectID   int    `json:"project_id,omitempty" jsonschema:"project the file is attached to"`
	Name        string `json:"name" jsonschema:"file name"`
	Size        int64  `json:"size" jsonschema:"file size in bytes"`
	DownloadURL string `json:"download_url,omitempty" jsonschema:"download link"`
}

// FileListResult represents the MCP tool output for listing files.
type FileListResult struct {
	Files []FileEntry `json:"files" jsonschema:"file attachments"`
	Count int         `json:"count" jsonschema:"number of returned files"`
}

// TaskSearchTool defines the MCP tool schema for task search.
func TaskSearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_tasks",
		Description: "Searches tasks by name, project, assignee, and status",
	}
}

// TaskGetTool defines the MCP tool schema for a single task read.
func TaskGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_task",
		Description: "Fetches one task with its full detail",
	}
}

// TaskCreateTool defines the MCP tool schema for task creation.
func TaskCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_task",
		Description: "Creates a task, optionally assigned, dated, and placed in a project",
	}
}

// TaskStatusUpdateTool defines the MCP tool schema for status changes.
func TaskStatusUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_task_status",
		Description: "Moves a task to another status",
	}
}

// CommentAddTool defines the MCP tool schema for posting a comment.
func CommentAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_comment",
		Description: "Posts a comment on a task",
	}
}

// CommentListTool defines the MCP tool schema for listing comments.
func CommentListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_comments",
		Description: "Lists comments of a task, a project, or the whole account",
	}
}

// FileListTool defines the MCP tool schema for listing files.
func FileListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_files",
		Description: "Lists file attachments, optionally scoped to a task or project",
	}
}

func taskEntryFromDomain(task planfix.Task) TaskEntry {
	return TaskEntry{
		ID:           task.ID,
		Name:         task.Name,
		Description:  task.Description,
		Status:       task.Status.Name,
		StatusKind:   string(task.Status.Kind),
		Priority:     string(task.Priority),
		AssigneeID:   task.AssigneeID,
		AssigneeName: task.AssigneeName,
		ProjectID:    task.ProjectID,
		ProjectName:  task.ProjectName,
		CreatedAt:    formatTime(task.CreatedAt),
		DueAt:        formatTime(task.DueAt),
	}
}

func commentEntryFromDomain(comment planfix.Comment) CommentEntry {
	return CommentEntry{
		ID:         comment.ID,
		TaskID:     comment.TaskID,
		ProjectID:  comment.ProjectID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		Body:       comment.Body,
		CreatedAt:  formatTime(comment.CreatedAt),
	}
}

// TaskSearchHandler executes a task search request.
func TaskSearchHandler(api TaskAPI) mcp.ToolHandlerFor[TaskSearchInput, TaskSearchResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TaskSearchInput) (*mcp.CallToolResult, TaskSearchResult, error) {
		invocationID := NewInvocationID()
		limit, offset, err := resolveWindow(input.Limit, input.Offset, input.Page)
		if err != nil {
			return nil, TaskSearchResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		tasks, err := api.SearchTasks(runCtx, planfix.TaskFilter{
			Query:      input.Query,
			ProjectID:  input.ProjectID,
			AssigneeID: input.AssigneeID,
			Status:     input.Status,
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			return nil, TaskSearchResult{}, operationError("task search", err)
		}

		result := TaskSearchResult{Tasks: make([]TaskEntry, 0, len(tasks)), Count: len(tasks)}
		for _, task := range tasks {
			result.Tasks = append(result.Tasks, taskEntryFromDomain(task))
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// TaskGetHandler executes a single task read.
func TaskGetHandler(api TaskAPI) mcp.ToolHandlerFor[TaskGetInput, TaskGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TaskGetInput) (*mcp.CallToolResult, TaskGetResult, error) {
		invocationID := NewInvocationID()
		if input.TaskID <= 0 {
			return nil, TaskGetResult{}, fmt.Errorf("task_id is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		task, err := api.GetTask(runCtx, input.TaskID)
		if err != nil {
			return nil, TaskGetResult{}, operationError("task read", err)
		}
		return CallToolResultWithMetadata(invocationID), TaskGetResult{Task: taskEntryFromDomain(task)}, nil
	}
}

// TaskCreateHandler executes a task creation request.
func TaskCreateHandler(api TaskAPI) mcp.ToolHandlerFor[TaskCreateInput, TaskCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TaskCreateInput) (*mcp.CallToolResult, TaskCreateResult, error) {
		invocationID := NewInvocationID()
		if strings.TrimSpace(input.Name) == "" {
			return nil, TaskCreateResult{}, fmt.Errorf("name is required")
		}
		priority := planfix.Priority("")
		if input.Priority != "" {
			priority = planfix.ParsePriority(input.Priority)
			if priority == planfix.PriorityUnknown {
				return nil, TaskCreateResult{}, fmt.Errorf("priority must be one of: LOW, NORMAL, HIGH, URGENT")
			}
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		task, err := api.CreateTask(runCtx, planfix.TaskCreate{
			Name:           input.Name,
			Description:    input.Description,
			Priority:       priority,
			ProjectID:      input.ProjectID,
			AssigneeID:     input.AssigneeID,
			DueDate:        input.DueDate,
			IdempotencyKey: input.IdempotencyKey,
		})
		if err != nil {
			return nil, TaskCreateResult{}, operationError("task create", err)
		}
		return CallToolResultWithMetadata(invocationID), TaskCreateResult{Task: taskEntryFromDomain(task)}, nil
	}
}

// TaskStatusUpdateHandler executes a task status change.
func TaskStatusUpdateHandler(api TaskAPI) mcp.ToolHandlerFor[TaskStatusUpdateInput, TaskStatusUpdateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TaskStatusUpdateInput) (*mcp.CallToolResult, TaskStatusUpdateResult, error) {
		invocationID := NewInvocationID()
		if input.TaskID <= 0 {
			return nil, TaskStatusUpdateResult{}, fmt.Errorf("task_id is required")
		}
		if input.StatusID <= 0 {
			return nil, TaskStatusUpdateResult{}, fmt.Errorf("status_id is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		task, err := api.UpdateTaskStatus(runCtx, input.TaskID, input.StatusID, input.IdempotencyKey)
		if err != nil {
			return nil, TaskStatusUpdateResult{}, operationError("task status update", err)
		}
		return CallToolResultWithMetadata(invocationID), TaskStatusUpdateResult{Task: taskEntryFromDomain(task)}, nil
	}
}

// CommentAddHandler executes a comment creation request.
func CommentAddHandler(api CollaborationAPI) mcp.ToolHandlerFor[CommentAddInput, CommentAddResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CommentAddInput) (*mcp.CallToolResult, CommentAddResult, error) {
		invocationID := NewInvocationID()
		if input.TaskID <= 0 {
			return nil, CommentAddResult{}, fmt.Errorf("task_id is required")
		}
		if strings.TrimSpace(input.Body) == "" {
			return nil, CommentAddResult{}, fmt.Errorf("body is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		comment, err := api.AddComment(runCtx, planfix.CommentCreate{
			TaskID:         input.TaskID,
			Body:           input.Body,
			IdempotencyKey: input.IdempotencyKey,
		})
		if err != nil {
			return nil, CommentAddResult{}, operationError("comment create", err)
		}
		return CallToolResultWithMetadata(invocationID), CommentAddResult{Comment: commentEntryFromDomain(comment)}, nil
	}
}

// CommentListHandler executes a comment listing request.
func CommentListHandler(api CollaborationAPI) mcp.ToolHandlerFor[CommentListInput, CommentListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CommentListInput) (*mcp.CallToolResult, CommentListResult, error) {
		invocationID := NewInvocationID()
		limit, offset, err := resolveWindow(input.Limit, input.Offset, input.Page)
		if err != nil {
			return nil, CommentListResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		comments, err := api.ListComments(runCtx, planfix.CommentFilter{
			TaskID:    input.TaskID,
			ProjectID: input.ProjectID,
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			return nil, CommentListResult{}, operationError("comment list", err)
		}

		result := CommentListResult{Comments: make([]CommentEntry, 0, len(comments)), Count: len(comments)}
		for _, comment := range comments {
			result.Comments = append(result.Comments, commentEntryFromDomain(comment))
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// FileListHandler executes a file listing request.
func FileListHandler(api CollaborationAPI) mcp.ToolHandlerFor[FileListInput, FileListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FileListInput) (*mcp.CallToolResult, FileListResult, error) {
		invocationID := NewInvocationID()
		limit, offset, err := resolveWindow(input.Limit, input.Offset, input.Page)
		if err != nil {
			return nil, FileListResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		files, err := api.ListFiles(runCtx, planfix.FileFilter{
			TaskID:    input.TaskID,
			ProjectID: input.ProjectID,
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			return nil, FileListResult{}, operationError("file list", err)
		}

		result := FileListResult{Files: make([]FileEntry, 0, len(files)), Count: len(files)}
		for _, file := range files {
			result.Files = append(result.Files, FileEntry{
				ID:          file.ID,
				TaskID:      file.TaskID,
				ProjectID:   file.ProjectID,
				Name:        file.Name,
				Size:        file.Size,
				DownloadURL: file.DownloadURL,
			})
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}
