package planfix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const commentFields = "id,description,owner,dateTime,task,project"

type commentPayload struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Owner       *shortRef  `json:"owner"`
	DateTime    *timePoint `json:"dateTime"`
	Task        *shortRef  `json:"task"`
	Project     *shortRef  `json:"project"`
}

func (p commentPayload) toDomain() Comment {
	comment := Comment{
		ID:        p.ID,
		Body:      p.Description,
		CreatedAt: p.DateTime.toTime(),
	}
	if p.Owner != nil {
		comment.AuthorID = p.Owner.ID.String()
		comment.AuthorName = p.Owner.Name
	}
	if p.Task != nil {
		comment.TaskID = p.Task.ID.Int()
	}
	if p.Project != nil {
		comment.ProjectID = p.Project.ID.Int()
	}
	return comment
}

type commentEnvelope struct {
	Comment commentPayload `json:"comment"`
	ID      int            `json:"id"`
}

type commentListEnvelope struct {
	Comments []commentPayload `json:"comments"`
}

// CommentFilter scopes a comment listing to a task or a project. At most one
// of TaskID and ProjectID may be set; with neither, account-wide comments are
// returned.
type CommentFilter struct {
	TaskID    int
	ProjectID int
	Limit     int
	Offset    int
}

// ListComments returns comments for a task, a project, or the whole account.
func (c *Client) ListComments(ctx context.Context, filter CommentFilter) ([]Comment, error) {
	limit, offset, err := normalizeWindow(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	if filter.TaskID > 0 && filter.ProjectID > 0 {
		return nil, NewError(CategoryValidation, "filter by either task or project, not both")
	}

	path := "comment/list"
	switch {
	case filter.TaskID > 0:
		path = fmt.Sprintf("task/%d/comments/list", filter.TaskID)
	case filter.ProjectID > 0:
		path = fmt.Sprintf("project/%d/comments/list", filter.ProjectID)
	}

	comments := make([]Comment, 0, limit)
	err = c.paginate(ctx, limit, offset, func(ctx context.Context, pageOffset, pageSize int) (int, error) {
		body, err := c.do(ctx, apiRequest{
			method: http.MethodPost,
			path:   path,
			body: map[string]any{
				"offset":   pageOffset,
				"pageSize": pageSize,
				"fields":   commentFields,
			},
		})
		if err != nil {
			return 0, err
		}
		var envelope commentListEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return 0, NewError(CategoryRemoteRejected, "planfix returned an unreadable comment list")
		}
		for _, payload := range envelope.Comments {
			comments = append(comments, payload.toDomain())
		}
		return len(envelope.Comments), nil
	})
	if err != nil {
		return nil, err
	}
	if len(comments) > limit {
		comments = comments[:limit]
	}
	return comments, nil
}

// CommentCreate is the input for AddComment.
type CommentCreate struct {
	TaskID int
	Body   string
	// IdempotencyKey, when set, makes the create safe to retry on 5xx.
	IdempotencyKey string
}

// AddComment posts a comment on a task and returns the server's echo.
func (c *Client) AddComment(ctx context.Context, in CommentCreate) (Comment, error) {
	if in.TaskID <= 0 {
		return Comment{}, NewError(CategoryValidation, "task id must be a positive integer")
	}
	if strings.TrimSpace(in.Body) == "" {
		return Comment{}, NewError(CategoryValidation, "comment body is required")
	}

	body, err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   fmt.Sprintf("task/%d/comments/", in.TaskID),
		body: map[string]any{
			"description": in.Body,
		},
		write:          true,
		idempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		return Comment{}, err
	}
	var envelope commentEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Comment{}, NewError(CategoryRemoteRejected, "planfix returned an unreadable comment")
	}
	comment := envelope.Comment.toDomain()
	if comment.ID == 0 && envelope.ID > 0 {
		comment.ID = envelope.ID
	}
	if comment.TaskID == 0 {
		comment.TaskID = in.TaskID
	}
	if comment.Body == "" {
		comment.Body = in.Body
	}
	return comment, nil
}
