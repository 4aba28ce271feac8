package planfix

import (
	"context"
	"encoding/json"
	"net/http"
)

const fileFields = "id,name,size,downloadUrl,task,project"

type filePayload struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"downloadUrl"`
	Task        *shortRef `json:"task"`
	Project     *shortRef `json:"project"`
}

func (p filePayload) toDomain() File {
	file := File{
		ID:          p.ID,
		Name:        p.Name,
		Size:        p.Size,
		DownloadURL: p.DownloadURL,
	}
	if p.Task != nil {
		file.TaskID = p.Task.ID.Int()
	}
	if p.Project != nil {
		file.ProjectID = p.Project.ID.Int()
	}
	return file
}

type fileListEnvelope struct {
	Files []filePayload `json:"files"`
}

// FileFilter scopes a file listing to a task or a project. Zero values place
// no constraint.
type FileFilter struct {
	TaskID    int
	ProjectID int
	Limit     int
	Offset    int
}

// ListFiles returns file attachments, optionally scoped to one task or
// project.
func (c *Client) ListFiles(ctx context.Context, filter FileFilter) ([]File, error) {
	limit, offset, err := normalizeWindow(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, limit)
	err = c.paginate(ctx, limit, offset, func(ctx context.Context, pageOffset, pageSize int) (int, error) {
		request := map[string]any{
			"offset":   pageOffset,
			"pageSize": pageSize,
			"fields":   fileFields,
		}
		if filter.TaskID > 0 {
			request["taskId"] = filter.TaskID
		}
		if filter.ProjectID > 0 {
			request["projectId"] = filter.ProjectID
		}
		body, err := c.do(ctx, apiRequest{
			method: http.MethodPost,
			path:   "file/list",
			body:   request,
		})
		if err != nil {
			return 0, err
		}
		var envelope fileListEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return 0, NewError(CategoryRemoteRejected, "planfix returned an unreadable file list")
		}
		for _, payload := range envelope.Files {
			files = append(files, payload.toDomain())
		}
		return len(envelope.Files), nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}
