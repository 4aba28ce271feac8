package planfix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const userFields = "id,name,midname,lastname,email,position"

type userPayload struct {
	ID       flexID `json:"id"`
	Name     string `json:"name"`
	Midname  string `json:"midname"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

func (p userPayload) toDomain() Employee {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.Name, p.Midname, p.Lastname} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return Employee{
		ID:       p.ID.String(),
		Name:     strings.Join(parts, " "),
		Email:    p.Email,
		Position: p.Position,
	}
}

type userEnvelope struct {
	User userPayload `json:"user"`
}

type userListEnvelope struct {
	Users []userPayload `json:"users"`
}

// GetEmployee fetches one account user by id.
func (c *Client) GetEmployee(ctx context.Context, id int) (Employee, error) {
	if id <= 0 {
		return Employee{}, NewError(CategoryValidation, "user id must be a positive integer")
	}
	body, err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("user/%d", id),
		query:  fieldsQuery(userFields),
	})
	if err != nil {
		return Employee{}, err
	}
	var envelope userEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Employee{}, NewError(CategoryRemoteRejected, "planfix returned an unreadable user")
	}
	return envelope.User.toDomain(), nil
}

// ListEmployees returns account users.
func (c *Client) ListEmployees(ctx context.Context, limit, offset int) ([]Employee, error) {
	limit, offset, err := normalizeWindow(limit, offset)
	if err != nil {
		return nil, err
	}

	employees := make([]Employee, 0, limit)
	err = c.paginate(ctx, limit, offset, func(ctx context.Context, pageOffset, pageSize int) (int, error) {
		body, err := c.do(ctx, apiRequest{
			method: http.MethodPost,
			path:   "user/list",
			body: map[string]any{
				"offset":   pageOffset,
				"pageSize": pageSize,
				"fields":   userFields,
			},
		})
		if err != nil {
			return 0, err
		}
		var envelope userListEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return 0, NewError(CategoryRemoteRejected, "planfix returned an unreadable user list")
		}
		for _, payload := range envelope.Users {
			employees = append(employees, payload.toDomain())
		}
		return len(envelope.Users), nil
	})
	if err != nil {
		return nil, err
	}
	if len(employees) > limit {
		employees = employees[:limit]
	}
	return employees, nil
}
