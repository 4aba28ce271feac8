package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// taskURIPrefix is the scheme of the task detail resource template.
const taskURIPrefix = "task://"

// parseTaskIDFromURI extracts the task id from a URI of the form
// task://{task_id}. The id must be a positive integer; template placeholders
// are rejected.
func parseTaskIDFromURI(uri string) (int, error) {
	if !strings.HasPrefix(uri, taskURIPrefix) {
		return 0, fmt.Errorf("URI must start with %q", taskURIPrefix)
	}
	raw := strings.TrimSpace(strings.TrimPrefix(uri, taskURIPrefix))
	if raw == "" || raw == "_" || strings.HasPrefix(raw, "{") {
		return 0, fmt.Errorf("task id is required in URI")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("task id %q must be a positive integer", raw)
	}
	return id, nil
}
