package domain

import "fmt"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// resolveWindow validates the limit/offset/page fields shared by list tools
// and returns the effective limit and offset. Page is a 1-based alternative
// to offset; when both are given, page wins.
func resolveWindow(limit, offset, page int) (int, int, error) {
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 1 || limit > maxPageLimit {
		return 0, 0, fmt.Errorf("limit must be between 1 and %d", maxPageLimit)
	}
	if offset < 0 {
		return 0, 0, fmt.Errorf("offset must not be negative")
	}
	if page < 0 {
		return 0, 0, fmt.Errorf("page must be a positive page number")
	}
	if page > 0 {
		offset = (page - 1) * limit
	}
	return limit, offset, nil
}
