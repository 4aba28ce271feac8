package domain

import (
	"errors"
	"fmt"

	"planfixmcp/internal/planfix"
)

// operationError formats a client failure for protocol clients. API errors
// keep their category and safe message; anything else is wrapped with the
// operation name only, so transport details never leak into tool output.
func operationError(op string, err error) error {
	var apiErr *planfix.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s failed: %s", apiErr.Category, op, apiErr.Message)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
