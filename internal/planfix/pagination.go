package planfix

import "context"

// Pager is the pagination strategy for list operations. Planfix documents an
// offset/pageSize scheme, but the exact cursor semantics are not pinned down;
// keeping the strategy behind this interface lets a cursor implementation
// slot in without touching the list operations.
type Pager interface {
	// Next returns the offset for the page following a page that started
	// at offset and returned fetched items.
	Next(offset, fetched int) int
	// Exhausted reports whether a page of fetched items against the given
	// page size means no further pages exist.
	Exhausted(fetched, pageSize int) bool
}

// OffsetPager advances by the number of items received and treats a short
// page as the end of the result set.
type OffsetPager struct{}

func (OffsetPager) Next(offset, fetched int) int { return offset + fetched }

func (OffsetPager) Exhausted(fetched, pageSize int) bool { return fetched < pageSize }

// pageFetch retrieves one page starting at offset, at most pageSize items,
// and returns how many items arrived.
type pageFetch func(ctx context.Context, offset, pageSize int) (int, error)

// paginate issues successive page requests until the caller's limit is
// satisfied or the service reports no further pages, whichever comes first.
// Page size is capped at the configured maximum; later pages depend on the
// prior page's position, so the loop is sequential.
func (c *Client) paginate(ctx context.Context, limit, offset int, fetch pageFetch) error {
	remaining := limit
	for remaining > 0 {
		pageSize := remaining
		if pageSize > c.maxPageSize {
			pageSize = c.maxPageSize
		}
		fetched, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return err
		}
		remaining -= fetched
		if c.pager.Exhausted(fetched, pageSize) {
			return nil
		}
		offset = c.pager.Next(offset, fetched)
	}
	return nil
}

// normalizeWindow validates a caller-supplied limit/offset pair, applying the
// default limit when unset. Validation errors surface before any network call.
func normalizeWindow(limit, offset int) (int, int, error) {
	if limit < 0 {
		return 0, 0, NewError(CategoryValidation, "limit must be a positive integer")
	}
	if offset < 0 {
		return 0, 0, NewError(CategoryValidation, "offset must not be negative")
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	return limit, offset, nil
}
