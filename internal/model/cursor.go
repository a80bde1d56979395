package model

// DefaultPageSize is the number of dogs requested per page.
const DefaultPageSize = 20

// Cursor is a position in the paginated listing.
// Offset is a multiple of Limit except while a deep link is being hydrated.
type Cursor struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// FirstPage returns the cursor for page one with the given page size.
// Non-positive sizes fall back to DefaultPageSize.
func FirstPage(limit int) Cursor {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return Cursor{Offset: 0, Limit: limit}
}

// CursorForPage returns the cursor for the 1-based page number.
// Pages below one are treated as page one.
func CursorForPage(page, limit int) Cursor {
	c := FirstPage(limit)
	if page > 1 {
		c.Offset = (page - 1) * c.Limit
	}
	return c
}

// Page returns the 1-based page number the cursor points at.
func (c Cursor) Page() int {
	if c.Limit <= 0 {
		return 1
	}
	return c.Offset/c.Limit + 1
}

// Next returns the cursor for the following page.
func (c Cursor) Next() Cursor {
	c.Offset += c.Limit
	return c
}

// IsFirst reports whether the cursor points at the first page.
func (c Cursor) IsFirst() bool {
	return c.Offset == 0
}
