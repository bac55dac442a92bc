// Package pagination computes the offset-based page descriptor attached to
// list responses.
package pagination

import "strconv"

// Page describes the offsets adjacent to the current page. Next and Previous
// are stringified offsets, or null when there is no page in that direction.
type Page struct {
	Next     *string `json:"next"`
	Limit    int     `json:"limit"`
	Previous *string `json:"previous"`
}

// New builds the descriptor for a result set of total documents, viewed
// through a window of limit documents starting at offset. The caller
// guarantees limit >= 1 and offset >= 0.
func New(limit, offset int, total int64) Page {
	page := Page{Limit: limit}

	// Comparing against total-offset instead of summing keeps huge
	// offset/limit pairs from overflowing.
	if int64(offset) < total && int64(limit) < total-int64(offset) {
		page.Next = offsetString(int64(offset) + int64(limit))
	}

	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		page.Previous = offsetString(int64(prev))
	}

	return page
}

func offsetString(offset int64) *string {
	s := strconv.FormatInt(offset, 10)
	return &s
}
