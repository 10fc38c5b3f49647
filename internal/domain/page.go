package domain

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxOffset is the largest row offset a listing query accepts (SQL OFFSET is int32 here).
	MaxOffset = math.MaxInt32
)

// SortOrder orders a listing by one field.
type SortOrder struct {
	Field string
	Desc  bool
}

// PageRequest is a zero-based page window over a listing.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// NewPageRequest clamps page and size into the accepted range. Pages whose
// offset would pass MaxOffset are clamped to the last addressable page.
func NewPageRequest(page, size int) PageRequest {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < 0 {
		page = 0
	}
	if last := MaxPage(size); page > last {
		page = last
	}
	return PageRequest{Page: page, Size: size}
}

// MaxPage is the highest page number of the given size whose offset fits MaxOffset.
func MaxPage(size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return MaxOffset / size
}

// Limit returns the SQL LIMIT for the page.
func (p PageRequest) Limit() int32 {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return int32(p.Size)
}

// Offset returns the SQL OFFSET for the page, saturating at MaxOffset.
func (p PageRequest) Offset() int32 {
	if p.Page <= 0 {
		return 0
	}
	offset := int64(p.Page) * int64(p.Limit())
	if offset > MaxOffset {
		return MaxOffset
	}
	return int32(offset)
}
