package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is used when a page size is not provided.
	DefaultPageSize = 10
	// MaxPageSize caps how many rows any listing can request.
	MaxPageSize = 100
)

// Params holds page-number pagination inputs.
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps the parameters into valid ranges.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Query renders the normalized parameters as request query values.
func (p Params) Query() url.Values {
	p = p.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	return q
}

// Offset returns the zero-based index of the first row on the page.
func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PageSize
}

// PageCount returns how many pages a collection of total rows spans.
// Zero rows still produce a single (empty) page.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Slice applies the parameters to an already-fetched collection. This is the
// fallback for servers that answer with the full result set instead of a
// paginated envelope.
func Slice[T any](items []T, p Params) []T {
	p = p.Normalize()
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
