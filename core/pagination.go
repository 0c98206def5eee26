package core

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is the normalized pagination input every list operation uses.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize applies the pagination defaults: page falls back to 1, limit to
// 10, and limit is capped at MaxLimit.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the zero-based start index for the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageRequest builds a PageRequest from raw string inputs, as received
// from an upstream query layer. Non-numeric or missing values fall back to
// the defaults independently of each other.
func ParsePageRequest(rawPage, rawLimit string) PageRequest {
	req := PageRequest{}
	if parsed, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil {
		req.Page = parsed
	}
	if parsed, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil {
		req.Limit = parsed
	}
	return req.Normalize()
}

// PageSlice computes the [start, end) bounds for a page over a collection of
// the given total size. Out-of-range pages yield an empty range rather than
// an error.
func PageSlice(total int, req PageRequest) (start, end int) {
	req = req.Normalize()
	start = req.Offset()
	if start >= total {
		return total, total
	}
	end = start + req.Limit
	if end > total {
		end = total
	}
	return start, end
}
