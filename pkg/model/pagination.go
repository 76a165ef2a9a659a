package model

import "fmt"

// DefaultPageSize is the number of products requested per page.
const DefaultPageSize = 10

// MaxPageSize is the largest page the viewer asks the service for.
const MaxPageSize = 100

// PaginationMode selects how page advances are presented.
type PaginationMode string

const (
	// ModePaged replaces the displayed products on every page change.
	ModePaged PaginationMode = "paged"
	// ModeInfinite appends each further page onto the displayed products.
	ModeInfinite PaginationMode = "infinite"
)

// String returns the string representation of the mode.
func (m PaginationMode) String() string {
	return string(m)
}

// ParseMode converts a flag or config value into a PaginationMode.
func ParseMode(s string) (PaginationMode, error) {
	switch PaginationMode(s) {
	case ModePaged, "":
		return ModePaged, nil
	case ModeInfinite:
		return ModeInfinite, nil
	}
	return "", fmt.Errorf("%w: %q (want paged or infinite)", ErrInvalidMode, s)
}

// Cursor is an offset/limit pagination position. Page is 1-based.
type Cursor struct {
	Page    int
	PerPage int
}

// NewCursor returns a cursor on page 1 with the given page size.
func NewCursor(perPage int) Cursor {
	c := Cursor{Page: 1, PerPage: perPage}
	c.Clamp()
	return c
}

// Clamp enforces Page >= 1 and 1 <= PerPage <= MaxPageSize.
func (c *Cursor) Clamp() {
	if c.PerPage <= 0 {
		c.PerPage = DefaultPageSize
	}
	if c.PerPage > MaxPageSize {
		c.PerPage = MaxPageSize
	}
	if c.Page < 1 {
		c.Page = 1
	}
}

// Offset is the number of products to skip to reach the cursor's page.
func (c Cursor) Offset() int {
	return (c.Page - 1) * c.PerPage
}

// TotalPages returns ceil(total/PerPage).
func (c Cursor) TotalPages(total int) int {
	if total <= 0 || c.PerPage <= 0 {
		return 0
	}
	return (total + c.PerPage - 1) / c.PerPage
}
