// Package controller owns the catalog view state and the pure reducer that
// transitions it.
package controller

import (
	"github.com/me/prodview/pkg/model"
)

// Config fixes the parts of State that never change after start-up.
type Config struct {
	Mode    model.PaginationMode
	PerPage int
}

// State is the complete view state. Treat it as a value: Reduce returns a
// new State and never mutates the slices of the one it was given.
type State struct {
	Mode   model.PaginationMode
	Cursor model.Cursor
	Total  int
	Query  string
	Sort   model.SortKey

	Phase   model.Phase
	Err     string
	HasMore bool

	// Generation tags the most recently issued fetch. Completions carrying
	// any other generation are stale.
	Generation uint64

	fetched  []model.Product // in fetch order
	products []model.Product // fetched, ordered by Sort
}

// New returns the Idle state for cfg.
func New(cfg Config) State {
	mode := cfg.Mode
	if mode == "" {
		mode = model.ModePaged
	}
	return State{
		Mode:   mode,
		Cursor: model.NewCursor(cfg.PerPage),
		Phase:  model.PhaseIdle,
	}
}

// Products returns the held products in display order. The slice is shared;
// callers must not modify it.
func (s State) Products() []model.Product {
	return s.products
}

// Loading reports whether a fetch is in flight.
func (s State) Loading() bool {
	return s.Phase == model.PhaseLoading
}

// Searching reports whether the held products are search results.
func (s State) Searching() bool {
	return s.Query != ""
}

// Page returns the current 1-based page.
func (s State) Page() int {
	return s.Cursor.Page
}

// TotalPages returns ceil(Total/PerPage).
func (s State) TotalPages() int {
	return s.Cursor.TotalPages(s.Total)
}

// CanPrev reports whether the Previous control is enabled.
func (s State) CanPrev() bool {
	return s.Mode == model.ModePaged && !s.Searching() && s.Cursor.Page > 1
}

// CanNext reports whether the Next control is enabled.
func (s State) CanNext() bool {
	return s.Mode == model.ModePaged && !s.Searching() && s.Cursor.Page < s.TotalPages()
}

// canAdvance reports whether an infinite-mode page advance may start.
func (s State) canAdvance() bool {
	return s.Mode == model.ModeInfinite && !s.Searching() && !s.Loading() && s.HasMore
}
