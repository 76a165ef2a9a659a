package controller

import "github.com/me/prodview/pkg/model"

// Event is an input to Reduce.
type Event interface{ event() }

// Mount starts the first listing fetch.
type Mount struct{}

// NextPage is the explicit "next" intent: the Next control in paged mode,
// a manual load-more in infinite mode.
type NextPage struct{}

// PrevPage is the Previous control. Ignored in infinite mode.
type PrevPage struct{}

// SentinelVisible reports that the end of the rendered list entered the
// viewport.
type SentinelVisible struct{}

// SearchSettled carries a debounced query; "" means the field was cleared.
type SearchSettled struct{ Query string }

// SortChanged carries the newly selected sort key.
type SortChanged struct{ Key model.SortKey }

// Retry re-issues the fetch that last failed.
type Retry struct{}

// PageLoaded completes a FetchPage.
type PageLoaded struct {
	Gen    uint64
	Result *model.PageResult
}

// SearchLoaded completes a FetchSearch.
type SearchLoaded struct {
	Gen    uint64
	Result *model.PageResult
}

// FetchFailed completes either fetch with an error.
type FetchFailed struct {
	Gen uint64
	Err error
}

func (Mount) event()           {}
func (NextPage) event()        {}
func (PrevPage) event()        {}
func (SentinelVisible) event() {}
func (SearchSettled) event()   {}
func (SortChanged) event()     {}
func (Retry) event()           {}
func (PageLoaded) event()      {}
func (SearchLoaded) event()    {}
func (FetchFailed) event()     {}

// Effect is a side effect requested by Reduce. The owner performs it and
// feeds the completion back as an event with the same Gen.
type Effect interface{ effect() }

// FetchPage asks for ListProducts(Limit, Offset).
type FetchPage struct {
	Gen    uint64
	Limit  int
	Offset int
}

// FetchSearch asks for SearchProducts(Query).
type FetchSearch struct {
	Gen   uint64
	Query string
}

func (FetchPage) effect()   {}
func (FetchSearch) effect() {}
