package controller

import (
	"slices"

	"github.com/me/prodview/pkg/model"
)

// Reduce applies ev to s and returns the next state plus the effects to run.
// It performs no I/O.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Mount:
		s.Cursor.Page = 1
		return startPage(s)

	case NextPage:
		switch {
		case s.Mode == model.ModeInfinite && s.Phase == model.PhaseErrored && !s.Searching():
			// The failed page was never appended; fetch it again.
			return startPage(s)
		case s.CanNext():
			s.Cursor.Page++
			return startPage(s)
		case s.canAdvance():
			s.Cursor.Page++
			return startPage(s)
		}
		return s, nil

	case PrevPage:
		if !s.CanPrev() {
			return s, nil
		}
		s.Cursor.Page--
		return startPage(s)

	case SentinelVisible:
		// Automatic fetching stays halted after a failure.
		if s.Phase == model.PhaseErrored || !s.canAdvance() {
			return s, nil
		}
		s.Cursor.Page++
		return startPage(s)

	case SearchSettled:
		if ev.Query == "" {
			s.Query = ""
			s.Cursor.Page = 1
			return startPage(s)
		}
		s.Query = ev.Query
		return startSearch(s)

	case SortChanged:
		s.Sort = ev.Key
		s.products = model.SortProducts(s.fetched, s.Sort)
		return s, nil

	case Retry:
		if s.Phase != model.PhaseErrored {
			return s, nil
		}
		if s.Searching() {
			return startSearch(s)
		}
		return startPage(s)

	case PageLoaded:
		if !current(s, ev.Gen) {
			return s, nil
		}
		var products []model.Product
		if ev.Result != nil {
			products = ev.Result.Products
		}
		if s.Mode == model.ModeInfinite && s.Cursor.Page > 1 {
			s.fetched = append(slices.Clip(s.fetched), products...)
		} else {
			s.fetched = slices.Clone(products)
		}
		s.Total = ev.Result.TotalOr()
		s.HasMore = len(products) > 0
		return settle(s), nil

	case SearchLoaded:
		if !current(s, ev.Gen) {
			return s, nil
		}
		var products []model.Product
		if ev.Result != nil {
			products = ev.Result.Products
		}
		s.fetched = slices.Clone(products)
		s.Total = ev.Result.TotalOr()
		s.HasMore = false
		return settle(s), nil

	case FetchFailed:
		if !current(s, ev.Gen) {
			return s, nil
		}
		s.Phase = model.PhaseErrored
		s.Err = Message(ev.Err)
		return s, nil
	}
	return s, nil
}

func startPage(s State) (State, []Effect) {
	s.Generation++
	s.Phase = model.PhaseLoading
	return s, []Effect{FetchPage{
		Gen:    s.Generation,
		Limit:  s.Cursor.PerPage,
		Offset: s.Cursor.Offset(),
	}}
}

func startSearch(s State) (State, []Effect) {
	s.Generation++
	s.Phase = model.PhaseLoading
	return s, []Effect{FetchSearch{Gen: s.Generation, Query: s.Query}}
}

// current reports whether a completion for gen may still apply to s: it must
// answer the latest fetch, and only a Loading phase may settle.
func current(s State, gen uint64) bool {
	return gen == s.Generation && s.Phase.CanTransitionTo(model.PhaseReady)
}

func settle(s State) State {
	s.products = model.SortProducts(s.fetched, s.Sort)
	s.Phase = model.PhaseReady
	s.Err = ""
	return s
}
