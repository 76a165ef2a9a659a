package controller

import "github.com/me/prodview/pkg/model"

// Sentinel is the single scroll observer watching the end of the rendered
// list in infinite mode. It is torn down and re-armed whenever the
// conditions it was created under change, and fires at most once per arming.
type Sentinel struct {
	key   sentinelKey
	live  bool
	armed bool
	fired bool
}

type sentinelKey struct {
	mode    model.PaginationMode
	loading bool
	hasMore bool
	errored bool
	search  bool
}

// Sync recreates the observer if s changed any of its trigger conditions.
func (o *Sentinel) Sync(s State) {
	key := sentinelKey{
		mode:    s.Mode,
		loading: s.Loading(),
		hasMore: s.HasMore,
		errored: s.Phase == model.PhaseErrored,
		search:  s.Searching(),
	}
	if o.live && key == o.key {
		return
	}
	o.key = key
	o.live = true
	o.fired = false
	o.armed = key.mode == model.ModeInfinite && !key.loading && key.hasMore && !key.errored && !key.search
}

// Armed reports whether a visibility change would fire.
func (o *Sentinel) Armed() bool {
	return o.armed && !o.fired
}

// Visible reports that the sentinel entered the viewport. It returns true
// only for the first call after an arming.
func (o *Sentinel) Visible() bool {
	if !o.Armed() {
		return false
	}
	o.fired = true
	return true
}
