package dashboard

// EventKind says what changed.
type EventKind string

const (
	EventDataLoaded        EventKind = "data_loaded"
	EventLoadFailed        EventKind = "load_failed"
	EventViewChanged       EventKind = "view_changed"
	EventChartRangeChanged EventKind = "chart_range_changed"
	EventThemeChanged      EventKind = "theme_changed"
)

// Event is delivered to subscribers after a state change has been applied.
type Event struct {
	Kind EventKind
	// Token is the refresh request token for load events.
	Token uint64
}

// Subscribe registers fn for every subsequent event. Callbacks run
// synchronously on the goroutine that made the change, after the controller's
// lock is released, so they may call back into the controller.
// The returned func removes the subscription.
func (c *Controller) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.subsMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subsMu.Unlock()

	return func() {
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	}
}

func (c *Controller) notify(e Event) {
	c.subsMu.Lock()
	fns := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
