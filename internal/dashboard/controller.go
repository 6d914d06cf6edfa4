// Package dashboard holds the application state behind every dashboard view:
// the loaded data, the filter/sort/page engine, the chart range and the theme.
// A Controller is passed explicitly to whatever presents it.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/jobdash/internal/charts"
	"github.com/jonathan/jobdash/internal/fetch"
	"github.com/jonathan/jobdash/internal/prefs"
	"github.com/jonathan/jobdash/internal/records"
	"github.com/jonathan/jobdash/internal/store"
	"github.com/jonathan/jobdash/internal/view"
)

// LoadFailedMessage is the single user-facing message for any fetch failure.
const LoadFailedMessage = "failed to load"

var (
	// ErrStaleResult is returned by Refresh when a newer refresh was issued
	// while this one was in flight. Its result was discarded.
	ErrStaleResult = errors.New("refresh superseded by a newer request")

	// ErrNotFound is returned by detail lookups.
	ErrNotFound = errors.New("not found")

	// ErrIncompleteRange is returned when a custom chart range lacks a bound.
	ErrIncompleteRange = charts.ErrIncompleteRange
)

// Fetcher loads a complete snapshot of the three tabs.
type Fetcher interface {
	FetchAll(ctx context.Context) (*fetch.Snapshot, error)
}

// LoadState is the data loading lifecycle.
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// Status reports the last load.
type Status struct {
	State    LoadState `json:"state"`
	Message  string    `json:"message,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
}

// PageView is one rendered page of the filtered applications.
type PageView struct {
	Records []records.Record `json:"records"`
	Info    view.PageInfo    `json:"info"`
	// Offset is the filtered-view index of Records[0].
	Offset int `json:"offset"`
}

// Controller owns all dashboard state. It is safe for concurrent use.
type Controller struct {
	fetcher Fetcher
	prefs   *prefs.Store

	mu         sync.RWMutex
	store      *store.Store
	engine     *view.Engine
	chartRange charts.Range
	status     Status

	token atomic.Uint64

	subsMu sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// New creates a controller. A nil prefs store keeps the theme in memory.
func New(fetcher Fetcher, p *prefs.Store) *Controller {
	if p == nil {
		p = prefs.Open("")
	}
	return &Controller{
		fetcher:    fetcher,
		prefs:      p,
		store:      store.New(),
		engine:     view.NewEngine(),
		chartRange: charts.AllTime(),
		status:     Status{State: StateIdle},
		subs:       make(map[int]func(Event)),
	}
}

// Refresh fetches all tabs and replaces the loaded data. Only the most recently
// issued refresh may apply its result; an older one that finishes later gets
// ErrStaleResult. On failure the previously loaded data is kept.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.fetcher == nil {
		return fmt.Errorf("%s: no data source configured", LoadFailedMessage)
	}

	tok := c.token.Add(1)
	c.mu.Lock()
	c.status = Status{State: StateLoading, LoadedAt: c.status.LoadedAt}
	c.mu.Unlock()

	start := time.Now()
	snap, err := c.fetcher.FetchAll(ctx)

	c.mu.Lock()
	if tok != c.token.Load() {
		c.mu.Unlock()
		log.Printf("[refresh] discarding result of request %d (latest is %d)", tok, c.token.Load())
		return ErrStaleResult
	}
	if err != nil {
		c.status = Status{State: StateFailed, Message: LoadFailedMessage, LoadedAt: c.status.LoadedAt}
		c.mu.Unlock()
		log.Printf("[refresh] request %d failed after %v: %v", tok, time.Since(start), err)
		c.notify(Event{Kind: EventLoadFailed, Token: tok})
		return fmt.Errorf("%s: %w", LoadFailedMessage, err)
	}
	c.applySnapshotLocked(snap)
	c.mu.Unlock()

	log.Printf("[refresh] request %d loaded %d applications, %d resumes, %d templates in %v",
		tok, len(snap.Applications), len(snap.Resumes), len(snap.Templates), time.Since(start))
	c.notify(Event{Kind: EventDataLoaded, Token: tok})
	return nil
}

// Load installs a snapshot directly, as if a refresh had just returned it.
// It also supersedes any refresh still in flight.
func (c *Controller) Load(snap *fetch.Snapshot) {
	tok := c.token.Add(1)
	c.mu.Lock()
	c.applySnapshotLocked(snap)
	c.mu.Unlock()
	c.notify(Event{Kind: EventDataLoaded, Token: tok})
}

func (c *Controller) applySnapshotLocked(snap *fetch.Snapshot) {
	c.store.SetApplications(snap.Applications)
	c.store.SetResumes(snap.Resumes)
	c.store.SetTemplates(snap.Templates)
	loadedAt := snap.FetchedAt
	if loadedAt.IsZero() {
		loadedAt = time.Now()
	}
	c.status = Status{State: StateReady, LoadedAt: loadedAt}
	c.recomputeLocked()
}

// recomputeLocked rebuilds the filtered view from the loaded applications.
func (c *Controller) recomputeLocked() {
	c.store.SetFilteredApplications(c.engine.Apply(c.store.Applications()))
}

// mutate runs fn under the write lock, recomputes the view and notifies.
func (c *Controller) mutate(kind EventKind, fn func()) {
	c.mu.Lock()
	fn()
	c.recomputeLocked()
	c.mu.Unlock()
	c.notify(Event{Kind: kind})
}

// Status returns the load state.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Criteria returns the active filters.
func (c *Controller) Criteria() view.Criteria {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine.Criteria()
}

// SetCriteria replaces every filter at once and returns to page 1.
func (c *Controller) SetCriteria(cr view.Criteria) {
	c.mutate(EventViewChanged, func() { c.engine.SetCriteria(cr) })
}

// SetSearch changes only the search term.
func (c *Controller) SetSearch(term string) {
	c.mutate(EventViewChanged, func() {
		cr := c.engine.Criteria()
		cr.Search = term
		c.engine.SetCriteria(cr)
	})
}

// SetStatus changes only the status filter; "" means all statuses.
func (c *Controller) SetStatus(status string) {
	c.mutate(EventViewChanged, func() {
		cr := c.engine.Criteria()
		cr.Status = status
		c.engine.SetCriteria(cr)
	})
}

// SetStaleness changes only the stale filter.
func (c *Controller) SetStaleness(s view.Staleness) {
	c.mutate(EventViewChanged, func() {
		cr := c.engine.Criteria()
		cr.Staleness = s
		c.engine.SetCriteria(cr)
	})
}

// SortOption returns the preset ordering.
func (c *Controller) SortOption() view.SortOption {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine.SortOption()
}

// ColumnSort returns the header-click ordering.
func (c *Controller) ColumnSort() view.ColumnSort {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine.ColumnSort()
}

// SetSortOption selects a preset ordering.
func (c *Controller) SetSortOption(o view.SortOption) {
	c.mutate(EventViewChanged, func() { c.engine.SetSortOption(o) })
}

// SortByColumn toggles the column sort for a header click.
func (c *Controller) SortByColumn(column string) view.ColumnSort {
	var cs view.ColumnSort
	c.mutate(EventViewChanged, func() { cs = c.engine.ToggleColumn(column) })
	return cs
}

// SetPageSize changes rows per page and returns to page 1.
func (c *Controller) SetPageSize(size view.PageSize) {
	c.mutate(EventViewChanged, func() { c.engine.SetPageSize(size) })
}

// GoToPage jumps to page n, clamped into range.
func (c *Controller) GoToPage(n int) {
	c.mutate(EventViewChanged, func() {
		c.engine.GoToPage(n, len(c.store.FilteredApplications()))
	})
}

// NextPage advances one page; it reports false on the last page.
func (c *Controller) NextPage() bool {
	var moved bool
	c.mutate(EventViewChanged, func() {
		moved = c.engine.NextPage(len(c.store.FilteredApplications()))
	})
	return moved
}

// PrevPage goes back one page; it reports false on page 1.
func (c *Controller) PrevPage() bool {
	var moved bool
	c.mutate(EventViewChanged, func() { moved = c.engine.PrevPage() })
	return moved
}

// Page returns the current page of the filtered view.
func (c *Controller) Page() PageView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	filtered := c.store.FilteredApplications()
	info := c.engine.Info(len(filtered))
	return PageView{
		Records: c.engine.Page(filtered),
		Info:    info,
		Offset:  max(info.From-1, 0),
	}
}

// Filtered returns the whole filtered and sorted view.
func (c *Controller) Filtered() []records.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.FilteredApplications()
}

// Application returns the record at index of the filtered view.
func (c *Controller) Application(index int) (records.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	filtered := c.store.FilteredApplications()
	if index < 0 || index >= len(filtered) {
		return records.Record{}, fmt.Errorf("application %d: %w", index, ErrNotFound)
	}
	return filtered[index], nil
}

// Stats counts over all loaded applications, ignoring filters.
func (c *Controller) Stats() store.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Stats()
}

// UniqueStatuses lists the distinct statuses in first-appearance order.
func (c *Controller) UniqueStatuses() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.UniqueStatuses()
}

// Resumes returns the Resume Library rows.
func (c *Controller) Resumes() []records.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Resumes()
}

// Templates returns the Follow-Up Templates rows.
func (c *Controller) Templates() []records.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Templates()
}

// Template looks up a follow-up template by its name.
func (c *Controller) Template(name string) (records.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.store.Templates() {
		if t.Get(records.FieldTemplateName) == name {
			return t, nil
		}
	}
	return records.Record{}, fmt.Errorf("template %q: %w", name, ErrNotFound)
}

// ChartRange returns the active chart range.
func (c *Controller) ChartRange() charts.Range {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chartRange
}

// SetChartRange selects a chart range.
func (c *Controller) SetChartRange(r charts.Range) {
	c.mu.Lock()
	c.chartRange = r
	c.mu.Unlock()
	c.notify(Event{Kind: EventChartRangeChanged})
}

// SetCustomRange validates and applies a custom range. On error the previous
// range stays active.
func (c *Controller) SetCustomRange(start, end string) error {
	r, err := charts.CustomRange(start, end)
	if err != nil {
		return err
	}
	c.SetChartRange(r)
	return nil
}

// ChartData computes every chart series for the active range.
func (c *Controller) ChartData(now time.Time) charts.Data {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return charts.Build(c.store.Applications(), c.chartRange, now)
}

// Theme returns the saved theme.
func (c *Controller) Theme() prefs.Theme {
	return c.prefs.Theme()
}

// SetTheme saves a theme.
func (c *Controller) SetTheme(t prefs.Theme) error {
	if err := c.prefs.SetTheme(t); err != nil {
		return err
	}
	c.notify(Event{Kind: EventThemeChanged})
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (c *Controller) ToggleTheme() (prefs.Theme, error) {
	next, err := c.prefs.ToggleTheme()
	if err != nil {
		return next, err
	}
	c.notify(Event{Kind: EventThemeChanged})
	return next, nil
}
