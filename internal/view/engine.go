package view

import "github.com/jonathan/jobdash/internal/records"

// Engine holds the current filter, sort and page state.
// Every criteria, sort or page-size change resets to page 1.
type Engine struct {
	criteria Criteria
	option   SortOption
	column   ColumnSort
	pager    Pager
}

// NewEngine returns an engine with no filters and the default page size.
func NewEngine() *Engine {
	return &Engine{pager: NewPager(DefaultPageSize)}
}

func (e *Engine) Criteria() Criteria     { return e.criteria }
func (e *Engine) SortOption() SortOption { return e.option }
func (e *Engine) ColumnSort() ColumnSort { return e.column }
func (e *Engine) PageSize() PageSize     { return e.pager.Size }
func (e *Engine) CurrentPage() int       { return e.pager.Current }

// SetCriteria replaces all filter criteria.
func (e *Engine) SetCriteria(c Criteria) {
	e.criteria = c
	e.pager.Reset()
}

// SetSortOption picks a preset ordering and clears any column sort.
func (e *Engine) SetSortOption(o SortOption) {
	e.option = o
	e.column = ColumnSort{}
	e.pager.Reset()
}

// ToggleColumn applies a header click and clears the preset ordering.
func (e *Engine) ToggleColumn(column string) ColumnSort {
	e.column = e.column.Toggle(column)
	e.option = SortNone
	e.pager.Reset()
	return e.column
}

// SetPageSize changes rows per page.
func (e *Engine) SetPageSize(size PageSize) {
	e.pager.Size = size
	e.pager.Reset()
}

// GoToPage jumps to page n, clamped to the valid range for total records.
func (e *Engine) GoToPage(n, total int) {
	e.pager.Current = n
	e.pager.Clamp(total)
}

// NextPage and PrevPage move by one page within bounds.
func (e *Engine) NextPage(total int) bool { return e.pager.Next(total) }
func (e *Engine) PrevPage() bool          { return e.pager.Prev() }

// Comparator returns the active ordering: a column sort if one was clicked
// last, otherwise the preset option.
func (e *Engine) Comparator() func(a, b records.Record) int {
	if e.column.Active() {
		return e.column.Comparator()
	}
	return e.option.Comparator()
}

// Apply computes the full filtered and sorted view from apps.
// It keeps the current page within range of the new view.
func (e *Engine) Apply(apps []records.Record) []records.Record {
	out := Sort(Filter(apps, e.criteria), e.Comparator())
	e.pager.Clamp(len(out))
	return out
}

// Page returns the records on the current page of view.
func (e *Engine) Page(view []records.Record) []records.Record {
	return e.pager.Slice(view)
}

// Info describes the current page of a view of total records.
func (e *Engine) Info(total int) PageInfo {
	return e.pager.Info(total)
}
