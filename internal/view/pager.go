package view

import (
	"strconv"
	"strings"

	"github.com/jonathan/jobdash/internal/records"
)

// PageSize is a fixed number of rows per page, or AllRows.
type PageSize int

// AllRows shows the whole view on a single page.
const AllRows PageSize = 0

// DefaultPageSize is the page size before the user picks one.
const DefaultPageSize PageSize = 25

// PageSizes lists the selector entries.
var PageSizes = []PageSize{10, 25, 50, 100, AllRows}

// ParsePageSize accepts "all" or a positive integer.
func ParsePageSize(s string) (PageSize, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" {
		return AllRows, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return DefaultPageSize, &OptionError{Option: "page size", Value: s}
	}
	return PageSize(n), nil
}

func (p PageSize) String() string {
	if p == AllRows {
		return "all"
	}
	return strconv.Itoa(int(p))
}

// MarshalText encodes the size as "all" or its number.
func (p PageSize) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses "all" or a positive integer.
func (p *PageSize) UnmarshalText(text []byte) error {
	v, err := ParsePageSize(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Pager tracks the 1-based current page.
type Pager struct {
	Current int
	Size    PageSize
}

// NewPager starts on page 1.
func NewPager(size PageSize) Pager {
	return Pager{Current: 1, Size: size}
}

// TotalPages is ceil(total/size), never less than 1.
func (p Pager) TotalPages(total int) int {
	if p.Size == AllRows || total <= 0 {
		return 1
	}
	size := int(p.Size)
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

// Clamp keeps Current within [1, TotalPages(total)]. AllRows forces page 1.
func (p *Pager) Clamp(total int) {
	if p.Size == AllRows {
		p.Current = 1
		return
	}
	p.Current = max(min(p.Current, p.TotalPages(total)), 1)
}

// bounds returns the [start, end) indexes of the current page within a view
// of total records. Out-of-range pages yield an empty range at the end.
func (p Pager) bounds(total int) (start, end int) {
	current := max(p.Current, 1)
	size := int(p.Size)
	if current-1 > total/size {
		return total, total
	}
	start = min((current-1)*size, total)
	end = start + min(size, total-start)
	return start, end
}

// Reset returns to page 1.
func (p *Pager) Reset() {
	p.Current = 1
}

// Next advances one page; a no-op on the last page.
func (p *Pager) Next(total int) bool {
	if p.Current >= p.TotalPages(total) {
		return false
	}
	p.Current++
	return true
}

// Prev goes back one page; a no-op on the first page.
func (p *Pager) Prev() bool {
	if p.Current <= 1 {
		return false
	}
	p.Current--
	return true
}

// Slice returns the records on the current page, clipped to the view length.
// AllRows always yields the whole view.
func (p Pager) Slice(view []records.Record) []records.Record {
	if p.Size == AllRows {
		return view
	}
	start, end := p.bounds(len(view))
	return view[start:end]
}

// PageInfo describes the current page for the pagination controls.
// From and To are the 1-based row range shown; both are 0 for an empty view.
type PageInfo struct {
	CurrentPage  int      `json:"current_page"`
	TotalPages   int      `json:"total_pages"`
	TotalRecords int      `json:"total_records"`
	PageSize     PageSize `json:"page_size"`
	From         int      `json:"from"`
	To           int      `json:"to"`
}

// Info computes PageInfo for a view of total records.
func (p Pager) Info(total int) PageInfo {
	info := PageInfo{
		CurrentPage:  p.Current,
		TotalPages:   p.TotalPages(total),
		TotalRecords: total,
		PageSize:     p.Size,
	}
	if total == 0 {
		return info
	}
	if p.Size == AllRows {
		info.CurrentPage = 1
		info.From, info.To = 1, total
		return info
	}
	start, end := p.bounds(total)
	info.From = min(start+1, total)
	info.To = end
	return info
}
