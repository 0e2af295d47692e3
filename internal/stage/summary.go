package stage

import "time"

// Summary is one row of the unified order list, sourced from a single stage table.
type Summary struct {
	OrderNumber     string
	Stage           Stage
	RecordID        int64
	CustomerName    string
	Address         string
	Designer        *string
	Salesperson     *string
	Splitter        *string
	OrderType       *string
	CategoryName    string
	QuoteStatus     *string
	Status          string
	CompositeStatus string
	OrderDate       *string
	CreatedAt       time.Time
}

// PageRequest is a 1-based page window. A nil *PageRequest means unpaginated.
type PageRequest struct {
	Page     int
	PageSize int
}

// Offset returns the row offset of the page.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Page is a window of summaries.
type Page struct {
	Items      []Summary
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

// NormalizePage applies the default page and page size and caps both, so
// Offset stays within range.
func NormalizePage(page, pageSize int) PageRequest {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// TotalPages returns ceil(total/pageSize).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// EmptyPage is the degraded read result.
func EmptyPage(req PageRequest) Page {
	return Page{Items: []Summary{}, Page: req.Page, PageSize: req.PageSize}
}
