package domain

// Page sizes for listing search results and review lists.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PaginationParams is a resolved ?page=&limit= pair. Page counts from 1.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams resolves the optional query values into a page.
// Missing or non-positive values take the defaults (page 1, DefaultPageLimit)
// and a limit above MaxPageLimit is clamped, so a marketplace search can
// never request an unbounded page of listings.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page > 0 {
		p.Page = *page
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset is the number of rows to skip before this page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
