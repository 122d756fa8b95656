package listing

import "strings"

type View string

const (
	ViewActive   View = "active"
	ViewArchived View = "archived"
)

// ParseView maps anything but "archived" to the active view.
func ParseView(s string) View {
	if strings.EqualFold(strings.TrimSpace(s), string(ViewArchived)) {
		return ViewArchived
	}
	return ViewActive
}

type SortKey string

const (
	SortDateDesc SortKey = "date_desc"
	SortDateAsc  SortKey = "date_asc"
	SortKindAsc  SortKey = "kind_asc"
	SortKindDesc SortKey = "kind_desc"
)

// ParseSort accepts the canonical keys plus the per-collection aliases
// (type_*, category_*, status_*). Unknown keys fall back to date_desc.
func ParseSort(s string) SortKey {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case string(SortDateAsc):
		return SortDateAsc
	case string(SortKindAsc), "type_asc", "category_asc", "status_asc":
		return SortKindAsc
	case string(SortKindDesc), "type_desc", "category_desc", "status_desc":
		return SortKindDesc
	default:
		return SortDateDesc
	}
}

// FilterAll is the sentinel kind meaning "no equality filter".
const FilterAll = "all"

const DefaultPageSize = 10

// Query describes one derived view over a fetched collection. Page is
// zero-based.
type Query struct {
	View     View
	Search   string
	Kind     string
	Sort     SortKey
	Page     int
	PageSize int
}

// Page is the window of records produced by Apply.
type Page[T Record] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
	PageSize   int `json:"pageSize"`
}

// Empty reports whether the filtered set has no records, in which case the
// view renders its "no records" state.
func (p Page[T]) Empty() bool {
	return p.Total == 0
}
