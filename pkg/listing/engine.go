package listing

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply derives the requested page from the full collection: partition by
// view, search, kind filter, sort and window. It never mutates records.
func Apply[T Record](records []T, q Query) Page[T] {
	filtered := Partition(records, q.View)
	filtered = Search(filtered, q.Search)
	filtered = FilterKind(filtered, q.Kind)
	filtered = Sort(filtered, q.Sort)

	start, end, page, totalPages, size := Window(len(filtered), q.Page, q.PageSize)

	items := make([]T, end-start)
	copy(items, filtered[start:end])

	return Page[T]{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
		PageSize:   size,
	}
}

// Partition keeps the records belonging to view. The active and archived
// partitions are disjoint and together cover records.
func Partition[T Record](records []T, view View) []T {
	wantArchived := view == ViewArchived
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.IsArchived() == wantArchived {
			out = append(out, r)
		}
	}
	return out
}

// Search keeps records where query, case-insensitively, is a substring of at
// least one searchable field. An empty query keeps everything.
func Search[T Record](records []T, query string) []T {
	if query == "" {
		return records
	}
	needle := strings.ToLower(query)
	out := make([]T, 0, len(records))
	for _, r := range records {
		for _, field := range r.SearchFields() {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// FilterKind keeps exact kind matches unless kind is empty or FilterAll.
func FilterKind[T Record](records []T, kind string) []T {
	if kind == "" || kind == FilterAll {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.Kind() == kind {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a sorted copy. Dates compare as instants; kinds use Spanish
// collation. Order between ties is not part of the contract.
func Sort[T Record](records []T, key SortKey) []T {
	out := slices.Clone(records)

	switch key {
	case SortDateAsc:
		slices.SortStableFunc(out, func(a, b T) int { return a.Created().Compare(b.Created()) })
	case SortKindAsc, SortKindDesc:
		// Collators keep internal buffers and are not safe to share.
		col := collate.New(language.Spanish)
		sign := 1
		if key == SortKindDesc {
			sign = -1
		}
		slices.SortStableFunc(out, func(a, b T) int { return sign * col.CompareString(a.Kind(), b.Kind()) })
	default:
		slices.SortStableFunc(out, func(a, b T) int { return b.Created().Compare(a.Created()) })
	}

	return out
}

// Window clamps a zero-based page over n items and returns the slice bounds.
// totalPages is at least 1 so an empty set still has a page to render.
func Window(n, page, pageSize int) (start, end, clampedPage, totalPages, size int) {
	size = pageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	totalPages = (n + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	clampedPage = page
	if clampedPage > totalPages-1 {
		clampedPage = totalPages - 1
	}
	if clampedPage < 0 {
		clampedPage = 0
	}

	start = clampedPage * size
	if start > n {
		start = n
	}
	end = start + size
	if end > n {
		end = n
	}
	return start, end, clampedPage, totalPages, size
}
