package listing

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition_DisjointAndComplete(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		items := randomItems(r, r.Intn(40))

		active := Partition(items, ViewActive)
		archived := Partition(items, ViewArchived)

		seen := make(map[string]int)
		for _, it := range active {
			assert.False(t, it.archived)
			seen[it.id]++
		}
		for _, it := range archived {
			assert.True(t, it.archived)
			seen[it.id]++
		}

		assert.Len(t, seen, len(items))
		for id, n := range seen {
			assert.Equal(t, 1, n, "record %s appears in both views", id)
		}
	}
}

func TestSearch_MatchesSubstringOfAnyField(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	items := randomItems(r, 60)
	queries := []string{"rcp", "CAPACITACIÓN", "ción", "pipc civil", "zzz", "a"}

	for _, q := range queries {
		got := Search(items, q)
		gotIDs := make(map[string]bool, len(got))
		for _, it := range got {
			gotIDs[it.id] = true
		}

		for _, it := range items {
			want := strings.Contains(strings.ToLower(it.title), strings.ToLower(q)) ||
				strings.Contains(strings.ToLower(it.content), strings.ToLower(q))
			assert.Equal(t, want, gotIDs[it.id], "query %q record %q", q, it.title)
		}
	}
}

func TestApply_EmptySearchIsNoFilter(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	items := randomItems(r, 25)

	for _, view := range []View{ViewActive, ViewArchived} {
		withEmpty := Apply(items, Query{View: view, Search: "", PageSize: 100})
		without := Apply(items, Query{View: view, PageSize: 100})
		assert.Equal(t, IDs(without.Items), IDs(withEmpty.Items))
		assert.Equal(t, len(Partition(items, view)), withEmpty.Total)
	}
}

func TestApply_PaginationCoversFilteredSet(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for round := 0; round < 30; round++ {
		items := randomItems(r, r.Intn(57))
		pageSize := 1 + r.Intn(9)
		q := Query{View: ViewActive, Kind: kinds[r.Intn(len(kinds))], Sort: SortDateAsc, PageSize: pageSize}

		first := Apply(items, q)
		var all []string
		for p := 0; p < first.TotalPages; p++ {
			q.Page = p
			page := Apply(items, q)
			assert.Equal(t, p, page.Page)
			assert.LessOrEqual(t, len(page.Items), pageSize)
			all = append(all, IDs(page.Items)...)
		}

		expected := IDs(Sort(FilterKind(Partition(items, ViewActive), q.Kind), SortDateAsc))
		if len(expected) == 0 {
			assert.Empty(t, all)
			continue
		}
		assert.Equal(t, expected, all)
	}
}

func TestApply_EmptyResult(t *testing.T) {
	items := []item{{id: "a", created: baseTime, title: "Curso de primeros auxilios"}}

	page := Apply(items, Query{View: ViewActive, Search: "inexistente", Page: 4})

	assert.True(t, page.Empty())
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 0, page.Page)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestApply_PageClampedWhenSetShrinks(t *testing.T) {
	var items []item
	for i := 0; i < 25; i++ {
		items = append(items, item{id: string(rune('a' + i)), created: baseTime.Add(time.Duration(i) * time.Minute), kind: "video"})
	}

	page := Apply(items, Query{View: ViewActive, Page: 2, PageSize: 10})
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 5)

	// Archiving shrinks the active set below the third page's offset.
	for i := 0; i < 10; i++ {
		items[i].archived = true
	}
	page = Apply(items, Query{View: ViewActive, Page: 2, PageSize: 10})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 5)

	page = Apply(items, Query{View: ViewActive, Page: -3, PageSize: 10})
	assert.Equal(t, 0, page.Page)
}

func TestApply_KindFilterSentinel(t *testing.T) {
	items := []item{
		{id: "1", created: baseTime, kind: "video"},
		{id: "2", created: baseTime.Add(time.Hour), kind: "audio"},
	}

	assert.Equal(t, 2, Apply(items, Query{Kind: FilterAll}).Total)
	assert.Equal(t, 2, Apply(items, Query{Kind: ""}).Total)
	only := Apply(items, Query{Kind: "audio"})
	require.Len(t, only.Items, 1)
	assert.Equal(t, "2", only.Items[0].id)
}

func TestSort_DateOrders(t *testing.T) {
	items := []item{
		{id: "old", created: baseTime},
		{id: "new", created: baseTime.Add(48 * time.Hour)},
		{id: "mid", created: baseTime.Add(24 * time.Hour)},
	}

	assert.Equal(t, []string{"new", "mid", "old"}, IDs(Sort(items, SortDateDesc)))
	assert.Equal(t, []string{"old", "mid", "new"}, IDs(Sort(items, SortDateAsc)))
	assert.Equal(t, []string{"new", "mid", "old"}, IDs(Sort(items, "")))
	// input untouched
	assert.Equal(t, "old", items[0].id)
}

func TestSort_TiesKeepBothRecords(t *testing.T) {
	items := []item{
		{id: "a", created: baseTime},
		{id: "b", created: baseTime},
		{id: "c", created: baseTime.Add(-time.Hour)},
	}

	sorted := Sort(items, SortDateDesc)
	require.Len(t, sorted, 3)
	assert.ElementsMatch(t, []string{"a", "b"}, IDs(sorted[:2]))
	assert.Equal(t, "c", sorted[2].id)
}

func TestSort_KindUsesSpanishCollation(t *testing.T) {
	items := []item{
		{id: "1", kind: "ezz"},
		{id: "2", kind: "énfasis"},
		{id: "3", kind: "abc"},
	}

	assert.Equal(t, []string{"abc", "énfasis", "ezz"}, kindsOf(Sort(items, SortKindAsc)))
	assert.Equal(t, []string{"ezz", "énfasis", "abc"}, kindsOf(Sort(items, SortKindDesc)))
}

func kindsOf(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.kind
	}
	return out
}

func TestWindow(t *testing.T) {
	start, end, page, total, size := Window(0, 0, 0)
	assert.Equal(t, []int{0, 0, 0, 1, DefaultPageSize}, []int{start, end, page, total, size})

	start, end, page, total, size = Window(21, 2, 10)
	assert.Equal(t, []int{20, 21, 2, 3, 10}, []int{start, end, page, total, size})

	start, end, page, total, _ = Window(21, 9, 10)
	assert.Equal(t, []int{20, 21, 2, 3}, []int{start, end, page, total})
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, ViewArchived, ParseView("Archived"))
	assert.Equal(t, ViewActive, ParseView(""))
	assert.Equal(t, ViewActive, ParseView("trash"))

	assert.Equal(t, SortKindAsc, ParseSort("status_asc"))
	assert.Equal(t, SortKindDesc, ParseSort("category_desc"))
	assert.Equal(t, SortDateAsc, ParseSort("date_asc"))
	assert.Equal(t, SortDateDesc, ParseSort("whatever"))
}
