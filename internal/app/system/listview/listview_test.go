package listview

import (
	"bytes"
	"encoding/csv"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

type row struct {
	ID      int
	Name    string
	Created time.Time
}

func rowSpec() Spec[row] {
	return Spec[row]{
		PageSize:    5,
		DefaultSort: Sort{Key: "created", Dir: Desc},
		SortFields: []SortField[row]{
			ByNumber("id", func(r row) int { return r.ID }),
			ByString("name", func(r row) string { return r.Name }),
			ByTime("created", func(r row) time.Time { return r.Created }),
		},
		Search: func(r row) []string { return []string{r.Name} },
		Columns: []Column[row]{
			{Header: "ID", SortKey: "id", Value: func(r row) string { return strconv.Itoa(r.ID) }},
			{Header: "Name", SortKey: "name", Value: func(r row) string { return r.Name }},
		},
	}
}

func ids(rs []row) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRun_DefaultSortThenHeaderClick(t *testing.T) {
	sp := rowSpec()
	items := []row{
		{ID: 1, Name: "B", Created: day("2024-01-02")},
		{ID: 2, Name: "A", Created: day("2024-01-01")},
	}

	res := sp.Run(items, State{})
	if got := ids(res.Items); !equalInts(got, []int{1, 2}) {
		t.Fatalf("default order = %v, want [1 2]", got)
	}

	res = sp.Run(items, res.State.ToggleSort("name"))
	if got := ids(res.Items); !equalInts(got, []int{2, 1}) {
		t.Fatalf("after name click = %v, want [2 1]", got)
	}
	if res.State.Sort != (Sort{Key: "name", Dir: Asc}) {
		t.Errorf("sort = %+v", res.State.Sort)
	}
}

func TestRun_TwelveRecordsThreePages(t *testing.T) {
	sp := rowSpec()
	items := make([]row, 12)
	for i := range items {
		items[i] = row{ID: i + 1, Name: "n"}
	}

	tests := []struct {
		page      int
		wantCount int
	}{
		{1, 5}, {2, 5}, {3, 2}, {4, 0},
	}
	for _, tt := range tests {
		res := sp.Run(items, State{Page: tt.page})
		if res.Range.TotalPages != 3 {
			t.Errorf("page %d: TotalPages = %d, want 3", tt.page, res.Range.TotalPages)
		}
		if len(res.Items) != tt.wantCount {
			t.Errorf("page %d: len = %d, want %d", tt.page, len(res.Items), tt.wantCount)
		}
	}
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	sp := rowSpec()
	items := []row{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	_ = sp.Run(items, State{Sort: Sort{Key: "id", Dir: Asc}, Query: "a"})
	if got := ids(items); !equalInts(got, []int{3, 1, 2}) {
		t.Errorf("input reordered: %v", got)
	}
}

func TestRun_FilterUsesAnySearchField(t *testing.T) {
	sp := rowSpec()
	sp.Search = func(r row) []string {
		resolved := map[int]string{1: "Pune", 2: "Nashik"}[r.ID]
		return []string{r.Name, resolved}
	}
	items := []row{{ID: 1, Name: "Green"}, {ID: 2, Name: "Blue"}, {ID: 3, Name: "Red"}}

	res := sp.Run(items, State{Query: "nash", Sort: Sort{Key: "id", Dir: Asc}})
	if got := ids(res.Filtered); !equalInts(got, []int{2}) {
		t.Errorf("filtered = %v, want [2]", got)
	}

	res = sp.Run(items, State{Query: "", Sort: Sort{Key: "id", Dir: Asc}})
	if len(res.Filtered) != 3 {
		t.Errorf("empty query filtered %d, want 3", len(res.Filtered))
	}
}

func TestNormalize(t *testing.T) {
	sp := rowSpec()
	tests := []struct {
		name string
		in   State
		want State
	}{
		{"unknown key falls back", State{Sort: Sort{Key: "bogus", Dir: Asc}, Page: 2}, State{Sort: Sort{Key: "created", Dir: Desc}, Page: 2}},
		{"missing dir is asc", State{Sort: Sort{Key: "name"}}, State{Sort: Sort{Key: "name", Dir: Asc}, Page: 1}},
		{"page clamped", State{Sort: Sort{Key: "id", Dir: Desc}, Page: -3}, State{Sort: Sort{Key: "id", Dir: Desc}, Page: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sp.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToggleSort(t *testing.T) {
	tests := []struct {
		name string
		from Sort
		key  string
		want Sort
	}{
		{"new key ascending", Sort{"created", Desc}, "name", Sort{"name", Asc}},
		{"same key asc flips", Sort{"name", Asc}, "name", Sort{"name", Desc}},
		{"same key desc goes asc", Sort{"name", Desc}, "name", Sort{"name", Asc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := State{Sort: tt.from, Page: 4}.ToggleSort(tt.key)
			if got.Sort != tt.want {
				t.Errorf("sort = %+v, want %+v", got.Sort, tt.want)
			}
			if got.Page != 4 {
				t.Errorf("page changed to %d", got.Page)
			}
		})
	}
}

func TestSortStable_TimeAndZero(t *testing.T) {
	items := []row{
		{ID: 1, Created: day("2024-03-01")},
		{ID: 2},
		{ID: 3, Created: day("2023-12-31")},
	}
	f := ByTime("created", func(r row) time.Time { return r.Created })
	SortStable(items, f, Asc)
	if got := ids(items); !equalInts(got, []int{2, 3, 1}) {
		t.Errorf("asc = %v, want [2 3 1]", got)
	}
}

func TestSortStable_StringIsCaseSensitive(t *testing.T) {
	items := []row{{ID: 1, Name: "b"}, {ID: 2, Name: "B"}, {ID: 3, Name: "a"}}
	SortStable(items, ByString("name", func(r row) string { return r.Name }), Asc)
	if got := ids(items); !equalInts(got, []int{2, 3, 1}) {
		t.Errorf("order = %v, want [2 3 1]", got)
	}
}

func TestParseStateAndHref(t *testing.T) {
	r := httptest.NewRequest("GET", "/dashboard/masters/school/view?q=pune&sort=name&dir=DESC&page=2", nil)
	st := ParseState(r)
	want := State{Query: "pune", Sort: Sort{Key: "name", Dir: Desc}, Page: 2}
	if st != want {
		t.Fatalf("ParseState = %+v, want %+v", st, want)
	}

	href := st.Href("/list")
	if href != "/list?dir=desc&page=2&q=pune&sort=name" {
		t.Errorf("Href = %q", href)
	}
	if got := (State{Page: 1}).Href("/list"); got != "/list" {
		t.Errorf("empty Href = %q", got)
	}
}

func TestHeaderCells(t *testing.T) {
	sp := rowSpec()
	st := State{Query: "x", Sort: Sort{Key: "name", Dir: Asc}, Page: 3}
	cells := HeaderCells(sp.Columns, st, "/l")

	if cells[0].Active || !cells[0].Sortable {
		t.Errorf("id cell = %+v", cells[0])
	}
	if cells[0].Href != "/l?dir=asc&page=3&q=x&sort=id" {
		t.Errorf("id href = %q", cells[0].Href)
	}
	if !cells[1].Active || cells[1].Dir != Asc {
		t.Errorf("name cell = %+v", cells[1])
	}
	if cells[1].Href != "/l?dir=desc&page=3&q=x&sort=name" {
		t.Errorf("name href = %q", cells[1].Href)
	}
}

func TestPagerLinks(t *testing.T) {
	sp := rowSpec()
	items := make([]row, 12)
	res := sp.Run(items, State{Page: 2, Sort: Sort{Key: "id", Dir: Asc}})
	p := PagerLinks(res, "/l")
	if p.PrevHref != "/l?dir=asc&sort=id" {
		t.Errorf("prev = %q", p.PrevHref)
	}
	if p.NextHref != "/l?dir=asc&page=3&sort=id" {
		t.Errorf("next = %q", p.NextHref)
	}

	res = sp.Run(items, State{Page: 1})
	if PagerLinks(res, "/l").PrevHref != "" {
		t.Error("page 1 should have no prev link")
	}
}

func TestWriteCSV_QuotesAndCountsFilteredRows(t *testing.T) {
	sp := rowSpec()
	items := []row{
		{ID: 1, Name: `Shivaji, "Main"`},
		{ID: 2, Name: "line\nbreak"},
		{ID: 3, Name: "plain"},
	}
	var buf bytes.Buffer
	if err := WriteCSV(csv.NewWriter(&buf), items, sp.Columns); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != len(items)+1 {
		t.Fatalf("rows = %d, want %d", len(recs), len(items)+1)
	}
	if recs[0][0] != "ID" || recs[0][1] != "Name" {
		t.Errorf("header = %v", recs[0])
	}
	if recs[1][1] != `Shivaji, "Main"` || recs[2][1] != "line\nbreak" {
		t.Errorf("values did not round-trip: %v", recs[1:])
	}
}
