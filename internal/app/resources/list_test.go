package resources

import (
	"bytes"
	"html/template"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/schooladmin/internal/app/system/listview"
)

type entry struct {
	ID   int
	Name string
}

func TestListToolbar_SearchFormKeepsSort(t *testing.T) {
	tmpl := template.Must(template.ParseFS(FS, "templates/list.gohtml"))

	sp := listview.Spec[entry]{
		PageSize:    5,
		DefaultSort: listview.Sort{Key: "id", Dir: listview.Asc},
		SortFields: []listview.SortField[entry]{
			listview.ByNumber("id", func(e entry) int { return e.ID }),
			listview.ByString("name", func(e entry) string { return e.Name }),
		},
		Search: func(e entry) []string { return []string{e.Name} },
		Columns: []listview.Column[entry]{
			{Header: "Name", SortKey: "name", Value: func(e entry) string { return e.Name }},
		},
	}
	r := httptest.NewRequest("GET", "/v?sort=name&dir=asc&page=2", nil)
	v := sp.View(sp.Run(nil, listview.ParseState(r)), "/v")
	v.Target = "table-wrap"

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "list_toolbar", v); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<input type="hidden" name="sort" value="name">`,
		`<input type="hidden" name="dir" value="asc">`,
		`hx-include="closest form"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("toolbar missing %s\n%s", want, out)
		}
	}
	if strings.Contains(out, `name="page"`) {
		t.Errorf("search form carries the page:\n%s", out)
	}
}
