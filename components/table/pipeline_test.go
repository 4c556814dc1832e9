package table

import (
	"testing"
)

func projectFixture() []Record {
	return []Record{
		{"name": "Atlas migration", "status": "in progress", "progress": 64},
		{"name": "Billing revamp", "status": "delayed", "progress": 31},
		{"name": "Mobile onboarding", "status": "done", "progress": 100},
		{"name": "Search rewrite", "status": "waiting", "progress": 12},
		{"name": "Design refresh", "status": "planned", "progress": 0},
		{"name": "API gateway", "status": "in progress", "progress": 48},
		{"name": "Data warehouse", "status": "done", "progress": 100},
	}
}

func TestFilterEmptyTermIsIdentity(t *testing.T) {
	dataset := projectFixture()
	for _, term := range []string{"", "   "} {
		got := Filter(dataset, term)
		if len(got) != len(dataset) {
			t.Fatalf("empty term %q changed the dataset: %d rows", term, len(got))
		}
	}
}

func TestFilterMatchesAnyField(t *testing.T) {
	dataset := []Record{
		{"name": "A", "status": "done", "progress": 100},
		{"name": "B", "status": "waiting", "progress": 15},
	}
	got := Filter(dataset, "a")
	if len(got) != 2 {
		// "a" matches A by name and B by "waiting".
		t.Fatalf("expected substring match across fields, got %d rows", len(got))
	}
	got = Filter(dataset, "done")
	if len(got) != 1 || got[0]["name"] != "A" {
		t.Fatalf("expected only A for term %q, got %#v", "done", got)
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	got := Filter(projectFixture(), "ATLAS")
	if len(got) != 1 || got[0]["name"] != "Atlas migration" {
		t.Fatalf("expected case-insensitive match, got %#v", got)
	}
}

func TestFilterMatchesNumericText(t *testing.T) {
	got := Filter(projectFixture(), "100")
	if len(got) != 2 {
		t.Fatalf("expected numeric fields searchable as text, got %d rows", len(got))
	}
}

func TestSortNumericColumn(t *testing.T) {
	got := Sort(projectFixture(), "progress", true)
	prev := -1.0
	for _, rec := range got {
		n, _ := toNumber(rec["progress"])
		if n < prev {
			t.Fatalf("progress not ascending: %v after %v", n, prev)
		}
		prev = n
	}
}

func TestSortLexicalColumn(t *testing.T) {
	got := Sort(projectFixture(), "name", false)
	if got[0]["name"] != "Search rewrite" {
		t.Fatalf("expected descending lexical order, got %v first", got[0]["name"])
	}
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	got := Sort(projectFixture(), "status", true)
	var inProgress []string
	for _, rec := range got {
		if rec["status"] == "in progress" {
			inProgress = append(inProgress, rec["name"].(string))
		}
	}
	if len(inProgress) != 2 || inProgress[0] != "Atlas migration" || inProgress[1] != "API gateway" {
		t.Fatalf("expected arrival order preserved for ties, got %v", inProgress)
	}
}

func TestSortIsIdempotent(t *testing.T) {
	once := Sort(projectFixture(), "progress", true)
	twice := Sort(once, "progress", true)
	for i := range once {
		if once[i]["name"] != twice[i]["name"] {
			t.Fatalf("sort not idempotent at row %d: %v vs %v", i, once[i]["name"], twice[i]["name"])
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	dataset := projectFixture()
	first := dataset[0]["name"]
	_ = Sort(dataset, "name", true)
	if dataset[0]["name"] != first {
		t.Fatal("Sort reordered the caller's slice")
	}
}

func TestPaginateClampsPageIndex(t *testing.T) {
	dataset := projectFixture()
	page := Paginate(dataset, 99)
	if page.PageIndex != 2 || page.PageCount != 2 {
		t.Fatalf("expected clamp to last page, got index %d of %d", page.PageIndex, page.PageCount)
	}
	page = Paginate(dataset, -3)
	if page.PageIndex != 1 {
		t.Fatalf("expected clamp to first page, got %d", page.PageIndex)
	}
}

func TestPaginateEmptyDataset(t *testing.T) {
	page := Paginate(nil, 1)
	if page.PageCount != 1 || page.PageIndex != 1 || len(page.Records) != 0 {
		t.Fatalf("expected single empty page, got %#v", page)
	}
}

func TestPaginatePagesConcatenateToWhole(t *testing.T) {
	dataset := projectFixture()
	var all []Record
	first := Paginate(dataset, 1)
	for p := 1; p <= first.PageCount; p++ {
		all = append(all, Paginate(dataset, p).Records...)
	}
	if len(all) != len(dataset) {
		t.Fatalf("pages concatenate to %d rows, want %d", len(all), len(dataset))
	}
	for i := range all {
		if all[i]["name"] != dataset[i]["name"] {
			t.Fatalf("row %d out of order: %v", i, all[i]["name"])
		}
	}
}

func TestPipelineFixedOrder(t *testing.T) {
	dataset := projectFixture()
	opts := Options{Sortable: true, Paginated: true, Searchable: true}
	page := Pipeline(dataset, opts, State{Search: "in progress", SortKey: "progress", SortAsc: true, Page: 1})
	if page.TotalCount != 2 {
		t.Fatalf("expected filter before pagination, got total %d", page.TotalCount)
	}
	if page.Records[0]["name"] != "API gateway" {
		t.Fatalf("expected sort applied after filter, got %v first", page.Records[0]["name"])
	}
}

func TestPipelineDisabledFlagsSkipStages(t *testing.T) {
	dataset := projectFixture()
	page := Pipeline(dataset, Options{}, State{Search: "atlas", SortKey: "name", Page: 9})
	if len(page.Records) != len(dataset) {
		t.Fatalf("expected search ignored when not searchable, got %d rows", len(page.Records))
	}
	if page.Records[0]["name"] != "Atlas migration" {
		t.Fatalf("expected original order without sortable, got %v first", page.Records[0]["name"])
	}
	if page.PageCount != 1 {
		t.Fatalf("expected single page without pagination, got %d", page.PageCount)
	}
}

func TestPipelineReclampsAfterFilterShrinks(t *testing.T) {
	dataset := projectFixture()
	opts := Options{Searchable: true, Paginated: true}
	page := Pipeline(dataset, opts, State{Search: "done", Page: 2})
	if page.PageIndex != 1 || len(page.Records) != 2 {
		t.Fatalf("expected page clamped to shrunken set, got %#v", page)
	}
}
