package table

import (
	"fmt"
	"sort"
	"strings"
)

// PageSize is the fixed number of records per page.
const PageSize = 5

// Record is a uniformly-shaped data row: field name to scalar value.
type Record = map[string]any

// Page is the result of one pipeline pass: the visible slice plus the
// clamped page index and total page count.
type Page struct {
	Records    []Record `json:"records"`
	PageIndex  int      `json:"page_index"`
	PageCount  int      `json:"page_count"`
	TotalCount int      `json:"total_count"`
}

// Pipeline applies filter, sort, and pagination in that fixed order on every
// state change. Operations are total over well-formed input: out-of-range
// pages are clamped, never errors.
func Pipeline(dataset []Record, opts Options, state State) Page {
	rows := dataset
	if opts.Searchable {
		rows = Filter(rows, state.Search)
	}
	if opts.Sortable && state.SortKey != "" {
		rows = Sort(rows, state.SortKey, state.SortAsc)
	}
	if !opts.Paginated {
		return Page{Records: rows, PageIndex: 1, PageCount: 1, TotalCount: len(rows)}
	}
	return Paginate(rows, state.Page)
}

// Filter keeps records where any field's string representation contains the
// term as a case-insensitive substring. An empty term is the identity.
func Filter(dataset []Record, term string) []Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return dataset
	}
	var out []Record
	for _, rec := range dataset {
		for _, value := range rec {
			if strings.Contains(strings.ToLower(cellString(value)), term) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Sort orders records by the value at fieldKey using natural ordering:
// numeric comparison when both sides are numbers, lexical otherwise. The
// sort is stable so equal keys keep their arrival order.
func Sort(dataset []Record, fieldKey string, asc bool) []Record {
	out := make([]Record, len(dataset))
	copy(out, dataset)
	sort.SliceStable(out, func(i, j int) bool {
		less := compareValues(out[i][fieldKey], out[j][fieldKey]) < 0
		if asc {
			return less
		}
		return compareValues(out[j][fieldKey], out[i][fieldKey]) < 0
	})
	return out
}

// Paginate slices the dataset to one fixed-size page. The page index clamps
// to [1, ceil(n/PageSize)]; an empty dataset yields a single empty page.
func Paginate(dataset []Record, page int) Page {
	total := len(dataset)
	pageCount := (total + PageSize - 1) / PageSize
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page{
		Records:    dataset[start:end],
		PageIndex:  page,
		PageCount:  pageCount,
		TotalCount: total,
	}
}

func compareValues(a, b any) int {
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(cellString(a), cellString(b))
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	default:
		return 0, false
	}
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if n, ok := toNumber(v); ok {
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	}
	return fmt.Sprintf("%v", v)
}
