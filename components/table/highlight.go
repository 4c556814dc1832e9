package table

import "strings"

// Emphasis marks how strongly a row should stand out.
type Emphasis string

const (
	EmphasisNone   Emphasis = ""
	EmphasisMedium Emphasis = "medium"
	EmphasisHigh   Emphasis = "high"
)

// RowEmphasis flags a row by its severity and status fields, evaluated per
// row independently of filter, sort, and page state. The top severity tier
// or the most urgent status tier yields high emphasis; the next tier down
// yields medium.
func RowEmphasis(rec Record) Emphasis {
	severity := strings.ToLower(cellString(rec["severity"]))
	status := strings.ToLower(cellString(rec["status"]))
	switch {
	case severity == "high" || status == "delayed":
		return EmphasisHigh
	case severity == "medium" || status == "waiting":
		return EmphasisMedium
	default:
		return EmphasisNone
	}
}

// HighlightRows computes the emphasis of every record when highlighting is
// enabled; disabled tables report no emphasis for any row.
func HighlightRows(dataset []Record, opts Options) []Emphasis {
	out := make([]Emphasis, len(dataset))
	if !opts.Highlighted {
		return out
	}
	for i, rec := range dataset {
		out[i] = RowEmphasis(rec)
	}
	return out
}
