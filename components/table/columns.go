// Package table implements the generic filter/sort/paginate/format pipeline
// backing the table widget. The engine is stateless with respect to its
// host: callers own the current search term, sort key, and page index and
// pass them in on every state change.
package table

import (
	"strings"

	"github.com/ettle/strcase"
)

// Column pairs a human-readable label with the record field it reads from.
// Keeping the two explicit removes the implicit coupling between display
// text and lookup keys.
type Column struct {
	Label    string `json:"label"`
	FieldKey string `json:"field_key"`
}

// DeriveFieldKey computes the fallback field key for a label: lowercase with
// whitespace runs collapsed to underscores.
func DeriveFieldKey(label string) string {
	return strcase.ToSnake(strings.Join(strings.Fields(label), " "))
}

// ResolveColumns maps every label to a column using the explicit overrides
// table first and the derivation fallback otherwise. The mapping is total:
// every label resolves to some key.
func ResolveColumns(labels []string, overrides map[string]string) []Column {
	columns := make([]Column, len(labels))
	for i, label := range labels {
		key, ok := overrides[label]
		if !ok || key == "" {
			key = DeriveFieldKey(label)
		}
		columns[i] = Column{Label: label, FieldKey: key}
	}
	return columns
}
