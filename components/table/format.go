package table

import (
	"fmt"
	"strings"
)

// PlaceholderDash renders missing values.
const PlaceholderDash = "—"

// CurrencyPrefix is the fixed prefix used for monetary columns.
const CurrencyPrefix = "$"

// BadgeTone is the visual emphasis attached to a categorical badge.
type BadgeTone string

const (
	ToneSuccess BadgeTone = "success"
	ToneInfo    BadgeTone = "info"
	ToneWarning BadgeTone = "warning"
	ToneDanger  BadgeTone = "danger"
	ToneNeutral BadgeTone = "neutral"
)

// Cell is a formatted value ready for display.
type Cell struct {
	Text  string    `json:"text"`
	Badge BadgeTone `json:"badge,omitempty"`
}

// Fixed lookup tables from category value to visual emphasis. Unmapped
// values fall back to a neutral badge rather than failing.
var statusTones = map[string]BadgeTone{
	"done":        ToneSuccess,
	"in progress": ToneInfo,
	"planned":     ToneNeutral,
	"waiting":     ToneWarning,
	"delayed":     ToneDanger,
}

var severityTones = map[string]BadgeTone{
	"high":   ToneDanger,
	"medium": ToneWarning,
	"low":    ToneInfo,
}

// FormatCell renders a record value according to the column's semantics,
// derived from its label and field key rather than the raw value alone.
func FormatCell(col Column, value any) Cell {
	if value == nil {
		return Cell{Text: PlaceholderDash}
	}
	key := strings.ToLower(col.FieldKey)
	label := strings.ToLower(col.Label)
	switch {
	case isPercentColumn(key) || isPercentColumn(label):
		return Cell{Text: cellString(value) + "%"}
	case isMoneyColumn(key) || isMoneyColumn(label):
		return Cell{Text: formatCurrency(value)}
	case strings.Contains(key, "status"):
		return badgeCell(value, statusTones)
	case strings.Contains(key, "severity") || strings.Contains(key, "priority"):
		return badgeCell(value, severityTones)
	default:
		return Cell{Text: cellString(value)}
	}
}

// FormatRow formats every configured column of one record.
func FormatRow(columns []Column, rec Record) []Cell {
	cells := make([]Cell, len(columns))
	for i, col := range columns {
		cells[i] = FormatCell(col, rec[col.FieldKey])
	}
	return cells
}

func badgeCell(value any, tones map[string]BadgeTone) Cell {
	text := cellString(value)
	tone, ok := tones[strings.ToLower(text)]
	if !ok {
		tone = ToneNeutral
	}
	return Cell{Text: text, Badge: tone}
}

func isPercentColumn(name string) bool {
	return strings.Contains(name, "percent") ||
		strings.Contains(name, "progress") ||
		strings.Contains(name, "completion")
}

func isMoneyColumn(name string) bool {
	for _, hint := range []string{"budget", "revenue", "cost", "amount", "price", "salary"} {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}

// formatCurrency renders the value with thousands grouping and the fixed
// currency prefix.
func formatCurrency(value any) string {
	n, ok := toNumber(value)
	if !ok {
		return CurrencyPrefix + cellString(value)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	whole := int64(n)
	grouped := groupThousands(fmt.Sprintf("%d", whole))
	if neg {
		return CurrencyPrefix + "-" + grouped
	}
	return CurrencyPrefix + grouped
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
