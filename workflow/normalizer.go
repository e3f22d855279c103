package workflow

import (
	"strings"

	"bitbucket.org/mmdatafocus/telecom_backend/utils"
)

// RawCell is one header/value pair read from a carrier export. Rows keep
// their cells in file order so the last-wins collision policy of
// NormalizeRow is deterministic.
type RawCell struct {
	Header string
	Value  string
}

type RawRow []RawCell

// IsEmpty reports whether every value in the row is blank.
func (r RawRow) IsEmpty() bool {
	for _, cell := range r {
		if strings.TrimSpace(cell.Value) != "" {
			return false
		}
	}
	return true
}

// FilterEmptyRows drops rows whose every value is blank, before any
// enrichment runs. Order is preserved.
func FilterEmptyRows(rows []RawRow) []RawRow {
	filtered := make([]RawRow, 0, len(rows))
	for _, row := range rows {
		if row.IsEmpty() {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// Per-carrier header delimiter sets. AT&T family exports separate header
// tokens with spaces, colons, slashes and parentheses; Verizon additionally
// hyphenates.
const (
	delimitersATT             = " :/()"
	delimitersFirstNet        = " :/()"
	delimitersVerizonWireless = " :/()-"
)

// NormalizeRow maps a raw row into the canonical field-name space: each
// header is split on the carrier's delimiter set and camel-cased. Values
// pass through unchanged; sanitization belongs to enrichment. A cell whose
// header normalizes to an already-present key overwrites it (last wins);
// a cell with a blank header is skipped silently.
func NormalizeRow(row RawRow, delimiters string) map[string]string {
	fields := make(map[string]string, len(row))
	for _, cell := range row {
		key := CanonicalFieldName(cell.Header, delimiters)
		if key == "" {
			continue
		}
		fields[key] = cell.Value
	}
	return fields
}

// CanonicalFieldName turns a raw header like "Total Current Charges" into
// "totalCurrentCharges". Returns "" when the header holds no tokens.
func CanonicalFieldName(header string, delimiters string) string {
	tokens := strings.FieldsFunc(header, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder
	for i, token := range tokens {
		token = strings.ToLower(token)
		if i == 0 {
			b.WriteString(token)
			continue
		}
		b.WriteString(utils.UppercaseFirst(token))
	}
	return b.String()
}
