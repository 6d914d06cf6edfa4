package records

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize converts a header row plus data rows into records.
//
// When requireCompanyName is set a row is kept only if its "Company Name" is
// non-empty after trimming; otherwise a row is kept if any cell is non-empty.
// Row order is preserved. Missing or header-only input yields an empty slice.
func Normalize(rows [][]string, requireCompanyName bool) []Record {
	out := []Record{}
	if len(rows) == 0 {
		return out
	}

	header := rows[0]
	for _, row := range rows[1:] {
		rec := NewRecord(header, row)
		if requireCompanyName {
			if strings.TrimSpace(rec.Get(FieldCompanyName)) == "" {
				continue
			}
		} else if !rec.HasData() {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// FromCells converts the API's loosely typed cell matrix to strings.
// nil cells become "", numbers are printed without exponent, booleans as TRUE/FALSE.
func FromCells(cells [][]any) [][]string {
	rows := make([][]string, len(cells))
	for i, row := range cells {
		out := make([]string, len(row))
		for j, cell := range row {
			out[j] = cellText(cell)
		}
		rows[i] = out
	}
	return rows
}

func cellText(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(v)
	}
}
