package engine

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ============================================================================
// SORTER — numeric-first, collation-fallback row-key ordering
// ============================================================================
// The sort field's value is extracted from each composite key, and each
// pairwise comparison tries numbers first: only when both sides parse as
// numbers is the comparison numeric, otherwise it falls back to locale-aware
// string collation. This keeps price-like dimension values from degrading to
// lexicographic order ("10" < "2").
// ============================================================================

// SortRowKeys orders row keys according to the sort spec. A nil spec keeps
// the grouping emission order, as does a spec naming a field outside rows.
func SortRowKeys(keys []string, rows []string, spec *SortSpec) []string {
	out := append([]string(nil), keys...)
	if spec == nil {
		return out
	}

	pos := -1
	for i, f := range rows {
		if f == spec.Field {
			pos = i
			break
		}
	}
	if pos < 0 {
		return out
	}

	desc := spec.Direction == SortDesc
	col := collate.New(language.Und)

	sort.SliceStable(out, func(i, j int) bool {
		a := keyPart(out[i], rows, pos)
		b := keyPart(out[j], rows, pos)

		af, aerr := strconv.ParseFloat(a, 64)
		bf, berr := strconv.ParseFloat(b, 64)
		if aerr == nil && berr == nil {
			if desc {
				return af > bf
			}
			return af < bf
		}

		c := col.CompareString(a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})

	return out
}

// keyPart extracts the sort field's value from a composite row key.
// Single-field keys are taken whole — they contain no separator.
func keyPart(key string, rows []string, pos int) string {
	if len(rows) <= 1 {
		return key
	}
	parts := strings.Split(key, KeySeparator)
	if pos >= len(parts) {
		return key
	}
	return parts[pos]
}
