package engine

import "strings"

// ============================================================================
// GROUPING ENGINE — row × column bucketing
// ============================================================================
// Every filtered record lands in exactly one (rowKey, colKey) bucket. Keys
// are the normalized dimension values joined with KeySeparator in field
// order, so reordering the row or column fields changes the grouping itself,
// not just the display. Bucket membership and key emission both preserve
// first-seen order.
// ============================================================================

// Grouping is the bucketed form of a filtered record set. Buckets hold
// indices into the grouped view — no record copies.
type Grouping struct {
	// RowOrder lists row keys in first-seen order.
	RowOrder []string
	// ColOrder lists column keys in first-seen order across all rows.
	// Contains only "" in simple (no-columns) mode.
	ColOrder []string
	// Buckets maps rowKey → colKey → record indices.
	Buckets map[string]map[string][]int
}

// BucketCount returns the number of (rowKey, colKey) buckets.
func (g Grouping) BucketCount() int {
	n := 0
	for _, cols := range g.Buckets {
		n += len(cols)
	}
	return n
}

// GroupRecords partitions a view into row (and optionally column) buckets.
// With no row fields every record lands under the synthetic TotalKey; with
// no column fields the column key is the constant "".
func GroupRecords(view RecordView, rows, columns []string, norm *Normalizer) Grouping {
	g := Grouping{Buckets: make(map[string]map[string][]int)}
	colSeen := make(map[string]bool)

	n := view.Len()
	for i := 0; i < n; i++ {
		rowKey := compositeKey(view, i, rows, norm)
		if len(rows) == 0 {
			rowKey = TotalKey
		}

		colKey := ""
		if len(columns) > 0 {
			colKey = compositeKey(view, i, columns, norm)
		}

		cols, ok := g.Buckets[rowKey]
		if !ok {
			cols = make(map[string][]int)
			g.Buckets[rowKey] = cols
			g.RowOrder = append(g.RowOrder, rowKey)
		}
		if !colSeen[colKey] {
			colSeen[colKey] = true
			g.ColOrder = append(g.ColOrder, colKey)
		}
		cols[colKey] = append(cols[colKey], i)
	}

	return g
}

// compositeKey joins the normalized values of the given fields for record i.
func compositeKey(view RecordView, i int, fields []string, norm *Normalizer) string {
	parts := make([]string, len(fields))
	for j, f := range fields {
		parts[j] = norm.Normalize(f, view.Dimension(i, f))
	}
	return strings.Join(parts, KeySeparator)
}
