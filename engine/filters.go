package engine

import (
	"strconv"
	"strings"

	"github.com/pivotr-org/pivotr/catalog"
)

// ============================================================================
// FILTER EVALUATOR — AND-narrowing over a RecordView
// ============================================================================
// Filters apply in order, each narrowing the working set. Every step returns
// a SubView (index list into the parent) — zero data copy. A filter that
// eliminates everything simply yields an empty view; later filters run over
// nothing and the pipeline stays well-defined.
// ============================================================================

// ApplyFilters returns a view of the records satisfying all filters.
// An unknown field id (absent from the catalog) matches nothing.
func ApplyFilters(view RecordView, filters []FilterSpec, cat catalog.Catalog, norm *Normalizer) RecordView {
	out := view
	for _, f := range filters {
		out = applyOne(out, f, cat, norm)
	}
	return out
}

func applyOne(view RecordView, filter FilterSpec, cat catalog.Catalog, norm *Normalizer) RecordView {
	if !cat.Has(filter.FilterField()) {
		return newSubView(view, nil)
	}

	switch f := filter.(type) {
	case ListFilter:
		return applyList(view, f, norm)
	case TimeRangeFilter:
		return applyTimeRange(view, f)
	default:
		// Unsupported filter kinds keep nothing rather than panicking.
		return newSubView(view, nil)
	}
}

func applyList(view RecordView, f ListFilter, norm *Normalizer) RecordView {
	// An empty selection is a no-op: it keeps all records, not zero.
	if len(f.Selected) == 0 {
		return view
	}

	set := make(map[string]bool, len(f.Selected))
	for _, v := range f.Selected {
		set[v] = true
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		val := norm.Normalize(f.Field, view.Dimension(i, f.Field))
		if set[val] {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

func applyTimeRange(view RecordView, f TimeRangeFilter) RecordView {
	lo, okLo := clockBound(f.Start, 0)
	hi, okHi := clockBound(f.End, 59)
	if !okLo || !okHi {
		return newSubView(view, nil)
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		raw := strings.TrimSpace(view.Dimension(i, f.Field))
		if raw == "" {
			continue
		}
		// Field values are HHMMSS clock integers. Non-numeric values drop
		// the record.
		val, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if val >= lo && val <= hi {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

// clockBound converts "HH:MM" to an HHMMSS integer with the given seconds.
// "09:30" with seconds 0 → 93000; "16:00" with seconds 59 → 160059, which
// makes the end bound inclusive through the last second of its minute.
func clockBound(hhmm string, seconds int) (int, bool) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*10000 + m*100 + seconds, true
}
