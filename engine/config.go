package engine

// ============================================================================
// CONFIGURATION MODEL — mutation contract
// ============================================================================
// These five operations are the entire surface the drag-and-drop UI needs.
// Each returns a new Configuration; the receiver is never modified, and all
// backing slices are copied so no two configurations share storage.
// ============================================================================

// clone returns a deep copy of the configuration.
func (c Configuration) clone() Configuration {
	out := c
	out.Rows = append([]string(nil), c.Rows...)
	out.Columns = append([]string(nil), c.Columns...)
	out.Aggregations = append([]AggKind(nil), c.Aggregations...)
	out.Filters = append([]FilterSpec(nil), c.Filters...)
	if c.Sort != nil {
		s := *c.Sort
		out.Sort = &s
	}
	return out
}

// AddField adds a field to rows, columns, or filters. Adding a field already
// present in the target is a no-op. A field dropped onto the filter list gets
// a ListFilter pre-populated with the record set's distinct normalized values
// — except the designated time field, which gets a TimeRangeFilter covering
// the usual trading session (08:00–16:00).
func (c Configuration) AddField(target Target, fieldID string, view RecordView, norm *Normalizer) Configuration {
	out := c.clone()
	switch target {
	case TargetRows:
		if !containsString(out.Rows, fieldID) {
			out.Rows = append(out.Rows, fieldID)
		}
	case TargetColumns:
		if !containsString(out.Columns, fieldID) {
			out.Columns = append(out.Columns, fieldID)
		}
	case TargetFilters:
		for _, f := range out.Filters {
			if f.FilterField() == fieldID {
				return out
			}
		}
		if fieldID == out.TimeField && out.TimeField != "" {
			out.Filters = append(out.Filters, TimeRangeFilter{Field: fieldID, Start: "08:00", End: "16:00"})
		} else {
			var selected []string
			if view != nil {
				selected = norm.DistinctValues(view, fieldID)
				// A fresh filter must keep every record, including those
				// whose field value is empty.
				if hasEmptyValue(view, fieldID, norm) {
					selected = append(selected, "")
				}
			}
			out.Filters = append(out.Filters, ListFilter{Field: fieldID, Selected: selected})
		}
	}
	return out
}

// RemoveField removes a field from the target list. Removing the current
// sort field from rows also clears the sort, so the configuration never
// carries a sort referencing a field that no longer groups anything.
func (c Configuration) RemoveField(target Target, fieldID string) Configuration {
	out := c.clone()
	switch target {
	case TargetRows:
		out.Rows = removeString(out.Rows, fieldID)
		if out.Sort != nil && out.Sort.Field == fieldID {
			out.Sort = nil
		}
	case TargetColumns:
		out.Columns = removeString(out.Columns, fieldID)
	case TargetFilters:
		filters := out.Filters[:0:0]
		for _, f := range out.Filters {
			if f.FilterField() != fieldID {
				filters = append(filters, f)
			}
		}
		out.Filters = filters
	}
	return out
}

// MoveField reorders an entry within a target list. Reordering rows or
// columns changes composite-key construction order and therefore the
// grouping itself, not just the display. Out-of-range indexes are a no-op.
func (c Configuration) MoveField(target Target, fromIndex, toIndex int) Configuration {
	out := c.clone()
	switch target {
	case TargetRows:
		out.Rows = moveString(out.Rows, fromIndex, toIndex)
	case TargetColumns:
		out.Columns = moveString(out.Columns, fromIndex, toIndex)
	case TargetFilters:
		if fromIndex < 0 || fromIndex >= len(out.Filters) || toIndex < 0 || toIndex >= len(out.Filters) {
			return out
		}
		f := out.Filters[fromIndex]
		out.Filters = append(out.Filters[:fromIndex], out.Filters[fromIndex+1:]...)
		rest := append([]FilterSpec(nil), out.Filters[toIndex:]...)
		out.Filters = append(append(out.Filters[:toIndex:toIndex], f), rest...)
	}
	return out
}

// SetAggregations replaces the aggregation set, deduplicating while keeping
// order. An empty result falls back to COUNT so the set is never empty.
func (c Configuration) SetAggregations(kinds []AggKind) Configuration {
	out := c.clone()
	seen := make(map[AggKind]bool, len(kinds))
	deduped := make([]AggKind, 0, len(kinds))
	for _, k := range kinds {
		if ValidAggKind(k) && !seen[k] {
			seen[k] = true
			deduped = append(deduped, k)
		}
	}
	if len(deduped) == 0 {
		deduped = []AggKind{AggCount}
	}
	out.Aggregations = deduped
	return out
}

// SetSort sets the sort field and direction. The field must currently be a
// row field; otherwise the mutation is rejected and the prior configuration
// returned unchanged.
func (c Configuration) SetSort(field string, direction SortDirection) (Configuration, error) {
	if !containsString(c.Rows, field) {
		return c, &ConfigError{Field: field, Reason: "sort field must be one of the row fields"}
	}
	if direction != SortAsc && direction != SortDesc {
		return c, &ConfigError{Field: field, Reason: "sort direction must be asc or desc"}
	}
	out := c.clone()
	out.Sort = &SortSpec{Field: field, Direction: direction}
	return out, nil
}

// ClearSort removes the sort spec.
func (c Configuration) ClearSort() Configuration {
	out := c.clone()
	out.Sort = nil
	return out
}

// hasEmptyValue reports whether any record's normalized value for the field
// is empty. DistinctValues skips "", so pre-populated filter selections need
// it added back when such records exist.
func hasEmptyValue(view RecordView, field string, norm *Normalizer) bool {
	for i := 0; i < view.Len(); i++ {
		if norm.Normalize(field, view.Dimension(i, field)) == "" {
			return true
		}
	}
	return false
}

// ============================================================================
// SLICE HELPERS
// ============================================================================

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func moveString(list []string, from, to int) []string {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) || from == to {
		return list
	}
	out := append([]string(nil), list...)
	v := out[from]
	out = append(out[:from], out[from+1:]...)
	rest := append([]string(nil), out[to:]...)
	return append(append(out[:to:to], v), rest...)
}
