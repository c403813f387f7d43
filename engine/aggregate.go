package engine

// ============================================================================
// AGGREGATOR — per-bucket SUM/COUNT/AVG/MIN/MAX
// ============================================================================
// Missing or non-numeric value-field entries read as 0 through the view.
// Empty buckets produce 0 for every kind — no NaN or ±Inf ever reaches the
// presentation layer.
// ============================================================================

// AggregateBucket computes the requested aggregations over one bucket.
// The result contains exactly one entry per requested kind.
func AggregateBucket(view RecordView, indices []int, valueField string, kinds []AggKind) Cell {
	cell := Cell{
		Values:      make(map[AggKind]float64, len(kinds)),
		MemberCount: len(indices),
	}

	count := len(indices)
	var sum float64
	var min, max float64
	for i, idx := range indices {
		v := view.Measure(idx, valueField)
		sum += v
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
		}
	}

	for _, k := range kinds {
		switch k {
		case AggCount:
			cell.Values[k] = float64(count)
		case AggSum:
			cell.Values[k] = sum
		case AggAvg:
			if count > 0 {
				cell.Values[k] = sum / float64(count)
			} else {
				cell.Values[k] = 0
			}
		case AggMin:
			cell.Values[k] = min
		case AggMax:
			cell.Values[k] = max
		}
	}

	return cell
}

// AggregateGrouping aggregates every bucket of a grouping, preserving the
// grouping's row and column key order in the returned PivotResult.
func AggregateGrouping(view RecordView, g Grouping, valueField string, kinds []AggKind, cross bool) PivotResult {
	if !cross {
		res := PivotResult{Simple: make(map[string]Cell, len(g.RowOrder))}
		for _, rowKey := range g.RowOrder {
			res.Simple[rowKey] = AggregateBucket(view, g.Buckets[rowKey][""], valueField, kinds)
		}
		return res
	}

	res := PivotResult{
		Cross:       make(map[string]map[string]Cell, len(g.RowOrder)),
		ColumnOrder: append([]string(nil), g.ColOrder...),
	}
	for _, rowKey := range g.RowOrder {
		cols := g.Buckets[rowKey]
		cells := make(map[string]Cell, len(cols))
		for colKey, indices := range cols {
			cells[colKey] = AggregateBucket(view, indices, valueField, kinds)
		}
		res.Cross[rowKey] = cells
	}
	return res
}
