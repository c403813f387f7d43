package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/pivotr-org/pivotr/catalog"
)

// ============================================================================
// TABLE BUILDER — render-ready TableData from a Result
// ============================================================================
// Produces one table row per row key of the current page: the row key split
// back into its field values, then one number column per aggregation (and,
// in cross mode, per column key × aggregation). The presentation layer and
// the CLI render this without touching keys or cells themselves.
// ============================================================================

// BuildTable converts the paged portion of a Result into a TableData.
func BuildTable(res *Result, cfg Configuration, cat catalog.Catalog) *TableData {
	if res == nil {
		return &TableData{Columns: []Column{}, Rows: [][]string{}}
	}

	kinds := cfg.Aggregations
	if len(kinds) == 0 {
		kinds = []AggKind{AggCount}
	}

	columns := rowFieldColumns(cfg, cat)
	valueCols := valueColumns(res, kinds)
	for _, vc := range valueCols {
		columns = append(columns, vc.Column)
	}

	rows := make([][]string, 0, len(res.PageRows))
	totals := make(map[string]float64)

	for _, rowKey := range res.PageRows {
		row := splitRowKey(rowKey, cfg.Rows)
		for _, vc := range valueCols {
			cell, ok := lookupCell(res, rowKey, vc.colKey)
			if !ok {
				row = append(row, "")
				continue
			}
			v := cell.Values[vc.kind]
			row = append(row, formatNumber(v))
			if vc.kind == AggSum || vc.kind == AggCount {
				totals[vc.Key] += v
			}
		}
		rows = append(rows, row)
	}

	var summary *Summary
	if len(totals) > 0 {
		values := make(map[string]string, len(totals))
		for k, v := range totals {
			values[k] = formatNumber(v)
		}
		summary = &Summary{
			Label:  fmt.Sprintf("Total (%d rows)", len(res.PageRows)),
			Values: values,
		}
	}

	return &TableData{Columns: columns, Rows: rows, Summary: summary}
}

// valueColumn carries the bucket coordinates a rendered column reads from.
type valueColumn struct {
	Column
	colKey string
	kind   AggKind
}

func rowFieldColumns(cfg Configuration, cat catalog.Catalog) []Column {
	if len(cfg.Rows) == 0 {
		return []Column{{Key: "group", Label: "Group", Type: "text", Align: "left"}}
	}
	cols := make([]Column, 0, len(cfg.Rows))
	for _, f := range cfg.Rows {
		cols = append(cols, Column{Key: f, Label: cat.Label(f), Type: "text", Align: "left"})
	}
	return cols
}

func valueColumns(res *Result, kinds []AggKind) []valueColumn {
	var cols []valueColumn
	if !res.Pivot.IsCross() {
		for _, k := range kinds {
			cols = append(cols, valueColumn{
				Column: Column{Key: string(k), Label: string(k), Type: "number", Align: "right"},
				kind:   k,
			})
		}
		return cols
	}
	for _, colKey := range res.Pivot.ColumnOrder {
		for _, k := range kinds {
			cols = append(cols, valueColumn{
				Column: Column{
					Key:   colKey + "/" + string(k),
					Label: colKey + " " + string(k),
					Type:  "number",
					Align: "right",
				},
				colKey: colKey,
				kind:   k,
			})
		}
	}
	return cols
}

func lookupCell(res *Result, rowKey, colKey string) (Cell, bool) {
	if res.Pivot.IsCross() {
		cells, ok := res.Pivot.Cross[rowKey]
		if !ok {
			return Cell{}, false
		}
		cell, ok := cells[colKey]
		return cell, ok
	}
	cell, ok := res.Pivot.Simple[rowKey]
	return cell, ok
}

func splitRowKey(key string, rows []string) []string {
	if len(rows) <= 1 {
		return []string{key}
	}
	parts := strings.Split(key, KeySeparator)
	for len(parts) < len(rows) {
		parts = append(parts, "")
	}
	return parts[:len(rows)]
}

// formatNumber renders whole numbers without decimals, fractions with two.
// The int64 conversion is undefined for magnitudes past the int64 range, so
// those always take the decimal form.
func formatNumber(v float64) string {
	if math.Abs(v) < 1<<62 && v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
