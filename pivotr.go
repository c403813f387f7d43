// Package pivotr provides an in-memory tabular aggregation (pivot) engine
// for flat transaction records.
//
// Usage:
//
//	import "github.com/pivotr-org/pivotr/engine"
//
//	result, err := engine.Execute(view, cat, config,
//	    engine.PageRequest{Number: 1, Size: 25},
//	    engine.WithNormalizer(norm),
//	)
//
// The engine takes a declarative Configuration (row fields, column fields,
// value field, aggregations, filters, sort) and records (generic
// dimension/measure maps), and returns a grouped, optionally cross-tabulated,
// aggregated view sliced into pages.
//
// Record loading is handled separately by the source package; the catalog
// package describes which fields are dimensions and which are measures.
// The engine never fetches data — all computation is local and synchronous.
package pivotr
