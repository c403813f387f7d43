package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pivotr-org/pivotr/catalog"
)

// ============================================================================
// EXECUTOR — the synchronous pivot pipeline
// ============================================================================
// Entry point: Execute(view, cat, cfg, page, opts...)
//
// Pipeline:
//   1. Validate the configuration against the catalog (reject, don't compute)
//   2. Collect non-fatal unknown-field warnings
//   3. Apply filters → SubView
//   4. Group into (rowKey, colKey) buckets
//   5. Aggregate each bucket
//   6. Sort row keys
//   7. Paginate
//
// One call per discrete configuration or data change; no background work,
// no partial results. The view and configuration are treated as immutable
// snapshots, so a caller may run Execute speculatively (live preview)
// without corrupting committed state.
// ============================================================================

// Execute runs the full pipeline and returns a paged, aggregated Result.
// An empty record set or a configuration that filters everything out yields
// a valid empty result, not an error.
func Execute(view RecordView, cat catalog.Catalog, cfg Configuration, page PageRequest, opts ...Option) (*Result, error) {
	c := applyOptions(opts)
	start := time.Now()
	logger := c.logger.With().Str("run_id", uuid.NewString()).Logger()

	if page.Size <= 0 {
		return nil, &ConfigError{Field: "pageSize", Reason: "page size must be positive"}
	}
	if err := validateConfiguration(cat, cfg); err != nil {
		return nil, err
	}
	if c.maxRecords > 0 && view.Len() > c.maxRecords {
		return nil, fmt.Errorf("%w: %d records exceed ceiling %d", ErrLimitExceeded, view.Len(), c.maxRecords)
	}

	warnings := unknownFieldWarnings(cat, cfg)

	kinds := cfg.Aggregations
	if len(kinds) == 0 {
		kinds = []AggKind{AggCount}
	}

	filtered := ApplyFilters(view, cfg.Filters, cat, c.norm)
	logger.Debug().
		Int("records_in", view.Len()).
		Int("records_filtered", filtered.Len()).
		Int("filters", len(cfg.Filters)).
		Msg("filters applied")

	grouping := GroupRecords(filtered, cfg.Rows, cfg.Columns, c.norm)
	if c.maxBuckets > 0 && grouping.BucketCount() > c.maxBuckets {
		return nil, fmt.Errorf("%w: %d buckets exceed ceiling %d", ErrLimitExceeded, grouping.BucketCount(), c.maxBuckets)
	}

	cross := len(cfg.Columns) > 0
	pivot := AggregateGrouping(filtered, grouping, cfg.ValueField, kinds, cross)

	ordered := SortRowKeys(grouping.RowOrder, cfg.Rows, cfg.Sort)

	paged, err := Paginate(ordered, page.Size, page.Number)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("rows", len(ordered)).
		Int("buckets", grouping.BucketCount()).
		Bool("cross", cross).
		Dur("elapsed", time.Since(start)).
		Msg("pivot computed")

	return &Result{
		Pivot:      pivot,
		RowOrder:   ordered,
		PageRows:   paged.Keys,
		PageNumber: paged.PageNumber,
		PageSize:   paged.PageSize,
		TotalRows:  paged.TotalRows,
		TotalPages: paged.TotalPages,
		Warnings:   warnings,
	}, nil
}

// ============================================================================
// VALIDATION
// ============================================================================

// validateConfiguration rejects configurations that must not be computed:
// fields known to the catalog but used with the wrong kind, and sort specs
// referencing a non-row field. Fields unknown to the catalog are not errors
// — they degrade to warnings and empty/zero contributions.
func validateConfiguration(cat catalog.Catalog, cfg Configuration) error {
	if cfg.ValueField != "" && cat.Has(cfg.ValueField) && !cat.IsMeasure(cfg.ValueField) {
		return &ConfigError{Field: cfg.ValueField, Reason: "value field must be a measure field"}
	}

	check := func(fields []string, role string) error {
		for _, f := range fields {
			if cat.Has(f) && !cat.IsDimension(f) {
				return &ConfigError{Field: f, Reason: role + " fields must be dimension fields"}
			}
		}
		return nil
	}
	if err := check(cfg.Rows, "row"); err != nil {
		return err
	}
	if err := check(cfg.Columns, "column"); err != nil {
		return err
	}
	for _, f := range cfg.Filters {
		id := f.FilterField()
		if cat.Has(id) && !cat.IsDimension(id) {
			return &ConfigError{Field: id, Reason: "filter fields must be dimension fields"}
		}
	}

	if cfg.Sort != nil && !containsString(cfg.Rows, cfg.Sort.Field) {
		return &ConfigError{Field: cfg.Sort.Field, Reason: "sort field must be one of the row fields"}
	}

	for _, k := range cfg.Aggregations {
		if !ValidAggKind(k) {
			return &ConfigError{Field: string(k), Reason: "unknown aggregation kind"}
		}
	}

	return nil
}

// unknownFieldWarnings reports every configured field id absent from the
// catalog. Affected records contribute empty/zero values; the computation
// proceeds.
func unknownFieldWarnings(cat catalog.Catalog, cfg Configuration) []string {
	var warnings []string
	warn := func(id, role string) {
		if id != "" && !cat.Has(id) {
			warnings = append(warnings, fmt.Sprintf("unknown field %q referenced by %s", id, role))
		}
	}
	for _, f := range cfg.Rows {
		warn(f, "rows")
	}
	for _, f := range cfg.Columns {
		warn(f, "columns")
	}
	for _, f := range cfg.Filters {
		warn(f.FilterField(), "filters")
	}
	warn(cfg.ValueField, "valueField")
	return warnings
}
