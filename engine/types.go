package engine

import (
	"encoding/json"
	"fmt"
)

// ============================================================================
// ENGINE TYPES — Records, Filters, Configuration, Results
// ============================================================================

// KeySeparator joins dimension values into composite row/column keys.
const KeySeparator = " | "

// TotalKey is the synthetic row key used when no row fields are configured.
const TotalKey = "Total"

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
// A record is immutable once constructed; the engine only reads it.
// Absent keys read as "" (dimensions) or 0 (measures).
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// AGGREGATIONS
// ============================================================================

// AggKind identifies an aggregation function over a bucket's value field.
type AggKind string

const (
	AggSum   AggKind = "SUM"
	AggCount AggKind = "COUNT"
	AggAvg   AggKind = "AVG"
	AggMin   AggKind = "MIN"
	AggMax   AggKind = "MAX"
)

// ValidAggKind reports whether k is one of the supported aggregation kinds.
func ValidAggKind(k AggKind) bool {
	switch k {
	case AggSum, AggCount, AggAvg, AggMin, AggMax:
		return true
	}
	return false
}

// ============================================================================
// FILTERS — tagged union of list and time-range filters
// ============================================================================

// FilterSpec is one filter in a Configuration. Filters are AND-combined:
// a record survives only if every filter keeps it.
type FilterSpec interface {
	// FilterField returns the field id the filter applies to.
	FilterField() string
}

// ListFilter keeps records whose normalized field value is one of Selected.
// An empty Selected list keeps everything — it is a no-op, not "match none".
type ListFilter struct {
	Field    string   `json:"field"`
	Selected []string `json:"selected"`
}

// FilterField implements FilterSpec.
func (f ListFilter) FilterField() string { return f.Field }

// TimeRangeFilter keeps records whose field value, read as an HHMMSS integer,
// falls within [Start, End]. Start and End use "HH:MM" notation; the end
// bound is inclusive through second 59 of its minute ("16:00" → 160059).
type TimeRangeFilter struct {
	Field string `json:"field"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// FilterField implements FilterSpec.
func (f TimeRangeFilter) FilterField() string { return f.Field }

// filterEnvelope is the JSON wire form of the FilterSpec union.
type filterEnvelope struct {
	Type     string   `json:"type"` // "list" or "timeRange"
	Field    string   `json:"field"`
	Selected []string `json:"selected,omitempty"`
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
}

func encodeFilters(filters []FilterSpec) []filterEnvelope {
	out := make([]filterEnvelope, 0, len(filters))
	for _, f := range filters {
		switch f := f.(type) {
		case ListFilter:
			out = append(out, filterEnvelope{Type: "list", Field: f.Field, Selected: f.Selected})
		case TimeRangeFilter:
			out = append(out, filterEnvelope{Type: "timeRange", Field: f.Field, Start: f.Start, End: f.End})
		}
	}
	return out
}

func decodeFilters(envs []filterEnvelope) ([]FilterSpec, error) {
	out := make([]FilterSpec, 0, len(envs))
	for _, e := range envs {
		switch e.Type {
		case "list":
			out = append(out, ListFilter{Field: e.Field, Selected: e.Selected})
		case "timeRange":
			out = append(out, TimeRangeFilter{Field: e.Field, Start: e.Start, End: e.End})
		default:
			return nil, fmt.Errorf("unknown filter type %q", e.Type)
		}
	}
	return out, nil
}

// ============================================================================
// SORT
// ============================================================================

// SortDirection orders row keys ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec orders row keys by one of the configured row fields.
type SortSpec struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// ============================================================================
// CONFIGURATION — the declarative pivot description
// ============================================================================

// Target names one of the three field lists a drag-and-drop edit can touch.
type Target string

const (
	TargetRows    Target = "rows"
	TargetColumns Target = "columns"
	TargetFilters Target = "filters"
)

// Configuration parameterizes the whole pipeline. It is a value type: the
// mutation methods in config.go return a new Configuration and never modify
// the receiver, so an in-flight computation can never observe a partial edit.
type Configuration struct {
	Rows         []string
	Columns      []string
	ValueField   string
	Aggregations []AggKind
	Filters      []FilterSpec
	Sort         *SortSpec

	// TimeField designates the field that receives a TimeRangeFilter
	// (instead of a ListFilter) when dropped onto the filter list.
	TimeField string
}

// configJSON is the wire form of Configuration; the filter union needs an
// explicit type tag.
type configJSON struct {
	Rows         []string         `json:"rows"`
	Columns      []string         `json:"columns"`
	ValueField   string           `json:"valueField"`
	Aggregations []AggKind        `json:"aggregations"`
	Filters      []filterEnvelope `json:"filters"`
	Sort         *SortSpec        `json:"sort,omitempty"`
	TimeField    string           `json:"timeField,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c Configuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(configJSON{
		Rows:         c.Rows,
		Columns:      c.Columns,
		ValueField:   c.ValueField,
		Aggregations: c.Aggregations,
		Filters:      encodeFilters(c.Filters),
		Sort:         c.Sort,
		TimeField:    c.TimeField,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	var raw configJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	filters, err := decodeFilters(raw.Filters)
	if err != nil {
		return err
	}
	*c = Configuration{
		Rows:         raw.Rows,
		Columns:      raw.Columns,
		ValueField:   raw.ValueField,
		Aggregations: raw.Aggregations,
		Filters:      filters,
		Sort:         raw.Sort,
		TimeField:    raw.TimeField,
	}
	return nil
}

// ============================================================================
// RESULTS
// ============================================================================

// Cell is the aggregated content of one (rowKey, colKey) bucket.
type Cell struct {
	Values      map[AggKind]float64 `json:"values"`
	MemberCount int                 `json:"memberCount"`
}

// PivotResult is the aggregated view. Exactly one of Simple or Cross is
// populated: Simple when no column fields are configured, Cross otherwise.
// It is recomputed wholesale on every change, never patched in place.
type PivotResult struct {
	Simple map[string]Cell            `json:"simple,omitempty"`
	Cross  map[string]map[string]Cell `json:"cross,omitempty"`

	// ColumnOrder lists column keys in first-seen order (Cross only).
	ColumnOrder []string `json:"columnOrder,omitempty"`
}

// IsCross reports whether the result is cross-tabulated.
func (r PivotResult) IsCross() bool { return r.Cross != nil }

// Result bundles the pivot with its pagination metadata.
type Result struct {
	Pivot PivotResult `json:"pivot"`

	// RowOrder is the complete sorted row-key sequence.
	RowOrder   []string `json:"rowOrder"`
	PageRows   []string `json:"pageRows"`
	PageNumber int      `json:"pageNumber"`
	PageSize   int      `json:"pageSize"`
	TotalRows  int      `json:"totalRows"`
	TotalPages int      `json:"totalPages"`

	// Warnings carries non-fatal data problems (e.g. unknown field ids).
	Warnings []string `json:"warnings,omitempty"`
}

// ============================================================================
// TABLE TYPES — render-ready output for the presentation layer
// ============================================================================

// TableData is a render-ready table built from a Result.
type TableData struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary provides totals for the summable columns of a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
