package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pivotr-org/pivotr/catalog"
	"github.com/pivotr-org/pivotr/engine"
)

// ============================================================================
// CSV SOURCE — parses CSV bytes into engine records
// ============================================================================
// The caller reads the CSV from wherever it lives (file, object store); this
// package converts the raw bytes into records using the catalog to decide
// which columns are dimensions and which are measures.
// ============================================================================

// ParseCSV parses CSV bytes into records. Catalog measure columns are parsed
// as numbers (unparseable values are left absent and read as 0 downstream);
// dimension columns are kept as trimmed strings. Unknown columns are skipped.
func ParseCSV(data []byte, cat catalog.Catalog) ([]engine.Record, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	type colMapping struct {
		fieldID   string
		isMeasure bool
		mapped    bool
	}

	mappings := make([]colMapping, len(headers))
	for i, h := range headers {
		id := catalog.ToSnakeCase(strings.TrimSpace(h))
		if f, ok := cat.Lookup(id); ok {
			mappings[i] = colMapping{fieldID: id, isMeasure: f.Kind == catalog.Measure, mapped: true}
		}
	}

	var records []engine.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		rec := engine.Record{
			Dimensions: make(map[string]string),
			Measures:   make(map[string]float64),
		}
		for i, val := range row {
			if i >= len(mappings) || !mappings[i].mapped {
				continue
			}
			m := mappings[i]
			val = strings.TrimSpace(val)
			if m.isMeasure {
				if f, err := strconv.ParseFloat(val, 64); err == nil {
					rec.Measures[m.fieldID] = f
				}
			} else {
				rec.Dimensions[m.fieldID] = val
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// ParseCSVView parses CSV bytes directly into a RecordView.
func ParseCSVView(data []byte, cat catalog.Catalog) (engine.RecordView, error) {
	records, err := ParseCSV(data, cat)
	if err != nil {
		return nil, err
	}
	return engine.NewSliceView(records), nil
}
