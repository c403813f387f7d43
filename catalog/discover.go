package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================================
// DISCOVERY — Infer a catalog from a CSV sample
// ============================================================================
// Classification rule: a column whose non-empty sample values are mostly
// numeric becomes a measure, everything else a dimension. Headers are
// normalized to snake_case ids; the original header becomes the label.
// ============================================================================

// discoverSampleRows caps how many rows are inspected per column.
const discoverSampleRows = 200

// numericThreshold is the fraction of numeric samples required for a column
// to be classified as a measure.
const numericThreshold = 0.8

// DiscoverFromCSV infers field descriptors from CSV data.
func DiscoverFromCSV(data []byte) (Catalog, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))

	headers, err := reader.Read()
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	numeric := make([]int, len(headers))
	nonEmpty := make([]int, len(headers))

	for row := 0; row < discoverSampleRows; row++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		for i, val := range rec {
			if i >= len(headers) {
				break
			}
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}
			nonEmpty[i]++
			if _, err := strconv.ParseFloat(val, 64); err == nil {
				numeric[i]++
			}
		}
	}

	fields := make([]FieldDescriptor, 0, len(headers))
	for i, h := range headers {
		label := strings.TrimSpace(h)
		if label == "" {
			continue
		}
		kind := Dimension
		if nonEmpty[i] > 0 && float64(numeric[i])/float64(nonEmpty[i]) >= numericThreshold {
			kind = Measure
		}
		fields = append(fields, FieldDescriptor{
			ID:    ToSnakeCase(label),
			Label: label,
			Kind:  kind,
		})
	}

	if len(fields) == 0 {
		return Catalog{}, fmt.Errorf("no usable columns in CSV header")
	}
	return New(fields...), nil
}

// ToSnakeCase converts "Column Name" → "column_name".
func ToSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
