package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSimplePivotScenario(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum, AggCount},
	}

	res, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)

	require.False(t, res.Pivot.IsCross())
	assert.Equal(t, 150.0, res.Pivot.Simple["A"].Values[AggSum])
	assert.Equal(t, 2.0, res.Pivot.Simple["A"].Values[AggCount])
	assert.Equal(t, 30.0, res.Pivot.Simple["B"].Values[AggSum])
	assert.Equal(t, 1.0, res.Pivot.Simple["B"].Values[AggCount])

	assert.Equal(t, []string{"A", "B"}, res.RowOrder)
	assert.Equal(t, []string{"A", "B"}, res.PageRows)
	assert.Equal(t, 2, res.TotalRows)
	assert.Equal(t, 1, res.TotalPages)
	assert.Empty(t, res.Warnings)
}

func TestExecuteCrossTabScenario(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker"},
		Columns:      []string{"side"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
	}

	res, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)

	require.True(t, res.Pivot.IsCross())
	assert.Equal(t, 100.0, res.Pivot.Cross["A"]["Buy"].Values[AggSum])
	assert.Equal(t, 50.0, res.Pivot.Cross["A"]["Sell"].Values[AggSum])
	assert.Equal(t, 30.0, res.Pivot.Cross["B"]["Buy"].Values[AggSum])
	assert.Equal(t, []string{"Buy", "Sell"}, res.Pivot.ColumnOrder)
}

func TestExecuteFullPipeline(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
		Filters: []FilterSpec{
			TimeRangeFilter{Field: "trx_time", Start: "09:30", End: "16:00"},
		},
	}
	cfg, err := cfg.SetSort("broker", SortDesc)
	require.NoError(t, err)

	res, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 10})
	require.NoError(t, err)

	// Only the 103000 trade survives the time filter.
	assert.Equal(t, []string{"A"}, res.RowOrder)
	assert.Equal(t, 50.0, res.Pivot.Simple["A"].Values[AggSum])
}

func TestExecuteEmptyRecordSet(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
	}

	res, err := Execute(NewSliceView(nil), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)

	// Degenerate input produces a valid empty result, not an error.
	assert.Empty(t, res.Pivot.Simple)
	assert.Empty(t, res.PageRows)
	assert.Equal(t, 0, res.TotalRows)
	assert.Equal(t, 0, res.TotalPages)
}

func TestExecuteEverythingFilteredOut(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
		Filters: []FilterSpec{
			ListFilter{Field: "broker", Selected: []string{"Z"}},
		},
	}

	res, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)
	assert.Empty(t, res.Pivot.Simple)
	assert.Equal(t, 0, res.TotalRows)
}

func TestExecuteRejectsMeasureAsRowField(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"volume"},
		ValueField:   "value",
		Aggregations: []AggKind{AggSum},
	}

	_, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestExecuteRejectsDimensionAsValueField(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker"},
		ValueField:   "side",
		Aggregations: []AggKind{AggSum},
	}

	_, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestExecuteRejectsSortFieldOutsideRows(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
		Sort:         &SortSpec{Field: "side", Direction: SortAsc},
	}

	_, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestExecuteRejectsNonPositivePageSize(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
	}

	_, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 0})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestExecuteUnknownFieldWarnsAndProceeds(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker", "no_such_field"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
	}

	res, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "no_such_field")

	// The unknown field contributes an empty key part; records still group.
	assert.Equal(t, []string{"A | ", "B | "}, res.RowOrder)
}

func TestExecuteEmptyAggregationsDefaultsToCount(t *testing.T) {
	cfg := Configuration{
		Rows:       []string{"broker"},
		ValueField: "volume",
	}

	res, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Pivot.Simple["A"].Values[AggCount])
}

func TestExecuteNoRowFieldsYieldsTotalGroup(t *testing.T) {
	cfg := Configuration{
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
	}

	res, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)
	assert.Equal(t, []string{TotalKey}, res.RowOrder)
	assert.Equal(t, 180.0, res.Pivot.Simple[TotalKey].Values[AggSum])
}

func TestExecuteRecordCeiling(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
	}

	_, err := Execute(tradeView(), testCatalog(), cfg,
		PageRequest{Number: 1, Size: 25}, WithMaxRecords(2))
	require.ErrorIs(t, err, ErrLimitExceeded)
}

func TestExecuteBucketCeiling(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker"},
		Columns:      []string{"trx_time"}, // near-unique column field
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
	}

	_, err := Execute(tradeView(), testCatalog(), cfg,
		PageRequest{Number: 1, Size: 25}, WithMaxBuckets(2))
	require.ErrorIs(t, err, ErrLimitExceeded)
}

func TestExecuteNormalizerConsistencyAcrossStages(t *testing.T) {
	norm := aggressorNormalizer()
	cfg := Configuration{
		Rows:         []string{"aggressor"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum},
		Filters: []FilterSpec{
			// Selection built from normalized distinct values.
			ListFilter{Field: "aggressor", Selected: []string{"HAKA"}},
		},
	}

	res, err := Execute(tradeView(), testCatalog(), cfg,
		PageRequest{Number: 1, Size: 25}, WithNormalizer(norm))
	require.NoError(t, err)

	// Filter selection and group key agree on the normalized form.
	assert.Equal(t, []string{"HAKA"}, res.RowOrder)
	assert.Equal(t, 130.0, res.Pivot.Simple["HAKA"].Values[AggSum])
}

func TestExecuteDeterministicAcrossRuns(t *testing.T) {
	cfg := Configuration{
		Rows:         []string{"broker", "side"},
		ValueField:   "volume",
		Aggregations: []AggKind{AggSum, AggAvg},
	}

	first, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)
	second, err := Execute(tradeView(), testCatalog(), cfg, PageRequest{Number: 1, Size: 25})
	require.NoError(t, err)

	assert.Equal(t, first.RowOrder, second.RowOrder)
	assert.Equal(t, first.Pivot, second.Pivot)
}
