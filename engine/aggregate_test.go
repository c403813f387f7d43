package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateBucketAllKinds(t *testing.T) {
	view := tradeView()
	cell := AggregateBucket(view, []int{0, 1}, "volume",
		[]AggKind{AggSum, AggCount, AggAvg, AggMin, AggMax})

	assert.Equal(t, 2, cell.MemberCount)
	assert.Equal(t, 150.0, cell.Values[AggSum])
	assert.Equal(t, 2.0, cell.Values[AggCount])
	assert.Equal(t, 75.0, cell.Values[AggAvg])
	assert.Equal(t, 50.0, cell.Values[AggMin])
	assert.Equal(t, 100.0, cell.Values[AggMax])
}

func TestAggregateBucketEmptyBucketIsAllZero(t *testing.T) {
	cell := AggregateBucket(tradeView(), nil, "volume",
		[]AggKind{AggSum, AggCount, AggAvg, AggMin, AggMax})

	assert.Equal(t, 0, cell.MemberCount)
	for _, k := range []AggKind{AggSum, AggCount, AggAvg, AggMin, AggMax} {
		assert.Equal(t, 0.0, cell.Values[k], "kind %s", k)
	}
}

func TestAggregateBucketMissingMeasureReadsZero(t *testing.T) {
	view := NewSliceView([]Record{
		{Dimensions: map[string]string{"broker": "A"}, Measures: map[string]float64{"volume": 10}},
		{Dimensions: map[string]string{"broker": "A"}, Measures: map[string]float64{}},
	})
	cell := AggregateBucket(view, []int{0, 1}, "volume", []AggKind{AggSum, AggMin, AggAvg})

	assert.Equal(t, 10.0, cell.Values[AggSum])
	assert.Equal(t, 0.0, cell.Values[AggMin])
	assert.Equal(t, 5.0, cell.Values[AggAvg])
}

func TestAggregateBucketResultHasExactlyRequestedKinds(t *testing.T) {
	cell := AggregateBucket(tradeView(), []int{0}, "volume", []AggKind{AggSum, AggCount})

	require.Len(t, cell.Values, 2)
	assert.Contains(t, cell.Values, AggSum)
	assert.Contains(t, cell.Values, AggCount)
}

func TestAggregationConsistency(t *testing.T) {
	view := tradeView()
	g := GroupRecords(view, []string{"broker"}, nil, nil)

	for _, rowKey := range g.RowOrder {
		indices := g.Buckets[rowKey][""]
		cell := AggregateBucket(view, indices, "volume", []AggKind{AggSum, AggCount, AggAvg})

		assert.Equal(t, float64(len(indices)), cell.Values[AggCount])
		if cell.Values[AggCount] > 0 {
			assert.InDelta(t, cell.Values[AggSum], cell.Values[AggAvg]*cell.Values[AggCount], 1e-9)
		}
	}
}

func TestAggregateGroupingSimple(t *testing.T) {
	view := tradeView()
	g := GroupRecords(view, []string{"broker"}, nil, nil)
	pivot := AggregateGrouping(view, g, "volume", []AggKind{AggSum, AggCount}, false)

	require.False(t, pivot.IsCross())
	assert.Equal(t, 150.0, pivot.Simple["A"].Values[AggSum])
	assert.Equal(t, 2.0, pivot.Simple["A"].Values[AggCount])
	assert.Equal(t, 30.0, pivot.Simple["B"].Values[AggSum])
	assert.Equal(t, 1.0, pivot.Simple["B"].Values[AggCount])
}

func TestAggregateGroupingCross(t *testing.T) {
	view := tradeView()
	g := GroupRecords(view, []string{"broker"}, []string{"side"}, nil)
	pivot := AggregateGrouping(view, g, "volume", []AggKind{AggSum}, true)

	require.True(t, pivot.IsCross())
	assert.Equal(t, []string{"Buy", "Sell"}, pivot.ColumnOrder)
	assert.Equal(t, 100.0, pivot.Cross["A"]["Buy"].Values[AggSum])
	assert.Equal(t, 50.0, pivot.Cross["A"]["Sell"].Values[AggSum])
	assert.Equal(t, 30.0, pivot.Cross["B"]["Buy"].Values[AggSum])
}
