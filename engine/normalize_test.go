package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaultIsIdentity(t *testing.T) {
	norm := NewNormalizer()

	assert.Equal(t, "BBCA", norm.Normalize("stk_code", "BBCA"))
	assert.Equal(t, "", norm.Normalize("stk_code", ""))
}

func TestNormalizeNilReceiverIsIdentity(t *testing.T) {
	var norm *Normalizer

	assert.Equal(t, "raw", norm.Normalize("field", "raw"))
}

func TestNormalizeMapOverride(t *testing.T) {
	norm := aggressorNormalizer()

	assert.Equal(t, "HAKA", norm.Normalize("aggressor", "1"))
	assert.Equal(t, "HAKI", norm.Normalize("aggressor", "0"))
	// Unmapped raw values pass through.
	assert.Equal(t, "2", norm.Normalize("aggressor", "2"))
	// Other fields are untouched.
	assert.Equal(t, "1", norm.Normalize("board", "1"))
}

func TestNormalizeFuncOverride(t *testing.T) {
	norm := NewNormalizer().RegisterFunc("broker", strings.ToUpper)

	assert.Equal(t, "AB", norm.Normalize("broker", "ab"))
}

func TestDistinctValuesFirstSeenOrder(t *testing.T) {
	norm := NewNormalizer()

	assert.Equal(t, []string{"A", "B"}, norm.DistinctValues(tradeView(), "broker"))
	assert.Equal(t, []string{"Buy", "Sell"}, norm.DistinctValues(tradeView(), "side"))
}

func TestDistinctValuesAreNormalized(t *testing.T) {
	norm := aggressorNormalizer()

	// The same mapping backs filtering, grouping, and value listings, so
	// selections made from this list always compare equal to group keys.
	assert.Equal(t, []string{"HAKA", "HAKI"}, norm.DistinctValues(tradeView(), "aggressor"))
}

func TestDistinctValuesSkipsEmpty(t *testing.T) {
	view := NewSliceView([]Record{
		{Dimensions: map[string]string{"board": "RG"}},
		{Dimensions: map[string]string{}},
		{Dimensions: map[string]string{"board": "TN"}},
	})

	assert.Equal(t, []string{"RG", "TN"}, NewNormalizer().DistinctValues(view, "board"))
}
