package engine

import (
	"github.com/pivotr-org/pivotr/catalog"
)

// Shared fixtures: a tiny equities transaction set.

func testCatalog() catalog.Catalog {
	return catalog.New(
		catalog.FieldDescriptor{ID: "broker", Label: "Broker", Kind: catalog.Dimension},
		catalog.FieldDescriptor{ID: "side", Label: "Side", Kind: catalog.Dimension},
		catalog.FieldDescriptor{ID: "board", Label: "Board", Kind: catalog.Dimension},
		catalog.FieldDescriptor{ID: "aggressor", Label: "Aggressor", Kind: catalog.Dimension},
		catalog.FieldDescriptor{ID: "trx_time", Label: "Time", Kind: catalog.Dimension},
		catalog.FieldDescriptor{ID: "volume", Label: "Volume", Kind: catalog.Measure},
		catalog.FieldDescriptor{ID: "value", Label: "Value", Kind: catalog.Measure},
	)
}

func trade(broker, side, trxTime, aggressor string, volume, value float64) Record {
	return Record{
		Dimensions: map[string]string{
			"broker":    broker,
			"side":      side,
			"board":     "RG",
			"aggressor": aggressor,
			"trx_time":  trxTime,
		},
		Measures: map[string]float64{
			"volume": volume,
			"value":  value,
		},
	}
}

func tradeRecords() []Record {
	return []Record{
		trade("A", "Buy", "90000", "1", 100, 500),
		trade("A", "Sell", "103000", "0", 50, 250),
		trade("B", "Buy", "160500", "1", 30, 90),
	}
}

func tradeView() RecordView {
	return NewSliceView(tradeRecords())
}

// aggressorNormalizer maps the raw trade aggressor flag to its display form.
func aggressorNormalizer() *Normalizer {
	return NewNormalizer().RegisterMap("aggressor", map[string]string{
		"1": "HAKA",
		"0": "HAKI",
	})
}
