package engine

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access
// ============================================================================
// The engine never owns the record set. It reads through this interface, and
// every pipeline stage that narrows the set (filtering, bucketing) produces
// index lists into the parent view instead of copying records.
//
// Implementations:
//   SliceView      — wraps []Record (CSV, SQLite, ad-hoc)
//   SubView        — filtered subset (indices into parent)
//   DomainAdapter  — reads typed transaction structs via accessor functions
// ============================================================================

// RecordView provides indexed access to a record set.
// Dimension and Measure are called in tight loops — keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, field string) string
	Measure(index int, field string) float64
	DimensionKeys() []string
	MeasureKeys() []string
}

// ============================================================================
// SLICE VIEW
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
type SliceView struct {
	records []Record
	dimKeys []string
	mesKeys []string
}

// NewSliceView creates a RecordView from a []Record slice.
func NewSliceView(records []Record) RecordView {
	v := &SliceView{records: records}
	v.cacheKeys()
	return v
}

func (v *SliceView) cacheKeys() {
	dimSeen := make(map[string]bool)
	mesSeen := make(map[string]bool)
	for _, r := range v.records {
		for k := range r.Dimensions {
			if !dimSeen[k] {
				dimSeen[k] = true
				v.dimKeys = append(v.dimKeys, k)
			}
		}
		for k := range r.Measures {
			if !mesSeen[k] {
				mesSeen[k] = true
				v.mesKeys = append(v.mesKeys, k)
			}
		}
	}
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Dimension(i int, field string) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	return v.records[i].Dimensions[field]
}

func (v *SliceView) Measure(i int, field string) float64 {
	if i < 0 || i >= len(v.records) {
		return 0
	}
	return v.records[i].Measures[field]
}

func (v *SliceView) DimensionKeys() []string { return v.dimKeys }
func (v *SliceView) MeasureKeys() []string   { return v.mesKeys }

// ============================================================================
// SUB VIEW
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, field string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], field)
}

func (v *SubView) Measure(i int, field string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], field)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — typed struct access
// ============================================================================
//
// Callers with typed transaction structs register accessors once and bind
// many times:
//
//	adapter := engine.NewDomainAdapter[Trade]().
//	    Dimension("broker", func(t Trade) string { return t.Broker }).
//	    Measure("volume", func(t Trade) float64 { return t.Volume })
//
//	view := adapter.Bind(trades)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(field string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[field]; !exists {
		a.dimOrder = append(a.dimOrder, field)
	}
	a.dims[field] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(field string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[field]; !exists {
		a.mesOrder = append(a.mesOrder, field)
	}
	a.meas[field] = fn
	return a
}

// Bind creates a RecordView over a data slice. Holds a reference, no copy.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &domainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

type domainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
	dimKeys  []string
	measKeys []string
}

func (v *domainView[T]) Len() int { return len(v.data) }

func (v *domainView[T]) Dimension(i int, field string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[field]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *domainView[T]) Measure(i int, field string) float64 {
	if i < 0 || i >= len(v.data) {
		return 0
	}
	if fn, ok := v.meas[field]; ok {
		return fn(v.data[i])
	}
	return 0
}

func (v *domainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *domainView[T]) MeasureKeys() []string   { return v.measKeys }
