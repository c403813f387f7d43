package engine

// ============================================================================
// VALUE NORMALIZER — per-field value coercion
// ============================================================================
// Some dimension fields store codes rather than display values (a trade
// aggressor flag stored as "1"/"0" but shown as "HAKA"/"HAKI"). A registered
// override maps the raw value to its canonical string, and the same mapping
// is used by filtering, grouping, and distinct-value listings so that filter
// selections and group keys always compare equal.
// ============================================================================

// NormalizeFunc maps a raw dimension value to its canonical string form.
type NormalizeFunc func(raw string) string

// Normalizer applies per-field value overrides. The zero value and a nil
// pointer both behave as the identity normalizer.
type Normalizer struct {
	overrides map[string]NormalizeFunc
}

// NewNormalizer creates an empty normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{overrides: make(map[string]NormalizeFunc)}
}

// RegisterFunc installs an override function for a field.
func (n *Normalizer) RegisterFunc(field string, fn NormalizeFunc) *Normalizer {
	if n.overrides == nil {
		n.overrides = make(map[string]NormalizeFunc)
	}
	n.overrides[field] = fn
	return n
}

// RegisterMap installs a lookup-table override for a field. Raw values
// missing from the table pass through unchanged.
func (n *Normalizer) RegisterMap(field string, mapping map[string]string) *Normalizer {
	table := make(map[string]string, len(mapping))
	for k, v := range mapping {
		table[k] = v
	}
	return n.RegisterFunc(field, func(raw string) string {
		if v, ok := table[raw]; ok {
			return v
		}
		return raw
	})
}

// Normalize returns the canonical string for a field value. Without an
// override the raw value is returned as-is (absent values read as "").
func (n *Normalizer) Normalize(field, raw string) string {
	if n == nil || n.overrides == nil {
		return raw
	}
	if fn, ok := n.overrides[field]; ok {
		return fn(raw)
	}
	return raw
}

// DistinctValues returns the distinct normalized values of a field across a
// view, in first-seen order. Used to pre-populate list filters and to back
// UI value listings.
func (n *Normalizer) DistinctValues(view RecordView, field string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < view.Len(); i++ {
		val := n.Normalize(field, view.Dimension(i, field))
		if val != "" && !seen[val] {
			seen[val] = true
			out = append(out, val)
		}
	}
	return out
}
