package catalog

import (
	"encoding/json"
	"fmt"
)

// ============================================================================
// CATALOG — Field metadata for the pivot engine
// ============================================================================
// The catalog is static, read-only metadata owned by the presentation layer.
// The engine consults it to tell dimension fields (grouping, filtering) from
// measure fields (aggregation) and to reject configurations that mix them up.
// ============================================================================

// Kind classifies a field.
type Kind string

const (
	// Dimension fields are categorical and form grouping keys.
	Dimension Kind = "dimension"
	// Measure fields are numeric and get aggregated.
	Measure Kind = "measure"
)

// FieldDescriptor describes one field of the record set.
type FieldDescriptor struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  Kind   `json:"kind"`
}

// Catalog is an ordered, id-keyed set of field descriptors.
type Catalog struct {
	fields map[string]FieldDescriptor
	order  []string
}

// New builds a catalog from descriptors. Later duplicates of an id replace
// earlier ones without changing the field's position.
func New(fields ...FieldDescriptor) Catalog {
	c := Catalog{fields: make(map[string]FieldDescriptor, len(fields))}
	for _, f := range fields {
		if _, exists := c.fields[f.ID]; !exists {
			c.order = append(c.order, f.ID)
		}
		c.fields[f.ID] = f
	}
	return c
}

// Lookup returns the descriptor for id.
func (c Catalog) Lookup(id string) (FieldDescriptor, bool) {
	f, ok := c.fields[id]
	return f, ok
}

// Has reports whether id is a known field.
func (c Catalog) Has(id string) bool {
	_, ok := c.fields[id]
	return ok
}

// IsDimension reports whether id is a known dimension field.
func (c Catalog) IsDimension(id string) bool {
	f, ok := c.fields[id]
	return ok && f.Kind == Dimension
}

// IsMeasure reports whether id is a known measure field.
func (c Catalog) IsMeasure(id string) bool {
	f, ok := c.fields[id]
	return ok && f.Kind == Measure
}

// Fields returns all descriptors in registration order.
func (c Catalog) Fields() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.fields[id])
	}
	return out
}

// Len returns the number of fields.
func (c Catalog) Len() int { return len(c.order) }

// Label returns the display label for id, falling back to the id itself.
func (c Catalog) Label(id string) string {
	if f, ok := c.fields[id]; ok && f.Label != "" {
		return f.Label
	}
	return id
}

// MarshalJSON implements json.Marshaler, emitting fields in order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Fields())
}

// UnmarshalJSON implements json.Unmarshaler, accepting a descriptor array.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var fields []FieldDescriptor
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, f := range fields {
		if f.ID == "" {
			return fmt.Errorf("catalog field with empty id")
		}
		if f.Kind != Dimension && f.Kind != Measure {
			return fmt.Errorf("catalog field %q: unknown kind %q", f.ID, f.Kind)
		}
	}
	*c = New(fields...)
	return nil
}
