package source

import (
	"fmt"

	"github.com/hashicorp/go-bexpr"

	"github.com/pivotr-org/pivotr/engine"
)

// ============================================================================
// EXPRESSION SELECTION — boolean-expression record selection
// ============================================================================
// Ad-hoc selection at the source boundary (pick an instrument, a session, a
// broker) before the engine runs. Expressions see every dimension and
// measure by field id, e.g.:
//
//	stk_code == "BBCA" and volume > 100
//
// This is a selection tool for callers; the engine's own filters stay the
// declarative list/time-range specs of the Configuration.
// ============================================================================

// Selector matches records against a parsed boolean expression.
type Selector struct {
	evaluator *bexpr.Evaluator
}

// NewSelector parses an expression into a reusable Selector.
func NewSelector(expr string) (Selector, error) {
	evaluator, err := bexpr.CreateEvaluator(expr)
	if err != nil {
		return Selector{}, fmt.Errorf("error parsing expression '%s': %w", expr, err)
	}
	return Selector{evaluator: evaluator}, nil
}

// Match evaluates the expression against one record.
func (s Selector) Match(rec engine.Record) (bool, error) {
	vars := make(map[string]any, len(rec.Dimensions)+len(rec.Measures))
	for k, v := range rec.Dimensions {
		vars[k] = v
	}
	for k, v := range rec.Measures {
		vars[k] = v
	}
	ok, err := s.evaluator.Evaluate(vars)
	if err != nil {
		return false, fmt.Errorf("error evaluating expression: %w", err)
	}
	return ok, nil
}

// Apply returns the records matching the expression.
func (s Selector) Apply(records []engine.Record) ([]engine.Record, error) {
	var out []engine.Record
	for _, rec := range records {
		ok, err := s.Match(rec)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Select is a convenience wrapper: parse and apply in one call.
func Select(records []engine.Record, expr string) ([]engine.Record, error) {
	s, err := NewSelector(expr)
	if err != nil {
		return nil, err
	}
	return s.Apply(records)
}
