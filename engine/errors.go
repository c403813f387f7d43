package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// ERRORS — rejection and degradation, never a crash
// ============================================================================
// This is an interactive-UI component: nothing here is fatal. Configuration
// errors reject the offending mutation or computation and the caller keeps
// its previous valid state; data problems degrade to warnings on the Result.
// ============================================================================

// ErrLimitExceeded is returned when a configured record or bucket ceiling is
// hit, so a pathological configuration (e.g. columns set to a near-unique
// field) fails fast instead of cross-tabulating unbounded.
var ErrLimitExceeded = errors.New("record or bucket ceiling exceeded")

// ConfigError reports a configuration that must be rejected rather than
// computed: a non-measure value field, a sort field outside the row list, a
// non-positive page size.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration: field %q: %s", e.Field, e.Reason)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
